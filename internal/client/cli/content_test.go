package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/client/metrics"
	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKundali_DefaultsToProfile(t *testing.T) {
	out := captureOutput(t)
	// accept every default
	stubInputs(t, "", "", "", "", "")

	a := newTestApp(remoteSess("ravi"))
	require.NoError(t, a.Kundali(context.Background()))

	want := models.BirthDetails{Name: "Ravi Kumar", DOB: "1990-05-14", Time: "06:30", Place: "Ujjain"}
	if diff := cmp.Diff(want, a.content.kundaliReq.BirthDetails); diff != "" {
		t.Fatalf("kundali request mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Ravi Kumar"}, a.names.names)
	assert.Equal(t, []loggedActivity{{models.ActivityKundali, "Kundali for Ravi Kumar"}}, a.activity.logged)

	text := out()
	assert.Contains(t, text, "Lagna: Aries")
	assert.Contains(t, text, "House  7: Mo Ma")
	assert.Contains(t, text, "analysis for Ravi Kumar")
}

func TestKundali_ShowsRecentNames(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "", "Sita", "1992-01-01", "10:00", "Pune")

	a := newTestApp(localSess("sita"))
	a.names.names = []string{"Ravi", "Gita"}
	require.NoError(t, a.Kundali(context.Background()))

	assert.Contains(t, out(), "Recent names: Ravi, Gita")
	assert.Equal(t, []string{"Sita", "Ravi", "Gita"}, a.names.names)
}

func TestMatch(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "",
		"Ravi", "1990-05-14", "06:30", "Ujjain",
		"Sita", "1992-01-01", "10:00", "Pune",
	)

	a := newTestApp(remoteSess("ravi"))
	require.NoError(t, a.Match(context.Background()))

	assert.Equal(t, "Ravi", a.content.matchReq.Boy.Name)
	assert.Equal(t, "Pune", a.content.matchReq.Girl.Place)
	assert.Equal(t, []loggedActivity{{models.ActivityMatching, "Match: Ravi & Sita"}}, a.activity.logged)
	assert.Contains(t, out(), "Guna Milan: 24.5 / 36")
}

func TestMatch_InputError(t *testing.T) {
	captureOutput(t)
	stubInputs(t, "", "Ravi")

	a := newTestApp(remoteSess("ravi"))
	require.Error(t, a.Match(context.Background()))
	assert.Empty(t, a.activity.logged)
}

func TestHoroscope(t *testing.T) {
	t.Run("args", func(t *testing.T) {
		out := captureOutput(t)
		a := newTestApp(remoteSess("ravi"))

		require.NoError(t, a.Horoscope(context.Background(), []string{"Leo", "Weekly"}))
		assert.Equal(t, models.HoroscopeRequest{Sign: "Leo", Timeframe: "weekly"}, a.content.horoReq)
		assert.Equal(t, []loggedActivity{{models.ActivityHoroscope, "Leo weekly horoscope"}}, a.activity.logged)
		assert.Contains(t, out(), "stars for Leo")
	})

	t.Run("prompted sign", func(t *testing.T) {
		captureOutput(t)
		stubInputs(t, "", "Virgo")
		a := newTestApp(remoteSess("ravi"))

		require.NoError(t, a.Horoscope(context.Background(), nil))
		assert.Equal(t, models.HoroscopeRequest{Sign: "Virgo", Timeframe: "daily"}, a.content.horoReq)
	})

	t.Run("blank sign", func(t *testing.T) {
		out := captureOutput(t)
		stubInputs(t, "", "")
		a := newTestApp(remoteSess("ravi"))

		require.NoError(t, a.Horoscope(context.Background(), nil))
		assert.Contains(t, out(), "Usage: horoscope")
		assert.Empty(t, a.activity.logged)
	})
}

func TestPanchang(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(remoteSess("ravi"))

	require.NoError(t, a.Panchang(context.Background(), []string{"2026-10-16", "New", "Delhi"}))
	assert.Equal(t, models.PanchangRequest{Date: "2026-10-16", Location: "New Delhi"}, a.content.panchReq)
	assert.Equal(t, []loggedActivity{{models.ActivityTool, "Panchang 2026-10-16"}}, a.activity.logged)

	text := out()
	assert.Contains(t, text, "Panchang for 2026-10-16, Ujjain")
	assert.Contains(t, text, "Shukla Dashami")
	assert.NotContains(t, text, "Karan")
}

func TestChat_KeepsConversation(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(remoteSess("ravi"))
	ctx := context.Background()

	require.NoError(t, a.Chat(ctx, []string{"hello"}))
	require.NoError(t, a.Chat(ctx, []string{"what", "about", "my", "career", "in", "the", "coming", "months", "and", "years"}))

	assert.Equal(t, []models.ChatTurn{
		{Role: "user", Text: "hello"},
		{Role: "model", Text: "reply to hello"},
	}, a.content.chatHist)
	assert.Len(t, a.chat, 4)
	assert.Contains(t, out(), "reply to hello")

	require.Len(t, a.activity.logged, 2)
	assert.Equal(t, "what about my career in the coming month...", a.activity.logged[1].title)
}

func TestChat_EmptyPromptDoesNothing(t *testing.T) {
	captureOutput(t)
	stubInputs(t, "", "")
	a := newTestApp(remoteSess("ravi"))

	require.NoError(t, a.Chat(context.Background(), nil))
	assert.Empty(t, a.content.chatMsg)
	assert.Empty(t, a.activity.logged)
}

func TestPredict(t *testing.T) {
	t.Run("known kind", func(t *testing.T) {
		out := captureOutput(t)
		a := newTestApp(remoteSess("ravi"))

		require.NoError(t, a.Predict(context.Background(), []string{"NUMEROLOGY", "1990-05-14"}))
		assert.Equal(t, models.PredictionRequest{Kind: models.PredictionNumerology, Input: "1990-05-14"}, a.content.predReq)
		assert.Equal(t, []loggedActivity{{models.ActivityTool, "numerology: 1990-05-14"}}, a.activity.logged)
		assert.Contains(t, out(), "numerology for 1990-05-14")
	})

	t.Run("prompted input", func(t *testing.T) {
		captureOutput(t)
		stubInputs(t, "", "boy, starts with A")
		a := newTestApp(remoteSess("ravi"))

		require.NoError(t, a.Predict(context.Background(), []string{"babynames"}))
		assert.Equal(t, models.PredictionBabyNames, a.content.predReq.Kind)
		assert.Equal(t, "boy, starts with A", a.content.predReq.Input)
	})

	t.Run("unknown kind", func(t *testing.T) {
		out := captureOutput(t)
		a := newTestApp(remoteSess("ravi"))

		require.NoError(t, a.Predict(context.Background(), []string{"tarot"}))
		assert.Contains(t, out(), "Unknown prediction: tarot")
		assert.Empty(t, a.activity.logged)
	})

	t.Run("usage", func(t *testing.T) {
		out := captureOutput(t)
		a := newTestApp(remoteSess("ravi"))

		require.NoError(t, a.Predict(context.Background(), nil))
		assert.Contains(t, out(), "Usage: predict")
	})
}

func TestHistory(t *testing.T) {
	out := captureOutput(t)
	sess := remoteSess("ravi")
	sess.User.Activities = []models.Activity{
		models.NewActivity("2", models.ActivityChat, "career question", time.Now()),
		models.NewActivity("1", models.ActivityKundali, "Kundali for Ravi", time.Now().Add(-time.Hour)),
	}
	a := newTestApp(sess)

	require.NoError(t, a.History(context.Background()))
	text := out()
	assert.Less(t, strings.Index(text, "career question"), strings.Index(text, "Kundali for Ravi"))

	empty := newTestApp(remoteSess("sita"))
	out = captureOutput(t)
	require.NoError(t, empty.History(context.Background()))
	assert.Contains(t, out(), "No activity yet")
}

func TestNames(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(remoteSess("ravi"))

	require.NoError(t, a.Names(context.Background()))
	assert.Contains(t, out(), "No names yet")

	a.names.names = []string{"Ravi", "Sita"}
	out = captureOutput(t)
	require.NoError(t, a.Names(context.Background()))
	assert.Equal(t, "Ravi\nSita\n", out())
}

func TestStatus(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(localSess("sita"))
	a.Mode = ModeOffline
	a.metrics = metrics.New()
	a.metrics.RemoteCall("kundali", nil)
	a.content.tripped = true
	a.content.resetAt = time.Now().Add(5 * time.Minute)

	require.NoError(t, a.Status(context.Background()))
	text := out()
	assert.Contains(t, text, "Mode: offline")
	assert.Contains(t, text, "User: sita (local)")
	assert.Contains(t, text, "AI quota: paused until")
	assert.Contains(t, text, "Remote calls: 1 ok, 0 failed")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "नमस्...", truncate("नमस्ते", 4))
}
