package session

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/divyadrishti/internal/client/kv"
	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
	"github.com/dmitrijs2005/divyadrishti/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemoryStore()
	s := NewStore(backing)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := &models.Session{
		User: models.Profile{
			ID: models.Remote("65f0"), Username: "ravi", Name: "Ravi",
			Activities: []models.Activity{{ID: "1", Type: models.ActivityChat, Title: "hi", Timestamp: 10}},
		},
		Token:  "jwt",
		Source: models.SessionRemote,
	}
	require.NoError(t, s.Save(ctx, want))

	tok, err := backing.Get(ctx, common.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "jwt", string(tok))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, s.Clear(ctx))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_LoadLegacySnapshot(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, common.SessionKey, []byte(`{"user":{"id":"local_sita","username":"sita"}}`)))
	require.NoError(t, backing.Set(ctx, common.TokenKey, []byte(common.LocalTokenValue)))

	got, err := NewStore(backing).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsLocal())
	assert.Equal(t, models.Local("sita"), got.User.ID)
}

func TestStore_LoadCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, common.SessionKey, []byte(`{broken`)))
	require.NoError(t, backing.Set(ctx, common.TokenKey, []byte("jwt")))

	got, err := NewStore(backing).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNameHistory_DedupMovesToFront(t *testing.T) {
	ctx := context.Background()
	h := NewNameHistory(kv.NewMemoryStore())

	for _, n := range []string{"Ravi", "Sita", "Ravi"} {
		_, err := h.Add(ctx, n)
		require.NoError(t, err)
	}

	names, err := h.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ravi", "Sita"}, names)
}

func TestNameHistory_Cap(t *testing.T) {
	ctx := context.Background()
	h := NewNameHistory(kv.NewMemoryStore())

	var last []string
	for i := 0; i < MaxNames+3; i++ {
		var err error
		last, err = h.Add(ctx, string(rune('A'+i)))
		require.NoError(t, err)
	}
	require.Len(t, last, MaxNames)
	assert.Equal(t, "M", last[0])
	assert.Equal(t, "D", last[MaxNames-1])
}

func TestNameHistory_BlankIgnored(t *testing.T) {
	ctx := context.Background()
	h := NewNameHistory(kv.NewMemoryStore())

	_, err := h.Add(ctx, "Ravi")
	require.NoError(t, err)
	names, err := h.Add(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ravi"}, names)
}

func TestPushName(t *testing.T) {
	assert.Equal(t, []string{"x"}, pushName(nil, "x"))
	assert.Equal(t, []string{"b", "a", "c"}, pushName([]string{"a", "b", "c"}, "b"))
}
