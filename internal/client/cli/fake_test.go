package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/client/client"
	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
)

type fakeAuth struct {
	current *models.Session

	loginUser string
	loginPass string
	loginRet  *models.Session
	loginErr  error

	signupReq client.SignupRequest
	signupRet *models.Session
	signupErr error

	restoreRet *models.Session
	restoreErr error

	logoutCalled bool
	logoutErr    error

	deleteCalled bool
	deleteErr    error

	pingErr error
	pings   int
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (*models.Session, error) {
	f.loginUser, f.loginPass = username, password
	if f.loginErr == nil {
		f.current = f.loginRet
	}
	return f.loginRet, f.loginErr
}

func (f *fakeAuth) Signup(_ context.Context, req client.SignupRequest) (*models.Session, error) {
	f.signupReq = req
	if f.signupErr == nil {
		f.current = f.signupRet
	}
	return f.signupRet, f.signupErr
}

func (f *fakeAuth) Restore(context.Context) (*models.Session, error) {
	if f.restoreErr == nil && f.restoreRet != nil {
		f.current = f.restoreRet
	}
	return f.restoreRet, f.restoreErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	if f.logoutErr == nil {
		f.current = nil
	}
	return f.logoutErr
}

func (f *fakeAuth) DeleteAccount(context.Context) error {
	f.deleteCalled = true
	if f.deleteErr == nil {
		f.current = nil
	}
	return f.deleteErr
}

func (f *fakeAuth) Current() *models.Session { return f.current }

func (f *fakeAuth) Ping(context.Context) error {
	f.pings++
	return f.pingErr
}

type fakeContent struct {
	kundaliReq models.KundaliRequest
	matchReq   models.MatchRequest
	horoReq    models.HoroscopeRequest
	panchReq   models.PanchangRequest
	predReq    models.PredictionRequest
	chatMsg    string
	chatHist   []models.ChatTurn

	tripped bool
	resetAt time.Time
}

func (f *fakeContent) Kundali(_ context.Context, req models.KundaliRequest) models.KundaliResult {
	f.kundaliReq = req
	return models.KundaliResult{
		Analysis: "analysis for " + req.Name,
		RawData: models.KundaliData{
			Lagna: "Aries", MoonSign: "Taurus", SunSign: "Leo", Nakshatra: "Rohini",
			Houses: map[int][]string{1: {"Su"}, 7: {"Mo", "Ma"}},
		},
	}
}

func (f *fakeContent) Match(_ context.Context, req models.MatchRequest) models.MatchResult {
	f.matchReq = req
	return models.MatchResult{Score: 24.5, Total: 36, Description: "good match",
		GunaMilan: []models.GunaScore{{Area: "Varna", Score: 1, Max: 1}}}
}

func (f *fakeContent) Chat(_ context.Context, message string, history []models.ChatTurn, _ string) string {
	f.chatMsg = message
	f.chatHist = append([]models.ChatTurn(nil), history...)
	return "reply to " + message
}

func (f *fakeContent) Panchang(_ context.Context, req models.PanchangRequest) models.Panchang {
	f.panchReq = req
	return models.Panchang{Date: "2026-10-16", Location: "Ujjain", Tithi: "Shukla Dashami", Sunrise: "06:21"}
}

func (f *fakeContent) Horoscope(_ context.Context, req models.HoroscopeRequest) string {
	f.horoReq = req
	return "stars for " + req.Sign
}

func (f *fakeContent) Prediction(_ context.Context, req models.PredictionRequest) string {
	f.predReq = req
	return fmt.Sprintf("%s for %s", req.Kind, req.Input)
}

func (f *fakeContent) QuotaStatus() (bool, time.Time) { return f.tripped, f.resetAt }

type loggedActivity struct {
	typ   models.ActivityType
	title string
}

type fakeActivity struct {
	logged []loggedActivity
}

func (f *fakeActivity) Log(_ context.Context, typ models.ActivityType, title string) {
	f.logged = append(f.logged, loggedActivity{typ, title})
}

type fakeNames struct {
	names []string
	err   error
}

func (f *fakeNames) List(context.Context) ([]string, error) { return f.names, f.err }

func (f *fakeNames) Add(_ context.Context, name string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if name != "" {
		f.names = append([]string{name}, f.names...)
	}
	return f.names, nil
}

// captureOutput replaces printlnFn and returns a function yielding
// everything printed so far.
func captureOutput(t *testing.T) func() string {
	t.Helper()
	var b strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&b, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return b.String
}

// stubInputs answers prompts from answers in order and the password prompt
// with password.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP, origTD, origOut := getSimpleText, getPassword, getTextOrDefault, promptOut

	next := func() (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		s := answers[0]
		answers = answers[1:]
		return s, nil
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	getTextOrDefault = func(_ *bufio.Reader, _ string, def string, _ io.Writer) (string, error) {
		s, err := next()
		if err == nil && s == "" {
			return def, nil
		}
		return s, err
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	promptOut = io.Discard

	t.Cleanup(func() {
		getSimpleText, getPassword, getTextOrDefault, promptOut = origST, origGP, origTD, origOut
	})
}

func remoteSess(username string) *models.Session {
	return &models.Session{
		User:   models.Profile{ID: models.Remote("u1"), Username: username, Name: "Ravi Kumar", DOB: "1990-05-14", Time: "06:30", Place: "Ujjain"},
		Token:  "jwt",
		Source: models.SessionRemote,
	}
}

func localSess(username string) *models.Session {
	return &models.Session{
		User:   models.Profile{ID: models.Local(username), Username: username, Name: "Sita"},
		Token:  "local_offline_token",
		Source: models.SessionLocal,
	}
}

type testApp struct {
	*App
	auth     *fakeAuth
	content  *fakeContent
	activity *fakeActivity
	names    *fakeNames
}

func newTestApp(sess *models.Session) *testApp {
	fa := &fakeAuth{current: sess}
	fc := &fakeContent{}
	act := &fakeActivity{}
	nh := &fakeNames{}
	return &testApp{
		App: &App{
			authService:    fa,
			contentService: fc,
			activityLogger: act,
			names:          nh,
		},
		auth: fa, content: fc, activity: act, names: nh,
	}
}
