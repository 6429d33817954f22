package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/client/breaker"
	"github.com/dmitrijs2005/divyadrishti/internal/client/client"
	"github.com/dmitrijs2005/divyadrishti/internal/client/kv"
	"github.com/dmitrijs2005/divyadrishti/internal/client/localstore"
	"github.com/dmitrijs2005/divyadrishti/internal/client/metrics"
	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
	"github.com/dmitrijs2005/divyadrishti/internal/client/session"
)

// fakeClient implements client.Client, recording calls and returning preset results.
type fakeClient struct {
	LoginRet  *client.AuthResponse
	LoginErr  error
	SignupRet *client.AuthResponse
	SignupErr error

	GenerateRet map[client.Kind]json.RawMessage
	GenerateErr error

	ChatRet string
	ChatErr error

	LogActivityErr   error
	DeleteAccountErr error
	PingErr          error

	Token         string
	Calls         int
	LastKind      client.Kind
	LastPayload   any
	LastSignup    client.SignupRequest
	LastActivity  models.ActivityType
	LastTitle     string
	DeleteCalled  bool
	GenerateCalls int
}

func (f *fakeClient) SetToken(token string) { f.Token = token }

func (f *fakeClient) Login(ctx context.Context, username, password string) (*client.AuthResponse, error) {
	f.Calls++
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Signup(ctx context.Context, req client.SignupRequest) (*client.AuthResponse, error) {
	f.Calls++
	f.LastSignup = req
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) Generate(ctx context.Context, kind client.Kind, payload any) (json.RawMessage, error) {
	f.Calls++
	f.GenerateCalls++
	f.LastKind = kind
	f.LastPayload = payload
	if f.GenerateErr != nil {
		return nil, f.GenerateErr
	}
	return f.GenerateRet[kind], nil
}

func (f *fakeClient) Chat(ctx context.Context, message string, history []models.ChatTurn, language string) (string, error) {
	f.Calls++
	return f.ChatRet, f.ChatErr
}

func (f *fakeClient) LogActivity(ctx context.Context, typ models.ActivityType, title string) error {
	f.Calls++
	f.LastActivity = typ
	f.LastTitle = title
	return f.LogActivityErr
}

func (f *fakeClient) DeleteAccount(ctx context.Context) error {
	f.Calls++
	f.DeleteCalled = true
	return f.DeleteAccountErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

var testNow = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

type fixture struct {
	fc      *fakeClient
	deps    *Deps
	kv      *kv.MemoryStore
	clock   *breaker.ManualClock
	metrics *metrics.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kv.NewMemoryStore()
	clock := breaker.NewManualClock(testNow)
	fc := &fakeClient{}
	rec := metrics.New()
	deps := &Deps{
		Client:   fc,
		Local:    localstore.New(store, nil),
		Sessions: session.NewStore(store),
		Names:    session.NewNameHistory(store),
		Breaker:  breaker.New(5*time.Minute, breaker.WithClock(clock)),
		Metrics:  rec,
		State:    &State{},
		Now:      clock.Now,
		Language: "English",
	}
	return &fixture{fc: fc, deps: deps, kv: store, clock: clock, metrics: rec}
}
