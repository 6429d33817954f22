// Package services implements the hybrid online/offline layer of the client:
// authentication against the backend with a local fallback, AI-backed content
// with canned fallback behind a quota breaker, and activity logging.
package services

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/client/breaker"
	"github.com/dmitrijs2005/divyadrishti/internal/client/client"
	"github.com/dmitrijs2005/divyadrishti/internal/client/localstore"
	"github.com/dmitrijs2005/divyadrishti/internal/client/metrics"
	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
	"github.com/dmitrijs2005/divyadrishti/internal/client/session"
	"github.com/dmitrijs2005/divyadrishti/internal/logging"
)

// Deps are the collaborators shared by all services.
type Deps struct {
	Client   client.Client
	Local    *localstore.Store
	Sessions *session.Store
	Names    *session.NameHistory
	Breaker  *breaker.QuotaBreaker
	Metrics  *metrics.Recorder
	State    *State
	Log      logging.Logger
	Now      func() time.Time
	// Language is used when a request does not name one.
	Language string
}

func (d *Deps) defaults() {
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.State == nil {
		d.State = &State{}
	}
	if d.Breaker == nil {
		d.Breaker = breaker.New(breaker.DefaultCooldown)
	}
}

// State holds the signed-in session for the running process.
type State struct {
	mu   sync.RWMutex
	sess *models.Session
}

// Session returns a copy of the current session, or nil.
func (s *State) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return nil
	}
	c := *s.sess
	c.User.Activities = slices.Clone(s.sess.User.Activities)
	return &c
}

func (s *State) set(sess *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
}

// update applies fn to the current session and returns a copy of the result.
func (s *State) update(fn func(*models.Session)) *models.Session {
	s.mu.Lock()
	if s.sess == nil {
		s.mu.Unlock()
		return nil
	}
	fn(s.sess)
	s.mu.Unlock()
	return s.Session()
}

// call describes one remote operation and what to do when it fails.
type call[T any] struct {
	op       string
	aiBacked bool
	remote   func(ctx context.Context) (T, error)
	// local produces the result when remote failed with cause.
	local func(ctx context.Context, cause error) (T, error)
}

// withFallback runs c under the breaker policy: AI calls are skipped while
// the breaker is open, a quota error trips it, and every other remote
// failure goes to the local producer.
func withFallback[T any](ctx context.Context, d *Deps, c call[T]) (T, error) {
	if c.aiBacked && d.Breaker.IsTripped() {
		d.Metrics.Skipped(c.op)
		d.Metrics.Fallback(c.op)
		return c.local(ctx, client.ErrQuotaExceeded)
	}

	v, err := c.remote(ctx)
	d.Metrics.RemoteCall(c.op, err)
	if err == nil {
		return v, nil
	}

	if errors.Is(err, client.ErrQuotaExceeded) {
		if d.Breaker.Trip() {
			d.Metrics.BreakerTripped()
			d.Log.Warn(ctx, "AI quota exceeded, serving offline content",
				"op", c.op, "until", d.Breaker.ResetAt().Format(time.TimeOnly))
		}
	} else {
		d.Log.Warn(ctx, "backend call failed, using fallback", "op", c.op, "error", err)
	}
	d.Metrics.Fallback(c.op)
	return c.local(ctx, err)
}

// aiWithFallback is withFallback for content that always has a canned answer.
func aiWithFallback[T any](ctx context.Context, d *Deps, op string, remote func(ctx context.Context) (T, error), canned func() T) T {
	v, _ := withFallback(ctx, d, call[T]{
		op:       op,
		aiBacked: true,
		remote:   remote,
		local:    func(context.Context, error) (T, error) { return canned(), nil },
	})
	return v
}
