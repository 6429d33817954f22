// Package session persists the signed-in user between runs and keeps the
// name auto-suggestion history.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/divyadrishti/internal/client/kv"
	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
	"github.com/dmitrijs2005/divyadrishti/internal/common"
)

// Store saves the bearer token and a snapshot of the session under
// separate keys, matching the layout older clients wrote.
type Store struct {
	kv kv.Store
}

func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

type snapshot struct {
	User   models.Profile       `json:"user"`
	Source models.SessionSource `json:"source,omitempty"`
}

func (s *Store) Save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(snapshot{User: sess.User, Source: sess.Source})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.kv.Set(ctx, common.SessionKey, data); err != nil {
		return err
	}
	return s.kv.Set(ctx, common.TokenKey, []byte(sess.Token))
}

// Load returns the saved session, or nil when there is none or the saved
// data cannot be read.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	token, err := s.kv.Get(ctx, common.TokenKey)
	if err != nil {
		return nil, err
	}
	data, err := s.kv.Get(ctx, common.SessionKey)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 || len(data) == 0 {
		return nil, nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil
	}
	// snapshots written before the source field existed
	if snap.Source == "" {
		snap.Source = models.SessionRemote
		if string(token) == common.LocalTokenValue || snap.User.ID.IsLocal() {
			snap.Source = models.SessionLocal
		}
	}
	return &models.Session{User: snap.User, Token: string(token), Source: snap.Source}, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, common.SessionKey); err != nil {
		return err
	}
	return s.kv.Delete(ctx, common.TokenKey)
}
