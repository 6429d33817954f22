// Package localstore keeps the on-device user directory used when the
// backend cannot be reached. The whole directory lives under one key of a
// kv.Store and every mutation rewrites it atomically.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/client/kv"
	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
	"github.com/dmitrijs2005/divyadrishti/internal/common"
	"github.com/dmitrijs2005/divyadrishti/internal/cryptox"
	"github.com/dmitrijs2005/divyadrishti/internal/logging"
)

var (
	ErrNotFound           = errors.New("user not found in local store")
	ErrExists             = errors.New("user already exists in local store")
	ErrInvalidCredentials = errors.New("invalid local credentials")
)

type Store struct {
	kv  kv.Store
	log logging.Logger
	now func() time.Time
}

func New(store kv.Store, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{kv: store, log: log, now: time.Now}
}

// ListUsers returns the directory. A corrupt blob reads as empty.
func (s *Store) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	blob, err := s.kv.Get(ctx, common.LocalUsersKey)
	if err != nil {
		return nil, fmt.Errorf("read local users: %w", err)
	}
	return s.decode(ctx, blob), nil
}

// FindUser looks a user up by username without checking a password.
func (s *Store) FindUser(ctx context.Context, username string) (*models.UserRecord, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(users, username); i >= 0 {
		return &users[i], nil
	}
	return nil, ErrNotFound
}

// Authenticate finds username and checks password against it. Records still
// holding a legacy plaintext password are rewritten with a verifier on the
// first successful match.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.UserRecord, error) {
	var found models.UserRecord
	err := s.update(ctx, func(users []models.UserRecord) ([]models.UserRecord, error) {
		i := indexOf(users, username)
		if i < 0 {
			return nil, ErrNotFound
		}
		u := &users[i]
		switch {
		case len(u.Verifier) > 0:
			if !cryptox.CheckPassword([]byte(password), u.Salt, u.Verifier) {
				return nil, ErrInvalidCredentials
			}
			found = *u
			return nil, errNoChange
		case u.Password != "" && u.Password == password:
			u.Salt, u.Verifier = cryptox.NewVerifier([]byte(password))
			u.Password = ""
			found = *u
			return users, nil
		default:
			return nil, ErrInvalidCredentials
		}
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// CreateUser adds a new local account. It fails with ErrExists when the
// username is taken.
func (s *Store) CreateUser(ctx context.Context, p models.Profile, password string) (*models.UserRecord, error) {
	rec := models.UserRecord{
		Profile:   p,
		CreatedAt: s.now().UTC(),
		Source:    models.LocalSource,
	}
	rec.ID = models.Local(p.Username)
	if rec.Activities == nil {
		rec.Activities = []models.Activity{}
	}
	rec.Salt, rec.Verifier = cryptox.NewVerifier([]byte(password))

	err := s.update(ctx, func(users []models.UserRecord) ([]models.UserRecord, error) {
		if indexOf(users, p.Username) >= 0 {
			return nil, ErrExists
		}
		return append(users, rec), nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpsertUser replaces any record with the same username by rec.
func (s *Store) UpsertUser(ctx context.Context, rec models.UserRecord) error {
	return s.update(ctx, func(users []models.UserRecord) ([]models.UserRecord, error) {
		out := users[:0]
		for _, u := range users {
			if u.Username != rec.Username {
				out = append(out, u)
			}
		}
		return append(out, rec), nil
	})
}

// AppendActivity prepends a to the user's history, keeping the newest
// models.MaxActivities entries. Unknown usernames are ignored.
func (s *Store) AppendActivity(ctx context.Context, username string, a models.Activity) error {
	return s.update(ctx, func(users []models.UserRecord) ([]models.UserRecord, error) {
		i := indexOf(users, username)
		if i < 0 {
			s.log.Warn(ctx, "activity for unknown local user dropped", "username", username)
			return nil, errNoChange
		}
		users[i].Activities = models.PrependActivity(users[i].Activities, a)
		return users, nil
	})
}

// DeleteUser removes username from the directory.
func (s *Store) DeleteUser(ctx context.Context, username string) error {
	return s.update(ctx, func(users []models.UserRecord) ([]models.UserRecord, error) {
		i := indexOf(users, username)
		if i < 0 {
			return nil, ErrNotFound
		}
		return append(users[:i], users[i+1:]...), nil
	})
}

var errNoChange = errors.New("no change")

// update runs fn over the decoded directory inside one kv.Update. fn
// returning errNoChange leaves the blob untouched and is not an error.
func (s *Store) update(ctx context.Context, fn func([]models.UserRecord) ([]models.UserRecord, error)) error {
	err := s.kv.Update(ctx, common.LocalUsersKey, func(old []byte) ([]byte, error) {
		users, err := fn(s.decode(ctx, old))
		if err != nil {
			return nil, err
		}
		return encodeUsers(users)
	})
	if errors.Is(err, errNoChange) {
		return nil
	}
	return err
}

func (s *Store) decode(ctx context.Context, blob []byte) []models.UserRecord {
	users, err := decodeUsers(blob)
	if err != nil {
		s.log.Warn(ctx, "local user directory unreadable, starting empty", "error", err)
		return nil
	}
	return users
}

func indexOf(users []models.UserRecord, username string) int {
	for i := range users {
		if users[i].Username == username {
			return i
		}
	}
	return -1
}
