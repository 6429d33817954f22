package models

// SessionSource records which store authenticated the session.
type SessionSource string

const (
	SessionRemote SessionSource = "remote"
	SessionLocal  SessionSource = "local"
)

// Session is the currently authenticated user plus its bearer token.
type Session struct {
	User   Profile       `json:"user"`
	Token  string        `json:"token"`
	Source SessionSource `json:"source"`
}

// IsLocal reports whether the session was created against the local store.
func (s *Session) IsLocal() bool {
	return s.Source == SessionLocal
}
