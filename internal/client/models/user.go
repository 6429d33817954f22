// Package models defines client-side data models shared by the remote client,
// the local store and the fallback services.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// MaxActivities caps the per-user activity log; older entries are evicted.
const MaxActivities = 50

// LocalSource tags user records created while the backend was unreachable.
const LocalSource = "local_offline"

const localIDPrefix = "local_"

// IDKind tells which store issued a UserID.
type IDKind int

const (
	RemoteID IDKind = iota
	LocalID
)

// UserID identifies a user together with its provenance. The wire form is a
// plain string: the server id for remote users, "local_<username>" for local
// ones. Only ParseUserID looks at the prefix.
type UserID struct {
	Kind  IDKind
	Value string
}

func Remote(id string) UserID { return UserID{Kind: RemoteID, Value: id} }

func Local(username string) UserID { return UserID{Kind: LocalID, Value: username} }

// ParseUserID converts a wire id into a UserID.
func ParseUserID(s string) UserID {
	if rest, ok := strings.CutPrefix(s, localIDPrefix); ok {
		return Local(rest)
	}
	return Remote(s)
}

func (id UserID) IsLocal() bool { return id.Kind == LocalID }

func (id UserID) IsZero() bool { return id.Value == "" }

func (id UserID) String() string {
	if id.Kind == LocalID {
		return localIDPrefix + id.Value
	}
	return id.Value
}

func (id UserID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *UserID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*id = ParseUserID(s)
	return nil
}

// ActivityType classifies a logged user action.
type ActivityType string

const (
	ActivityChat      ActivityType = "chat"
	ActivityKundali   ActivityType = "kundali"
	ActivityMatching  ActivityType = "matching"
	ActivityHoroscope ActivityType = "horoscope"
	ActivityTool      ActivityType = "tool"
)

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityChat, ActivityKundali, ActivityMatching, ActivityHoroscope, ActivityTool:
		return true
	}
	return false
}

// Activity is one entry of a user's history. Timestamp is Unix milliseconds.
type Activity struct {
	ID        string       `json:"id,omitempty"`
	Type      ActivityType `json:"type"`
	Title     string       `json:"title"`
	Timestamp int64        `json:"timestamp"`
}

// NewActivity stamps an activity with the given time.
func NewActivity(id string, typ ActivityType, title string, at time.Time) Activity {
	return Activity{ID: id, Type: typ, Title: title, Timestamp: at.UnixMilli()}
}

// PrependActivity returns a new slice with a in front of list, truncated to
// MaxActivities. list is not modified.
func PrependActivity(list []Activity, a Activity) []Activity {
	n := len(list) + 1
	if n > MaxActivities {
		n = MaxActivities
	}
	out := make([]Activity, 0, n)
	out = append(out, a)
	out = append(out, list[:n-1]...)
	return out
}

// Profile is the user data shown by the UI and stored in the session snapshot.
type Profile struct {
	ID         UserID     `json:"id"`
	Username   string     `json:"username"`
	Name       string     `json:"name"`
	DOB        string     `json:"dob"`
	Time       string     `json:"time"`
	Place      string     `json:"place"`
	Activities []Activity `json:"activities"`
}

// UserRecord is an entry of the local user directory.
//
// Password is only ever read from legacy blobs; records written by this
// client carry Salt and Verifier instead.
type UserRecord struct {
	Profile
	Password  string    `json:"password,omitempty"`
	Salt      []byte    `json:"salt,omitempty"`
	Verifier  []byte    `json:"verifier,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Source    string    `json:"source,omitempty"`
}
