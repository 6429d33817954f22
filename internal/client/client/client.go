package client

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
)

// Kind names an AI-backed generator route under /ai/.
type Kind string

const (
	KindGenerate   Kind = "generate"
	KindKundali    Kind = "kundali"
	KindMatch      Kind = "match"
	KindPanchang   Kind = "panchang"
	KindHoroscope  Kind = "horoscope"
	KindPrediction Kind = "prediction"
)

// Valid reports whether k is a known generator route.
func (k Kind) Valid() bool {
	switch k {
	case KindGenerate, KindKundali, KindMatch, KindPanchang, KindHoroscope, KindPrediction:
		return true
	}
	return false
}

// AuthResponse is the backend reply to login and signup.
type AuthResponse struct {
	Token string         `json:"token"`
	User  models.Profile `json:"user"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	DOB      string `json:"dob" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	Place    string `json:"place" validate:"required"`
}

type Client interface {
	SetToken(token string)
	Login(ctx context.Context, username, password string) (*AuthResponse, error)
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Generate(ctx context.Context, kind Kind, payload any) (json.RawMessage, error)
	Chat(ctx context.Context, message string, history []models.ChatTurn, language string) (string, error)
	LogActivity(ctx context.Context, typ models.ActivityType, title string) error
	DeleteAccount(ctx context.Context) error
	Ping(ctx context.Context) error
}
