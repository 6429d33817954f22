package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/client/client"
	"github.com/dmitrijs2005/divyadrishti/internal/client/fallback"
	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
)

// ContentService serves AI-backed content. Its methods never fail: when the
// backend cannot answer they return canned content of the same shape.
type ContentService interface {
	Kundali(ctx context.Context, req models.KundaliRequest) models.KundaliResult
	Match(ctx context.Context, req models.MatchRequest) models.MatchResult
	Chat(ctx context.Context, message string, history []models.ChatTurn, language string) string
	Panchang(ctx context.Context, req models.PanchangRequest) models.Panchang
	Horoscope(ctx context.Context, req models.HoroscopeRequest) string
	Prediction(ctx context.Context, req models.PredictionRequest) string
	// QuotaStatus reports whether AI calls are suspended and until when.
	QuotaStatus() (tripped bool, resetAt time.Time)
}

type contentService struct {
	d *Deps
}

func NewContentService(d *Deps) ContentService {
	d.defaults()
	return &contentService{d: d}
}

func (c *contentService) language(requested string) string {
	if strings.TrimSpace(requested) != "" {
		return requested
	}
	if c.d.Language != "" {
		return c.d.Language
	}
	return fallback.English.Name()
}

func (c *contentService) Kundali(ctx context.Context, req models.KundaliRequest) models.KundaliResult {
	req.Language = c.language(req.Language)
	lang := fallback.ResolveLanguage(req.Language)
	return aiWithFallback(ctx, c.d, "kundali",
		func(ctx context.Context) (models.KundaliResult, error) {
			var out models.KundaliResult
			err := c.generate(ctx, client.KindKundali, req, &out)
			if err == nil && out.Analysis == "" {
				err = fmt.Errorf("%w: kundali without analysis", client.ErrBadResponse)
			}
			return out, err
		},
		func() models.KundaliResult { return fallback.Kundali(req.Name, lang) },
	)
}

func (c *contentService) Match(ctx context.Context, req models.MatchRequest) models.MatchResult {
	req.Language = c.language(req.Language)
	lang := fallback.ResolveLanguage(req.Language)
	return aiWithFallback(ctx, c.d, "match",
		func(ctx context.Context) (models.MatchResult, error) {
			// Total shadows the embedded field so a missing total can be told
			// apart from an explicit zero.
			var reply struct {
				models.MatchResult
				Total *float64 `json:"total"`
			}
			if err := c.generate(ctx, client.KindMatch, req, &reply); err != nil {
				return models.MatchResult{}, err
			}
			if reply.Total == nil {
				return models.MatchResult{}, fmt.Errorf("%w: match without total", client.ErrBadResponse)
			}
			out := reply.MatchResult
			out.Total = *reply.Total
			return out, nil
		},
		func() models.MatchResult { return fallback.Match(lang) },
	)
}

func (c *contentService) Chat(ctx context.Context, message string, history []models.ChatTurn, language string) string {
	language = c.language(language)
	lang := fallback.ResolveLanguage(language)
	return aiWithFallback(ctx, c.d, "chat",
		func(ctx context.Context) (string, error) {
			return c.d.Client.Chat(ctx, message, history, language)
		},
		func() string { return fallback.Chat(message, lang) },
	)
}

func (c *contentService) Panchang(ctx context.Context, req models.PanchangRequest) models.Panchang {
	req.Language = c.language(req.Language)
	lang := fallback.ResolveLanguage(req.Language)
	return aiWithFallback(ctx, c.d, "panchang",
		func(ctx context.Context) (models.Panchang, error) {
			var out models.Panchang
			err := c.generate(ctx, client.KindPanchang, req, &out)
			if err == nil && out.Tithi == "" {
				err = fmt.Errorf("%w: panchang without tithi", client.ErrBadResponse)
			}
			return out, err
		},
		func() models.Panchang { return fallback.Panchang(req, lang, c.d.Now()) },
	)
}

func (c *contentService) Horoscope(ctx context.Context, req models.HoroscopeRequest) string {
	req.Language = c.language(req.Language)
	lang := fallback.ResolveLanguage(req.Language)
	return aiWithFallback(ctx, c.d, "horoscope",
		func(ctx context.Context) (string, error) {
			raw, err := c.d.Client.Generate(ctx, client.KindHoroscope, req)
			if err != nil {
				return "", err
			}
			return asText(raw)
		},
		func() string { return fallback.Horoscope(req.Sign, req.Timeframe, lang) },
	)
}

func (c *contentService) Prediction(ctx context.Context, req models.PredictionRequest) string {
	req.Language = c.language(req.Language)
	lang := fallback.ResolveLanguage(req.Language)
	return aiWithFallback(ctx, c.d, "prediction",
		func(ctx context.Context) (string, error) {
			raw, err := c.d.Client.Generate(ctx, client.KindPrediction, req)
			if err != nil {
				return "", err
			}
			return asText(raw)
		},
		func() string { return fallback.Prediction(req.Kind, req.Input, lang) },
	)
}

func (c *contentService) QuotaStatus() (bool, time.Time) {
	if !c.d.Breaker.IsTripped() {
		return false, time.Time{}
	}
	return true, c.d.Breaker.ResetAt()
}

func (c *contentService) generate(ctx context.Context, kind client.Kind, payload, out any) error {
	raw, err := c.d.Client.Generate(ctx, kind, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %w", client.ErrBadResponse, kind, err)
	}
	return nil
}

// asText turns a generator reply into display text. JSON strings are
// unquoted; anything else is shown as received.
func asText(raw json.RawMessage) (string, error) {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var out string
		if err := json.Unmarshal(raw, &out); err == nil {
			s = out
		}
	}
	if s == "" {
		return "", fmt.Errorf("%w: empty text", client.ErrBadResponse)
	}
	return s, nil
}
