package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
	"github.com/dmitrijs2005/divyadrishti/internal/common"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 30 * time.Second

	maxMessageLen = 200
)

// HTTPClient is the Client implementation for the REST backend.
type HTTPClient struct {
	baseURL string
	rootURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewHTTPClient returns a client for the API rooted at baseURL, for example
// "http://localhost:5000/api". An empty baseURL selects DefaultBaseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	root := *u
	root.Path, root.RawQuery = "/", ""

	c := &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		rootURL: root.String(),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	in := map[string]string{"username": username, "password": password}
	data, err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/login", in, true)
	if err != nil {
		return nil, err
	}
	return c.decodeAuth(data)
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	data, err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/signup", req, true)
	if err != nil {
		return nil, err
	}
	return c.decodeAuth(data)
}

// Generate posts payload to /ai/<kind>. A {"text": ...} reply is unwrapped
// and its text returned as-is, which may be prose rather than JSON; any
// other JSON reply is returned verbatim.
func (c *HTTPClient) Generate(ctx context.Context, kind Kind, payload any) (json.RawMessage, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown generator %q", kind)
	}
	data, err := c.do(ctx, http.MethodPost, c.baseURL+"/ai/"+string(kind), payload, false)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s reply is not JSON", ErrBadResponse, kind)
	}
	if text, ok := textField(data); ok && text != "" {
		return json.RawMessage(text), nil
	}
	return json.RawMessage(data), nil
}

func (c *HTTPClient) Chat(ctx context.Context, message string, history []models.ChatTurn, language string) (string, error) {
	in := struct {
		Message  string            `json:"message"`
		History  []models.ChatTurn `json:"history,omitempty"`
		Language string            `json:"language"`
	}{message, history, language}

	data, err := c.do(ctx, http.MethodPost, c.baseURL+"/ai/chat", in, false)
	if err != nil {
		return "", err
	}
	text, ok := textField(data)
	if !ok {
		return "", fmt.Errorf("%w: chat reply has no text", ErrBadResponse)
	}
	return text, nil
}

func (c *HTTPClient) LogActivity(ctx context.Context, typ models.ActivityType, title string) error {
	in := map[string]string{"type": string(typ), "title": title}
	_, err := c.do(ctx, http.MethodPost, c.baseURL+"/user/history", in, false)
	return err
}

func (c *HTTPClient) DeleteAccount(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, c.baseURL+"/user/delete", nil, false)
	return err
}

// Ping checks the liveness route at the server root.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, c.rootURL, nil, false)
	return err
}

func (c *HTTPClient) do(ctx context.Context, method, target string, in any, authRoute bool) ([]byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.Token(); tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, mapStatus(resp.StatusCode, data, authRoute)
}

func (c *HTTPClient) decodeAuth(data []byte) (*AuthResponse, error) {
	var out AuthResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: auth reply has no token", ErrBadResponse)
	}
	// ids issued by the server are always remote
	if out.User.ID.IsLocal() {
		out.User.ID = models.Remote(out.User.ID.String())
	}
	c.SetToken(out.Token)
	return &out, nil
}

func mapStatus(code int, body []byte, authRoute bool) error {
	msg := serverMessage(body)

	if code == http.StatusTooManyRequests || isQuotaBody(body) {
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, msg)
	}
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case authRoute && code == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	}
	return &StatusError{Code: code, Message: msg}
}

func isQuotaBody(body []byte) bool {
	return bytes.Contains(body, []byte("RESOURCE_EXHAUSTED")) ||
		bytes.Contains(body, []byte("Quota Exceeded"))
}

func serverMessage(body []byte) string {
	var eb struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Error != "" {
			return eb.Error
		}
		if eb.Message != "" {
			return eb.Message
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen]
	}
	return msg
}

func textField(data []byte) (string, bool) {
	var w struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(data, &w); err != nil || w.Text == nil {
		return "", false
	}
	return *w.Text, true
}
