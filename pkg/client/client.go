// Package client talks to the EventHub HTTP API and keeps the bearer token in a local key-value store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/dashboard"
	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/live"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/pkg/kvstore"
)

// TokenKey is the key the bearer token is persisted under.
const TokenKey = "eventHubToken"

// ErrNotSignedIn is returned by calls that need a token when none is held.
var ErrNotSignedIn = errors.New("not signed in")

// APIError is a non-2xx answer from the API. It unwraps to the matching errs sentinel.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return errs.ErrInvalidCredentials
	case http.StatusForbidden:
		return errs.ErrForbidden
	case http.StatusNotFound:
		return errs.ErrNotFound
	case http.StatusConflict:
		switch e.Message {
		case errs.ErrEmailAlreadyRegistered.Error():
			return errs.ErrEmailAlreadyRegistered
		case errs.ErrAlreadyVoted.Error():
			return errs.ErrAlreadyVoted
		}
		return errs.ErrConflict
	}
	return nil
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Fields  []errs.FieldError `json:"fields"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// DashboardResult is the body of GET /dashboard. View is left raw because its shape depends on Kind.
type DashboardResult struct {
	Kind dashboard.Kind  `json:"kind"`
	View json.RawMessage `json:"view"`
}

// Client is an EventHub API client. It satisfies session.Authenticator.
type Client struct {
	baseURL string
	http    *http.Client
	kv      kvstore.Store
	logger  *zap.Logger

	mu    sync.RWMutex
	token string
}

// New creates a client for baseURL. kv may be nil to keep the token in memory only.
func New(baseURL string, kv kvstore.Store, hc *http.Client, logger *zap.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc, kv: kv, logger: logger}
}

// LoadToken restores a persisted token. A missing token is not an error.
func (c *Client) LoadToken(ctx context.Context) error {
	if c.kv == nil {
		return nil
	}
	tok, err := c.kv.Get(ctx, TokenKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
	return nil
}

// Token returns the bearer token currently held.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(ctx context.Context, tok string) error {
	if c.kv != nil {
		if err := c.kv.Set(ctx, TokenKey, tok); err != nil {
			return fmt.Errorf("write token: %w", err)
		}
	}
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
	return nil
}

// SignIn exchanges credentials for a token and returns the signed-in user.
func (c *Client) SignIn(ctx context.Context, email, password string) (models.User, error) {
	var res tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, false, &res); err != nil {
		return models.User{}, err
	}
	if err := c.setToken(ctx, res.Token); err != nil {
		return models.User{}, err
	}
	return res.User, nil
}

// SignUp registers a new account and returns it.
func (c *Client) SignUp(ctx context.Context, name, email, password string, role models.Role) (models.User, error) {
	var res tokenResponse
	body := map[string]string{
		"name":             name,
		"email":            email,
		"password":         password,
		"confirm_password": password,
		"role":             string(role),
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, false, &res); err != nil {
		return models.User{}, err
	}
	if err := c.setToken(ctx, res.Token); err != nil {
		return models.User{}, err
	}
	return res.User, nil
}

// SignOut forgets the token.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if c.kv == nil {
		return nil
	}
	if err := c.kv.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Me returns the user the held token belongs to.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, true, &u)
	return u, err
}

// Events lists the catalog filtered by query (q, tags, min_price, max_price, sort).
func (c *Client) Events(ctx context.Context, query url.Values) ([]models.Event, error) {
	var events []models.Event
	err := c.do(ctx, http.MethodGet, "/events", query, nil, false, &events)
	return events, err
}

// Tags lists every catalog tag.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	err := c.do(ctx, http.MethodGet, "/events/tags", nil, nil, false, &tags)
	return tags, err
}

// Event returns one event.
func (c *Client) Event(ctx context.Context, id string) (models.Event, error) {
	var e models.Event
	err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), nil, nil, false, &e)
	return e, err
}

// Dashboard returns the caller's dashboard. An access-denied dashboard is a result, not an error.
func (c *Client) Dashboard(ctx context.Context, status string) (DashboardResult, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	var res DashboardResult
	err := c.do(ctx, http.MethodGet, "/dashboard", q, nil, true, &res)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden && res.Kind == dashboard.KindAccessDenied {
		return res, nil
	}
	return res, err
}

// Panel opens the caller's panel for an event session.
func (c *Client) Panel(ctx context.Context, sessionID string) (live.State, error) {
	var st live.State
	err := c.do(ctx, http.MethodGet, panelPath(sessionID), nil, nil, true, &st)
	return st, err
}

// ApplyPanel runs one panel action and returns the new state.
func (c *Client) ApplyPanel(ctx context.Context, sessionID string, a live.Action) (live.State, error) {
	var st live.State
	err := c.do(ctx, http.MethodPost, panelPath(sessionID)+"/actions", nil, a, true, &st)
	return st, err
}

// ClosePanel discards the caller's panel.
func (c *Client) ClosePanel(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, panelPath(sessionID), nil, nil, true, nil)
}

// Register buys a ticket for an event.
func (c *Client) Register(ctx context.Context, eventID string, tt models.TicketType) (models.Ticket, error) {
	var t models.Ticket
	body := map[string]string{"ticket_type": string(tt)}
	err := c.do(ctx, http.MethodPost, "/events/"+url.PathEscape(eventID)+"/register", nil, body, true, &t)
	return t, err
}

// Tickets lists the caller's tickets.
func (c *Client) Tickets(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := c.do(ctx, http.MethodGet, "/me/tickets", nil, nil, true, &tickets)
	return tickets, err
}

func panelPath(sessionID string) string {
	return "/sessions/" + url.PathEscape(sessionID) + "/panel"
}

// do sends one request and decodes the envelope's data into out. On an error answer out is
// still filled when the envelope carries data.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, authed bool, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		tok := c.Token()
		if tok == "" {
			return ErrNotSignedIn
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("api call", zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode))

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if len(env.Fields) > 0 {
		return &errs.ValidationError{Fields: env.Fields}
	}
	return &APIError{Status: resp.StatusCode, Message: env.Error}
}
