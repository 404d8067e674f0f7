package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventhub/backend/internal/auth"
	"github.com/eventhub/backend/internal/catalog"
	"github.com/eventhub/backend/internal/dashboard"
	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/live"
	"github.com/eventhub/backend/internal/middleware"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/internal/registrations"
	"github.com/eventhub/backend/pkg/kvstore"
)

func newAPI(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	src := catalog.NewMemory(catalog.SeedEvents())
	dir, err := auth.NewDirectory(auth.DefaultUsers(), bcrypt.MinCost)
	require.NoError(t, err)
	kv, err := kvstore.OpenBunt(kvstore.Memory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	jwtService := auth.NewJWTService("test-secret", 1)
	tickets := registrations.NewService(src, kv, nil, nil)
	authH := auth.NewHandler(dir, jwtService, nil)
	catH := catalog.NewHandler(src, nil)
	dashH := dashboard.NewHandler(&dashboard.Builder{Events: src, Users: dir, Tickets: tickets}, nil)
	liveH := live.NewHandler(live.NewManager(src, nil, nil), nil)
	regH := registrations.NewHandler(tickets, nil)

	r := gin.New()
	r.POST("/auth/login", authH.Login)
	r.GET("/events", catH.List)
	r.GET("/events/:id", catH.Get)
	api := r.Group("")
	api.Use(middleware.JWT(jwtService))
	api.GET("/dashboard", dashH.Get)
	api.POST("/events/:id/register", regH.Register)
	api.GET("/me/tickets", regH.Mine)
	api.GET("/sessions/:sessionId/panel", liveH.Get)
	api.POST("/sessions/:sessionId/panel/actions", liveH.Apply)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}

type cli struct {
	api   string
	store string
}

func (c cli) run(args ...string) (string, error) {
	var out bytes.Buffer
	full := append([]string{"--api-url", c.api, "--store", c.store}, args...)
	err := run(context.Background(), full, &out)
	return out.String(), err
}

func TestCLISessionSurvivesInvocations(t *testing.T) {
	c := cli{api: newAPI(t), store: filepath.Join(t.TempDir(), "session.db")}

	out, err := c.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not signed in")

	_, err = c.run("login", "--email", "attendee@example.com", "--password", "nope")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = c.run("login", "-e", "attendee@example.com", "-p", "attendee123")
	require.NoError(t, err)

	out, err = c.run("whoami")
	require.NoError(t, err)
	var u models.User
	require.NoError(t, json.Unmarshal([]byte(out), &u))
	assert.Equal(t, "Attendee User", u.Name)

	out, err = c.run("dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "attendee"`)

	out, err = c.run("buy", "2", "--type", "vip")
	require.NoError(t, err)
	assert.Contains(t, out, `"price": 175`)

	out, err = c.run("panel", "--session", "101", "vote", "d")
	require.NoError(t, err)
	var st live.State
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, 26, st.Poll.Options[3].Votes)

	_, err = c.run("panel", "--session", "101", "vote", "d")
	assert.ErrorIs(t, err, errs.ErrAlreadyVoted)

	out, err = c.run("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "signed out")

	out, err = c.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not signed in")

	_, err = c.run("buy", "1")
	assert.Error(t, err)
}

func TestCLIEventsFilter(t *testing.T) {
	c := cli{api: newAPI(t), store: ":memory:"}

	out, err := c.run("events", "-q", "ai", "-t", "AI", "--min-price", "100", "--max-price", "200")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "5\tAI & Machine Learning Conference\t$149\t"), out)
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("\n")))

	_, err = c.run("events", "--min-price", "300", "--max-price", "100")
	_, ok := errs.AsValidation(err)
	assert.True(t, ok)

	out, err = c.run("event", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Tech Summit 2025")
}

func TestEnvOverridesDefaults(t *testing.T) {
	api := newAPI(t)
	t.Setenv("EVENTHUB_API_URL", api)
	var out bytes.Buffer
	err := run(context.Background(), []string{"--store", ":memory:", "event", "4"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Design Systems Workshop")
}
