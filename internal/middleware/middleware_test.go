package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/eventhub/backend/internal/models"
)

type staticTokens map[string]models.User

func (s staticTokens) Parse(token string) (models.User, error) {
	u, ok := s[token]
	if !ok {
		return models.User{}, errors.New("bad token")
	}
	return u, nil
}

func serve(r http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(tok string) http.Header {
	return http.Header{"Authorization": {"Bearer " + tok}}
}

func TestJWTAndRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := staticTokens{
		"admin":    {ID: "1", Role: models.RoleAdmin},
		"attendee": {ID: "3", Role: models.RoleAttendee},
	}
	r := gin.New()
	r.Use(Logger(zap.NewNop()), JWT(tokens))
	r.GET("/me", func(c *gin.Context) {
		u, ok := CurrentUser(c)
		assert.True(t, ok)
		c.String(http.StatusOK, u.ID)
	})
	r.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", http.Header{"Authorization": {"Token admin"}}).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", bearer("forged")).Code)

	w := serve(r, http.MethodGet, "/me", bearer("attendee"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Body.String())

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", bearer("attendee")).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/admin", bearer("admin")).Code)
}

func TestRateLimitPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewIPRateLimiter(ctx, rate.Every(time.Hour), 2, 0, nil)

	r := gin.New()
	r.Use(RateLimit(l))
	r.POST("/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	from := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, from("10.0.0.1"))
	assert.Equal(t, http.StatusOK, from("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, from("10.0.0.1"))
	assert.Equal(t, http.StatusOK, from("10.0.0.2"))
	assert.Same(t, l.Limiter("10.0.0.1"), l.Limiter("10.0.0.1"))
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("http://localhost:3000, http://localhost:5173"))
	r.GET("/events", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/events", http.Header{"Origin": {"http://localhost:5173"}})
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	w = serve(r, http.MethodGet, "/events", http.Header{"Origin": {"http://evil.test"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodOptions, "/events", http.Header{"Origin": {"http://localhost:3000"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
}
