package live

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/backend/internal/middleware"
)

func newTestRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(m, nil)
	r := gin.New()
	g := r.Group("/sessions/:sessionId/panel", func(c *gin.Context) {
		c.Set(middleware.ContextUser, viewer)
	})
	g.GET("", h.Get)
	g.POST("/actions", h.Apply)
	g.DELETE("", h.Close)
	return r
}

func call(t *testing.T, r http.Handler, method, target string, body any) (int, State) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env struct {
		Data State `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env.Data
}

func TestHandlerPanelFlow(t *testing.T) {
	m := newTestManager(nil)
	r := newTestRouter(m)

	code, st := call(t, r, http.MethodGet, "/sessions/103/panel", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "103", st.SessionID)
	assert.Equal(t, TabChat, st.ActiveTab)

	code, st = call(t, r, http.MethodPost, "/sessions/103/panel/actions", Action{Type: ActionVotePoll, OptionID: "b"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 61, st.Poll.TotalVotes)

	code, _ = call(t, r, http.MethodPost, "/sessions/103/panel/actions", Action{Type: ActionVotePoll, OptionID: "c"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = call(t, r, http.MethodPost, "/sessions/103/panel/actions", Action{Type: ActionSelectTab, Tab: "nope"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, r, http.MethodPost, "/sessions/103/panel/actions", Action{Type: ActionPostQuestion})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, r, http.MethodGet, "/sessions/nope/panel", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, r, http.MethodDelete, "/sessions/103/panel", nil)
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, 0, m.Len())
}
