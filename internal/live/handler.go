package live

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/middleware"
	"github.com/eventhub/backend/pkg/response"
)

// Handler exposes panels over HTTP under /sessions/:sessionId/panel.
type Handler struct {
	mgr    *Manager
	logger *zap.Logger
}

// NewHandler creates a live panel handler.
func NewHandler(mgr *Manager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{mgr: mgr, logger: logger}
}

// Get handles GET /sessions/:sessionId/panel.
func (h *Handler) Get(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing user context")
		return
	}
	p, err := h.mgr.Open(c.Request.Context(), c.Param("sessionId"), viewer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p.Snapshot())
}

// Apply handles POST /sessions/:sessionId/panel/actions with an Action body.
func (h *Handler) Apply(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing user context")
		return
	}
	var a Action
	if err := c.ShouldBindJSON(&a); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	st, err := h.mgr.Apply(c.Request.Context(), c.Param("sessionId"), viewer, a)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, st)
}

// Close handles DELETE /sessions/:sessionId/panel.
func (h *Handler) Close(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing user context")
		return
	}
	h.mgr.Close(c.Param("sessionId"), viewer.ID)
	response.NoContent(c)
}
