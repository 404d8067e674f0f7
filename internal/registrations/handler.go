package registrations

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/forms"
	"github.com/eventhub/backend/internal/middleware"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/pkg/response"
)

// Handler handles registration HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Register handles POST /events/:id/register. The ticket type defaults to general.
func (h *Handler) Register(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing user context")
		return
	}
	var req forms.Registration
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request: "+err.Error())
			return
		}
	}
	if req.TicketType == "" {
		req.TicketType = models.TicketGeneral
	}
	if err := forms.Validate(req); err != nil {
		response.Error(c, err)
		return
	}
	t, err := h.svc.Register(c.Request.Context(), user, c.Param("id"), req.TicketType)
	if err != nil {
		h.logger.Debug("register failed", zap.Error(err), zap.String("event_id", c.Param("id")))
		response.Error(c, err)
		return
	}
	response.Created(c, t)
}

// Mine handles GET /me/tickets.
func (h *Handler) Mine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing user context")
		return
	}
	tickets, err := h.svc.ListForOwner(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list tickets failed", zap.Error(err), zap.String("user_id", user.ID))
		response.Error(c, err)
		return
	}
	response.OK(c, tickets)
}
