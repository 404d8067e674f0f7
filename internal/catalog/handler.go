package catalog

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/forms"
	"github.com/eventhub/backend/internal/middleware"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/pkg/response"
)

// Handler handles catalog HTTP endpoints.
type Handler struct {
	src    Source
	logger *zap.Logger
}

// NewHandler creates a catalog handler.
func NewHandler(src Source, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{src: src, logger: logger}
}

// List handles GET /events?q=&tags=&min_price=&max_price=&sort=.
func (h *Handler) List(c *gin.Context) {
	q, err := ParseQuery(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	events, err := h.src.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list events failed", zap.Error(err))
		response.Error(c, err)
		return
	}
	response.OK(c, Filter(events, q))
}

// Tags handles GET /events/tags.
func (h *Handler) Tags(c *gin.Context) {
	events, err := h.src.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list events failed", zap.Error(err))
		response.Error(c, err)
		return
	}
	response.OK(c, Tags(events))
}

// Get handles GET /events/:id.
func (h *Handler) Get(c *gin.Context) {
	e, err := h.src.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, e)
}

// Create handles POST /events. The form is validated and echoed back as a draft; the catalog
// itself is read-only.
func (h *Handler) Create(c *gin.Context) {
	var req forms.Event
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := forms.Validate(req); err != nil {
		response.Error(c, err)
		return
	}
	user, _ := middleware.CurrentUser(c)
	draft := Draft(req, user)
	h.logger.Info("event draft validated", zap.String("title", draft.Title), zap.String("organizer", draft.Organizer))
	response.Created(c, draft)
}

// Draft builds the unpublished event described by a validated form.
func Draft(f forms.Event, organizer models.User) models.Event {
	start, _ := time.Parse(time.RFC3339, f.StartDate)
	end, _ := time.Parse(time.RFC3339, f.EndDate)
	return models.Event{
		Title:       f.Title,
		Description: f.Description,
		StartDate:   start,
		EndDate:     end,
		Location:    f.Location,
		ImageURL:    f.ImageURL,
		Organizer:   organizer.Name,
		Prices:      models.PriceTiers{General: f.Price, VIP: f.VIPPrice},
		Tags:        f.Tags,
		Status:      models.EventDraft,
	}
}
