package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/middleware"
	"github.com/eventhub/backend/pkg/response"
)

// Result is the body of GET /dashboard.
type Result struct {
	Kind Kind `json:"kind"`
	View View `json:"view"`
}

// Handler serves the role dashboard.
type Handler struct {
	builder *Builder
	logger  *zap.Logger
}

// NewHandler creates a dashboard handler.
func NewHandler(builder *Builder, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{builder: builder, logger: logger}
}

// Get handles GET /dashboard?status=.
func (h *Handler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing user context")
		return
	}
	view, err := h.builder.Build(c.Request.Context(), user, Options{Status: StatusFilter(c.Query("status"))})
	if err != nil {
		h.logger.Warn("build dashboard failed", zap.Error(err), zap.String("user_id", user.ID))
		response.Error(c, err)
		return
	}
	res := Result{Kind: view.Kind(), View: view}
	if res.Kind == KindAccessDenied {
		c.JSON(http.StatusForbidden, response.Body{Success: false, Error: "access denied", Data: res})
		return
	}
	response.OK(c, res)
}
