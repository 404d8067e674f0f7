package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/forms"
	"github.com/eventhub/backend/internal/middleware"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/pkg/response"
)

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	dir    *Directory
	jwt    *JWTService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(dir *Directory, jwt *JWTService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{dir: dir, jwt: jwt, logger: logger}
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req forms.SignUp
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Role == "" {
		req.Role = models.RoleAttendee
	}
	if err := forms.Validate(req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.dir.SignUp(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.issue(c, user, true)
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req forms.SignIn
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := forms.Validate(req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.dir.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("sign-in rejected", zap.String("email", req.Email))
		response.Error(c, err)
		return
	}
	h.issue(c, user, false)
}

func (h *Handler) issue(c *gin.Context, user models.User, created bool) {
	token, err := h.jwt.Generate(user)
	if err != nil {
		h.logger.Error("generate token failed", zap.Error(err), zap.String("user_id", user.ID))
		response.Internal(c, "failed to generate token")
		return
	}
	if created {
		response.Created(c, TokenResponse{Token: token, User: user})
		return
	}
	response.OK(c, TokenResponse{Token: token, User: user})
}

// Me handles GET /auth/me.
func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing user context")
		return
	}
	response.OK(c, user)
}

// List handles GET /users (admin only).
func (h *Handler) List(c *gin.Context) {
	response.OK(c, h.dir.List(c.Request.Context()))
}
