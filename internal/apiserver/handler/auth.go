package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/haven/internal/apiserver/biz"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/pkg/auth/jwt"
	"github.com/kart-io/haven/pkg/middleware"
	"github.com/kart-io/haven/pkg/response"
)

// AuthHandler handles registration, login, and profile requests.
type AuthHandler struct {
	svc *biz.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *biz.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// RegisterRequest is the request body for account creation.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"omitempty,max=64"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the account and its token.
type AuthResponse struct {
	User  *model.User `json:"user"`
	Token *jwt.Token  `json:"token"`
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, &AuthResponse{User: user, Token: token})
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, &AuthResponse{User: user, Token: token})
}

// Me handles GET /v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, user)
}
