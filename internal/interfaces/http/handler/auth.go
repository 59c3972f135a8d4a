package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/horologe/storefront/internal/application/identity"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/auth"
	"github.com/horologe/storefront/internal/interfaces/http/middleware"
)

// AuthService issues and revokes back-office sessions
type AuthService interface {
	Login(ctx context.Context, req identityapp.LoginRequest) (*identityapp.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*identityapp.UserResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	service AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @ID           login
// @Summary      Sign in to the back office
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Credentials"
// @Success      200 {object} identityapp.LoginResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      429 {object} dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Me godoc
// @ID           getCurrentUser
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} identityapp.UserResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Logout godoc
// @ID           logout
// @Summary      Revoke the current token
// @Tags         auth
// @Success      204
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
