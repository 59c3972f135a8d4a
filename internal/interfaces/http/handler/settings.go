package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	settingsapp "github.com/horologe/storefront/internal/application/settings"
	"github.com/horologe/storefront/internal/domain/settings"
)

// SettingsService reads and patches the singleton settings
type SettingsService interface {
	GetPublic(ctx context.Context) (*settings.PublicSettings, error)
	GetStore(ctx context.Context) (*settingsapp.StoreResponse, error)
	UpdateStore(ctx context.Context, req settingsapp.UpdateStoreRequest) (*settingsapp.StoreResponse, error)
	GetLanding(ctx context.Context) (*settingsapp.LandingResponse, error)
	UpdateLanding(ctx context.Context, req settingsapp.UpdateLandingRequest) (*settingsapp.LandingResponse, error)
}

// SettingsHandler handles store and landing page settings
type SettingsHandler struct {
	BaseHandler
	service SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(service SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// GetPublic godoc
// @ID           getPublicSettings
// @Summary      Public store settings
// @Description  Store name, currency, shipping and contact details shown on the storefront
// @Tags         settings
// @Produce      json
// @Success      200 {object} settings.PublicSettings
// @Router       /settings [get]
func (h *SettingsHandler) GetPublic(c *gin.Context) {
	public, err := h.service.GetPublic(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, public)
}

// GetStore godoc
// @ID           getStoreSettings
// @Summary      Store settings
// @Tags         admin-settings
// @Produce      json
// @Success      200 {object} settingsapp.StoreResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/settings [get]
func (h *SettingsHandler) GetStore(c *gin.Context) {
	store, err := h.service.GetStore(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// UpdateStore godoc
// @ID           updateStoreSettings
// @Summary      Update store settings
// @Description  Partial update. Omitted fields keep their value.
// @Tags         admin-settings
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.UpdateStoreRequest true "Fields to change"
// @Success      200 {object} settingsapp.StoreResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/settings [post]
func (h *SettingsHandler) UpdateStore(c *gin.Context) {
	var req settingsapp.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	store, err := h.service.UpdateStore(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// GetLanding godoc
// @ID           getLandingSettings
// @Summary      Landing page settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} settingsapp.LandingResponse
// @Router       /landing [get]
func (h *SettingsHandler) GetLanding(c *gin.Context) {
	landing, err := h.service.GetLanding(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, landing)
}

// UpdateLanding godoc
// @ID           updateLandingSettings
// @Summary      Update landing page settings
// @Description  Partial update. Omitted fields keep their value.
// @Tags         admin-settings
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.UpdateLandingRequest true "Fields to change"
// @Success      200 {object} settingsapp.LandingResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/landing [post]
func (h *SettingsHandler) UpdateLanding(c *gin.Context) {
	var req settingsapp.UpdateLandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	landing, err := h.service.UpdateLanding(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, landing)
}
