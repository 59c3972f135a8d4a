package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	analyticsapp "github.com/horologe/storefront/internal/application/analytics"
)

// AnalyticsService computes reports for the back office
type AnalyticsService interface {
	Report(ctx context.Context, q analyticsapp.Query) (*analyticsapp.Report, error)
	Dashboard(ctx context.Context) (*analyticsapp.Dashboard, error)
}

// AnalyticsHandler handles reporting endpoints
type AnalyticsHandler struct {
	BaseHandler
	service AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(service AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Report godoc
// @ID           getAnalytics
// @Summary      Revenue analytics
// @Description  Revenue trend, category shares and KPIs over delivered orders. Defaults to the month view.
// @Tags         admin-analytics
// @Produce      json
// @Param        period query string false "Day, Week, Month or Year"
// @Success      200 {object} analyticsapp.Report
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/analytics [get]
func (h *AnalyticsHandler) Report(c *gin.Context) {
	var q analyticsapp.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	report, err := h.service.Report(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Dashboard godoc
// @ID           getDashboard
// @Summary      Back-office dashboard
// @Tags         admin-analytics
// @Produce      json
// @Success      200 {object} analyticsapp.Dashboard
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}
