package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/horologe/storefront/internal/interfaces/http/dto"
)

// Pinger checks a dependency
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// SystemHandler serves the health endpoint
type SystemHandler struct {
	version  string
	database Pinger
	optional map[string]Pinger
	timeout  time.Duration
}

// NewSystemHandler creates a SystemHandler. The database is required for a
// healthy status; optional dependencies such as the cache are reported but
// never fail the check.
func NewSystemHandler(version string, database Pinger, optional map[string]Pinger) *SystemHandler {
	return &SystemHandler{
		version:  version,
		database: database,
		optional: optional,
		timeout:  2 * time.Second,
	}
}

// Health godoc
// @ID           health
// @Summary      Service health
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Failure      503 {object} dto.HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := dto.HealthResponse{
		Status:   "healthy",
		Version:  h.version,
		Services: map[string]string{},
	}
	status := http.StatusOK

	if h.database != nil {
		if err := h.database.Ping(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Services["database"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			resp.Services["database"] = "up"
		}
	}
	for name, p := range h.optional {
		if err := p.Ping(ctx); err != nil {
			resp.Services[name] = "degraded"
			if resp.Status == "healthy" {
				resp.Status = "degraded"
			}
			continue
		}
		resp.Services[name] = "up"
	}

	c.JSON(status, resp)
}
