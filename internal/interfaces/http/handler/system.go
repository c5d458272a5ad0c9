package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/cache"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/persistence"
)

// SystemHandler handles liveness, readiness and platform discovery
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	views     cache.ViewStore
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, views cache.ViewStore, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		views:     views,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"goVersion" example:"go1.24.0"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// ReadinessResponse is the readiness payload with per-dependency status
type ReadinessResponse struct {
	Status       string            `json:"status" example:"ready"`
	Dependencies map[string]string `json:"dependencies"`
}

// Healthz godoc
// @ID           getHealth
// @Summary      Liveness probe
// @Description  Reports that the process is up; checks no dependencies
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /healthz [get]
func (h *SystemHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Readyz godoc
// @ID           getReadiness
// @Summary      Readiness probe
// @Description  Pings the database and view store; 503 with per-dependency status when degraded
// @Tags         system
// @Produce      json
// @Success      200 {object} ReadinessResponse
// @Failure      503 {object} ReadinessResponse
// @Router       /readyz [get]
func (h *SystemHandler) Readyz(c *gin.Context) {
	deps := make(map[string]string, 2)
	ready := true

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			deps["database"] = "down: " + err.Error()
			ready = false
		} else {
			deps["database"] = "up"
		}
	}

	if h.views != nil {
		if err := h.views.Ping(c.Request.Context()); err != nil {
			deps["viewStore"] = "down: " + err.Error()
			ready = false
		} else {
			deps["viewStore"] = "up"
		}
	}

	status := "ready"
	statusCode := http.StatusOK
	if !ready {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, ReadinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
