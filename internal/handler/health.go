package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// HealthHandler serves /health and /version
type HealthHandler struct {
	build   BuildInfo
	records int
	db      Pinger
}

// NewHealthHandler creates a health handler. db may be nil when the
// server runs without PostgreSQL.
func NewHealthHandler(build BuildInfo, records int, db Pinger) *HealthHandler {
	return &HealthHandler{build: build, records: records, db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":          "healthy",
		"service":         "real-estate-analysis",
		"version":         h.build.Version,
		"build_time":      h.build.BuildTime,
		"git_commit":      h.build.GitCommit,
		"dataset_records": h.records,
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = err.Error()
		} else {
			body["database"] = "ok"
		}
	}

	c.JSON(status, body)
}

// Version handles GET /version
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.build.Version,
		"build_time": h.build.BuildTime,
		"git_commit": h.build.GitCommit,
	})
}
