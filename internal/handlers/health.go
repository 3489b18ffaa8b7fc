package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/onskyline/science-interview/internal/adapters/docstore"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler reports service and document store status
type HealthHandler struct {
	store   docstore.DocumentStore
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store docstore.DocumentStore, version string) *HealthHandler {
	return &HealthHandler{store: store, version: version}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	storeStatus := "ok"
	if err := h.store.Ping(ctx); err != nil {
		logrus.WithError(err).WithField("store", h.store.Type()).Warn("Health check: document store unreachable")
		storeStatus = "unavailable"
		// An intentionally absent store does not make the service unhealthy
		if h.store.Type() != string(docstore.StoreTypeNone) {
			status = http.StatusServiceUnavailable
		}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"timestamp": time.Now().UTC(),
		"version":   h.version,
		"store": gin.H{
			"type":   h.store.Type(),
			"status": storeStatus,
		},
	})
}
