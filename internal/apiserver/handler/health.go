package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/version"

	"github.com/kart-io/haven/pkg/component/storage"
	"github.com/kart-io/haven/pkg/response"
)

// HealthHandler serves liveness and version endpoints.
type HealthHandler struct {
	storage *storage.Manager
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(manager *storage.Manager) *HealthHandler {
	return &HealthHandler{storage: manager}
}

// Healthz handles GET /healthz. Component failures are reported per client;
// any failure turns the status to degraded with a 503.
func (h *HealthHandler) Healthz(c *gin.Context) {
	results := h.storage.HealthCheck(c.Request.Context())

	components := make(map[string]string, len(results))
	healthy := true
	for name, err := range results {
		if err != nil {
			components[name] = err.Error()
			healthy = false
			continue
		}
		components[name] = "ok"
	}

	body := gin.H{"status": "ok", "components": components}
	if !healthy {
		body["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

// Version handles GET /version.
func (h *HealthHandler) Version(c *gin.Context) {
	response.OK(c, version.Get())
}
