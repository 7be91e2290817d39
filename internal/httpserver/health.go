package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adherence-srv/pkg/response"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the alert engine is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} response.Body "Service is healthy"
// @Failure 503 {object} response.Body "Data store unreachable"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.db.PingContext(ctx); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "data store connection failed")
		return
	}

	response.OK(c, gin.H{
		"status":   "healthy",
		"service":  "adherence-srv",
		"postgres": "connected",
	})
}

// readyCheck handles readiness check requests
// @Summary Readiness Check
// @Description Check if the alert engine is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} response.Body "Service is ready"
// @Failure 503 {object} response.Body "A dependency is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.db.PingContext(ctx); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "data store not available")
		return
	}
	if srv.reports != nil {
		if err := srv.reports.Health(ctx); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "report archive not available")
			return
		}
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": "adherence-srv",
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the alert engine process is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} response.Body "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": "adherence-srv",
	})
}
