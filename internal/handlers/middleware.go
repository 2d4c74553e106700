package handlers

import (
	"strconv"
	"time"

	"potarig/internal/metrics"

	"github.com/gin-gonic/gin"
)

// requestMiddleware logs every request and counts it by route and status.
func (h *Handler) requestMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()
	metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()

	if h.log != nil {
		h.log.Debugw("http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
