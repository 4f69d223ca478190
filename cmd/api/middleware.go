package main

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"weather-map/internal/metrics"
)

// requestLogger logs every request once it has been served and counts it
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(status)).Inc()

		logger.Info("request served",
			"method", c.Request.Method,
			"path", c.Request.URL.RequestURI(),
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
