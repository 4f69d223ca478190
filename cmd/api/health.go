package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"weather-map/docs"
)

// PingResponse represents the response for the ping endpoint
type PingResponse struct {
	Message string `json:"message" example:"pong"` // Response message
	Version string `json:"version" example:"1.0"`  // API version
	GeoIP   bool   `json:"geoip" example:"false"`  // Whether the offline visitor database is loaded
}

// handlePing godoc
// @Summary Ping health check
// @Description Check if the API is running and which visitor locator it uses
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message: "pong",
		Version: docs.SwaggerInfo.Version,
		GeoIP:   app.geoipReader != nil,
	})
}
