package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	_ "weather-map/internal/types" // imported for swagger type definitions
)

// handleGetVisitor godoc
// @Summary Get visitor location
// @Description Resolve the approximate coordinates of the caller from its IP address
// @Tags location
// @Produce json
// @Success 200 {object} types.Coords
// @Failure 502 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/visitor [get]
func (app *App) handleGetVisitor(c *gin.Context) {
	ctx, cancel := app.requestContext(c)
	defer cancel()

	coords, err := app.locationService.Locate(ctx, c.ClientIP())
	if err != nil {
		app.respondError(c, err, "failed to locate visitor")
		return
	}

	c.JSON(http.StatusOK, coords)
}

func (app *App) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if app.cfg.App.RequestTimeout > 0 {
		return context.WithTimeout(c.Request.Context(), app.cfg.App.RequestTimeout)
	}
	return context.WithCancel(c.Request.Context())
}
