package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"weather-map/internal/projection"
	_ "weather-map/internal/render" // imported for swagger type definitions
	"weather-map/internal/types"
)

// GetRenderInput defines the query parameters for the render endpoint
type GetRenderInput struct {
	Longitude *float64 `form:"longitude" binding:"required"` // Longitude in decimal degrees
	Latitude  *float64 `form:"latitude" binding:"required"`  // Latitude in decimal degrees
}

// GetClickInput defines the query parameters for the click endpoint
type GetClickInput struct {
	X *float64 `form:"x" binding:"required"` // EPSG:3857 easting in meters
	Y *float64 `form:"y" binding:"required"` // EPSG:3857 northing in meters
}

// handleGetRender godoc
// @Summary Render page fields for a coordinate
// @Description Reverse geocode the coordinate and fetch its current weather, formatted with unit conversions
// @Tags render
// @Produce json
// @Param longitude query number true "Longitude in decimal degrees" minimum(-180) maximum(180) example(-74.006)
// @Param latitude query number true "Latitude in decimal degrees" minimum(-90) maximum(90) example(40.7128)
// @Success 200 {object} render.Page
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/render [get]
func (app *App) handleGetRender(c *gin.Context) {
	var input GetRenderInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	app.renderPage(c, types.NewCoords(*input.Latitude, *input.Longitude))
}

// handleGetClick godoc
// @Summary Render page fields for a map click
// @Description Convert a clicked EPSG:3857 map point to longitude/latitude and render it
// @Tags render
// @Produce json
// @Param x query number true "Easting in meters" example(-8238310.235647004)
// @Param y query number true "Northing in meters" example(4970071.579142425)
// @Success 200 {object} render.Page
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/click [get]
func (app *App) handleGetClick(c *gin.Context) {
	var input GetClickInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	coords, err := projection.ToLonLat(*input.X, *input.Y)
	if err != nil {
		app.respondError(c, err, "failed to project click")
		return
	}

	app.renderPage(c, coords)
}

func (app *App) renderPage(c *gin.Context, coords types.Coords) {
	ctx, cancel := app.requestContext(c)
	defer cancel()

	page, err := app.renderService.Render(ctx, coords)
	if err != nil {
		app.respondError(c, err, "failed to render page")
		return
	}

	c.JSON(http.StatusOK, page)
}
