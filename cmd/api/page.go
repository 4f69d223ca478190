package main

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"weather-map/internal/timezone"
)

//go:embed web
var webFS embed.FS

var indexTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

// webAssets returns the page assets rooted at web/
func webAssets() fs.FS {
	assets, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	return assets
}

// handleIndex serves the map page
func (app *App) handleIndex(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	overlay, format := "/overlay.geojson", "geojson"
	if app.cfg.App.OverlayPath != "" {
		overlay, format = "/overlay.kml", "kml"
	}
	err := indexTemplate.Execute(c.Writer, gin.H{
		"Overlay":       overlay,
		"OverlayFormat": format,
	})
	if err != nil {
		app.logger.Error("failed to render index page", "error", err)
	}
}

// handleTimezoneOverlay godoc
// @Summary Timezone boundaries
// @Description Timezone boundary polygons as a GeoJSON FeatureCollection with a tzid property per feature
// @Tags map
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /overlay.geojson [get]
func (app *App) handleTimezoneOverlay(c *gin.Context) {
	data, err := timezone.BoundariesGeoJSON()
	if err != nil {
		app.logger.Error("failed to build timezone overlay", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to build timezone overlay"})
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "application/geo+json", data)
}

// handleOverlay serves the configured timezone boundary KML
func (app *App) handleOverlay(c *gin.Context) {
	if app.cfg.App.OverlayPath == "" {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no overlay configured"})
		return
	}
	c.Header("Content-Type", "application/vnd.google-earth.kml+xml")
	c.File(app.cfg.App.OverlayPath)
}
