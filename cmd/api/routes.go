package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Map page
	app.router.GET("/", app.handleIndex)
	app.router.StaticFS("/assets", http.FS(app.assets))
	app.router.GET("/overlay.geojson", app.handleTimezoneOverlay)
	app.router.GET("/overlay.kml", app.handleOverlay)
	app.router.GET("/ws", app.handleSession)

	// API endpoints
	v1 := app.router.Group("/api/v1")
	v1.GET("/visitor", app.handleGetVisitor)
	v1.GET("/render", app.handleGetRender)
	v1.GET("/click", app.handleGetClick)

	// Metrics
	metricsHandler := promhttp.Handler()
	app.router.GET("/metrics", func(c *gin.Context) {
		metricsHandler.ServeHTTP(c.Writer, c.Request)
	})

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
