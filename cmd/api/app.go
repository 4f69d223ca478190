package main

import (
	"io/fs"
	"log/slog"

	"github.com/gin-gonic/gin"

	"weather-map/internal/config"
	"weather-map/internal/location"
	"weather-map/internal/providers/geoip"
	"weather-map/internal/providers/ipinfo"
	"weather-map/internal/providers/openstreetmap"
	"weather-map/internal/providers/openweathermap"
	"weather-map/internal/render"
	"weather-map/internal/session"
	"weather-map/internal/timezone"

	_ "weather-map/docs" // Ensure docs are imported
)

// App encapsulates application dependencies
type App struct {
	router          *gin.Engine
	logger          *slog.Logger
	locationService location.Service
	renderService   render.Service
	geoipReader     *geoip.Reader
	sessionOptions  session.Options
	assets          fs.FS
	cfg             *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	tz, err := timezone.NewService()
	if err != nil {
		return nil, err
	}

	reader, err := geoip.NewReader(cfg.GeoIP.MMDBPath)
	if err != nil {
		return nil, err
	}

	var locationSvc location.Service
	if reader != nil {
		logger.Info("using offline geoip database", "path", reader.Path())
		locationSvc = location.NewLocationServiceWithProviders(
			logger,
			ipinfo.NewClient(logger, cfg.IPInfo.BaseURL, cfg.IPInfo.Token),
			reader,
		)
	} else {
		locationSvc = location.NewLocationService(logger, cfg.IPInfo.BaseURL, cfg.IPInfo.Token)
	}

	renderSvc := render.NewRenderServiceWithProviders(
		logger,
		openstreetmap.NewClient(logger, cfg.Nominatim.BaseURL, cfg.Nominatim.UserAgent, cfg.Nominatim.RequestsPerSecond),
		openweathermap.NewClient(logger, cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Exclude),
		tz,
		cfg.App.RequestTimeout,
	)

	app := newApp(cfg, logger, locationSvc, renderSvc)
	app.geoipReader = reader
	return app, nil
}

// newApp wires the router around already constructed services
func newApp(cfg *config.Config, logger *slog.Logger, locationSvc location.Service, renderSvc render.Service) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	app := &App{
		router:          router,
		logger:          logger,
		locationService: locationSvc,
		renderService:   renderSvc,
		sessionOptions: session.Options{
			LocateZoom:    cfg.App.LocateZoom,
			ClockInterval: cfg.App.ClockInterval,
			LocateTimeout: cfg.App.RequestTimeout,
		},
		assets: webAssets(),
		cfg:    cfg,
	}

	// Register routes
	app.registerRoutes()

	return app
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}

// Close releases resources held by the services
func (app *App) Close() error {
	if app.geoipReader != nil {
		return app.geoipReader.Close()
	}
	return nil
}
