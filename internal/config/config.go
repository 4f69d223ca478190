package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
	IPInfo    IPInfoConfig
	GeoIP     GeoIPConfig
	Nominatim NominatimConfig
	Weather   WeatherConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds page session configuration
type AppConfig struct {
	LocateZoom     float64       // Zoom level the view animates to after visitor location resolves
	ClockInterval  time.Duration // Refresh period of the timezone clock line
	RequestTimeout time.Duration // Per-request timeout for outbound API calls
	OverlayPath    string        // Optional timezone boundary KML served to the map page
}

// IPInfoConfig configures the ipinfo.io visitor locator
type IPInfoConfig struct {
	BaseURL string
	Token   string
}

// GeoIPConfig configures the optional offline MMDB visitor locator
type GeoIPConfig struct {
	MMDBPath string // Empty disables the MMDB locator
}

// NominatimConfig configures the reverse geocoding client
type NominatimConfig struct {
	BaseURL           string
	UserAgent         string
	RequestsPerSecond float64
}

// WeatherConfig configures the OpenWeatherMap One Call client
type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Exclude string // Comma-separated One Call parts to exclude; empty fetches the full payload
}

// Load reads configuration from .env, file and environment variables
func Load() (*Config, error) {
	// A missing .env is fine; the process environment still applies
	_ = godotenv.Load()

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.weather-map")

	setDefaults(v)

	// Read from environment variables, e.g. WEATHER_MAP_WEATHER_APIKEY
	v.SetEnvPrefix("WEATHER_MAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("app.locatezoom", 10)
	v.SetDefault("app.clockinterval", 100*time.Millisecond)
	v.SetDefault("app.requesttimeout", 10*time.Second)
	v.SetDefault("app.overlaypath", "")

	v.SetDefault("ipinfo.baseurl", "https://ipinfo.io")
	v.SetDefault("ipinfo.token", "")
	v.SetDefault("geoip.mmdbpath", "")

	v.SetDefault("nominatim.baseurl", "https://nominatim.openstreetmap.org/reverse")
	v.SetDefault("nominatim.useragent", "weather-map/1.0")
	v.SetDefault("nominatim.requestspersecond", 1.0)

	v.SetDefault("weather.baseurl", "https://api.openweathermap.org/data/2.5/onecall")
	v.SetDefault("weather.apikey", "e6c67e6d24ed10099b1136d1b903a5f8")
	v.SetDefault("weather.exclude", "")
}

// Validate checks values that would otherwise fail later at request time
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.App.ClockInterval <= 0 {
		return fmt.Errorf("clock interval must be positive, got %s", c.App.ClockInterval)
	}
	if c.Nominatim.RequestsPerSecond <= 0 {
		return fmt.Errorf("nominatim requests per second must be positive, got %v", c.Nominatim.RequestsPerSecond)
	}
	if strings.TrimSpace(c.Weather.APIKey) == "" {
		return errors.New("weather api key is required")
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
