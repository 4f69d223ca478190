package render

import (
	"math"
	"strconv"
	"strings"
	"time"

	"weather-map/internal/providers/openweathermap"
	"weather-map/internal/types"
	"weather-map/internal/units"
)

const (
	// UnknownLocation replaces the place name where reverse geocoding finds nothing
	UnknownLocation = "Unknown location\nOr you are in the middle of the ocean"

	// MinDisplayRows is the row count of the place text area for a one-segment name
	MinDisplayRows = 3

	// ClockLayout renders e.g. "Thu, 19 Oct 2023, 2:05:09.042 pm"
	ClockLayout = "Mon, 2 Jan 2006, 3:04:05.000 pm"

	addressSeparator = ", "
	notAvailable     = "n/a"
)

// Page is every field of the page for one render cycle
type Page struct {
	Longitude     float64 `json:"longitude" example:"-74.006"`
	Latitude      float64 `json:"latitude" example:"40.7128"`
	DisplayName   string  `json:"display_name" example:"New York,\nUnited States"`
	DisplayRows   int     `json:"display_rows" example:"4"`
	Timezone      string  `json:"timezone" example:"America/New_York"`
	Temperature   string  `json:"temperature" example:"15.00 °C (59.00 °F)"`
	FeelsLike     string  `json:"feels_like" example:"14.35 °C (57.83 °F)"`
	Humidity      string  `json:"humidity" example:"72 %"`
	Pressure      string  `json:"pressure" example:"1013 hPa (1.00 atm)"`
	WindSpeed     string  `json:"wind_speed" example:"4.6 m/s (10.29 Mph)"`
	WindDirection string  `json:"wind_direction" example:"180 ° (3.14 rad)"`
	WindGust      string  `json:"wind_gust" example:"7.2 m/s (16.11 Mph)"`
	Clouds        string  `json:"clouds" example:"40 %"`
	UVIndex       string  `json:"uv_index" example:"3.1"`
	Visibility    string  `json:"visibility" example:"10000 m (6.21 Miles)"`

	location *time.Location
}

// Location returns the loaded timezone of the page, used by the clock
func (p *Page) Location() *time.Location {
	if p.location == nil {
		return time.UTC
	}
	return p.location
}

// FormatDisplayName breaks a comma separated address onto one line per
// segment and sizes the text area to fit.
func FormatDisplayName(displayName string) (string, int) {
	if displayName == "" {
		return UnknownLocation, MinDisplayRows
	}
	separators := strings.Count(displayName, addressSeparator)
	return strings.ReplaceAll(displayName, addressSeparator, ",\n"), separators + MinDisplayRows
}

// ClockLine is the content of the timezone text area at instant now
func ClockLine(timezone string, loc *time.Location, now time.Time) string {
	return timezone + "\n" + now.In(loc).Format(ClockLayout)
}

func newPage(coords types.Coords, displayName string, timezone string, loc *time.Location, current openweathermap.CurrentConditions) *Page {
	name, rows := FormatDisplayName(displayName)

	return &Page{
		Longitude:     coords.Longitude,
		Latitude:      coords.Latitude,
		DisplayName:   name,
		DisplayRows:   rows,
		Timezone:      timezone,
		Temperature:   formatTemperature(current.Temp),
		FeelsLike:     formatTemperature(current.FeelsLike),
		Humidity:      native(current.Humidity) + " %",
		Pressure:      native(current.Pressure) + " hPa (" + units.PressureHpaToAtm(value(current.Pressure)) + " atm)",
		WindSpeed:     formatSpeed(current.WindSpeed),
		WindDirection: native(current.WindDeg) + " ° (" + units.AngleDegreeToRadian(value(current.WindDeg)) + " rad)",
		WindGust:      formatSpeed(current.WindGust),
		Clouds:        native(current.Clouds) + " %",
		UVIndex:       native(current.Uvi),
		Visibility:    native(current.Visibility) + " m (" + units.LengthMetersToMiles(value(current.Visibility)) + " Miles)",
		location:      loc,
	}
}

func formatTemperature(kelvin *float64) string {
	k := value(kelvin)
	return units.TemperatureKtoC(k) + " °C (" + units.TemperatureKtoF(k) + " °F)"
}

func formatSpeed(metersPerSecond *float64) string {
	return native(metersPerSecond) + " m/s (" + units.SpeedMeterspsToMilesph(value(metersPerSecond)) + " Mph)"
}

// native prints an API value the way it arrived, shortest round-trip form
func native(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// value feeds a missing reading to the converters as NaN
func value(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
