// Package units converts the SI/metric quantities returned by the weather
// API into display strings. Every function rounds to exactly two decimals;
// NaN and infinities pass through as "NaN", "+Inf" and "-Inf".
package units

import (
	"fmt"
	"math"
)

const (
	AbsoluteZeroCelsius    = 273.15
	AbsoluteZeroFahrenheit = 459.67
	StandardAtmosphereHpa  = 1013.25
	MetersPerSecondToMph   = 2.23694
	MetersPerMile          = 1609.344
)

func format(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// TemperatureKtoC converts Kelvin to degrees Celsius
func TemperatureKtoC(kelvin float64) string {
	return format(kelvin - AbsoluteZeroCelsius)
}

// TemperatureKtoF converts Kelvin to degrees Fahrenheit
func TemperatureKtoF(kelvin float64) string {
	return format(kelvin*9/5 - AbsoluteZeroFahrenheit)
}

// PressureHpaToAtm converts hectopascals to standard atmospheres
func PressureHpaToAtm(hpa float64) string {
	return format(hpa / StandardAtmosphereHpa)
}

// SpeedMeterspsToMilesph converts meters per second to miles per hour
func SpeedMeterspsToMilesph(metersPerSecond float64) string {
	return format(metersPerSecond * MetersPerSecondToMph)
}

// LengthMetersToMiles converts meters to statute miles
func LengthMetersToMiles(meters float64) string {
	return format(meters / MetersPerMile)
}

// AngleDegreeToRadian converts degrees to radians
func AngleDegreeToRadian(degrees float64) string {
	return format(degrees * math.Pi / 180)
}
