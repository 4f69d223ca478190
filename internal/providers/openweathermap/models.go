package openweathermap

// OneCallAPIResponse is the One Call 2.5 payload. Only the fields the page
// shows are modelled; everything in Current is SI/metric (Kelvin, hPa, m/s,
// meters, degrees). Pointer fields are omitted by the API when unknown, wind
// gust in particular.
type OneCallAPIResponse struct {
	Lat            float64           `json:"lat"`
	Lon            float64           `json:"lon"`
	Timezone       string            `json:"timezone"`
	TimezoneOffset int               `json:"timezone_offset"`
	Current        CurrentConditions `json:"current"`
}

type CurrentConditions struct {
	Dt         int64              `json:"dt"`
	Sunrise    int64              `json:"sunrise,omitempty"`
	Sunset     int64              `json:"sunset,omitempty"`
	Temp       *float64           `json:"temp"`
	FeelsLike  *float64           `json:"feels_like"`
	Pressure   *float64           `json:"pressure"`
	Humidity   *float64           `json:"humidity"`
	DewPoint   *float64           `json:"dew_point"`
	Uvi        *float64           `json:"uvi"`
	Clouds     *float64           `json:"clouds"`
	Visibility *float64           `json:"visibility"`
	WindSpeed  *float64           `json:"wind_speed"`
	WindDeg    *float64           `json:"wind_deg"`
	WindGust   *float64           `json:"wind_gust"`
	Weather    []WeatherCondition `json:"weather"`
}

type WeatherCondition struct {
	Id          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
