package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mwiater/handytools/internal/appconfig"
)

// openMeteoResponse defines the fields we need from Open-Meteo.
type openMeteoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Current   struct {
		Time                string  `json:"time"`
		Temperature         float64 `json:"temperature_2m"`
		RelativeHumidity    int     `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed10M        float64 `json:"wind_speed_10m"`
		WindDirection10M    int     `json:"wind_direction_10m"`
		Precipitation       float64 `json:"precipitation"`
	} `json:"current"`
	Daily struct {
		Time                        []string  `json:"time"`
		WeatherCode                 []int     `json:"weather_code"`
		TemperatureMax              []float64 `json:"temperature_2m_max"`
		TemperatureMin              []float64 `json:"temperature_2m_min"`
		PrecipitationSum            []float64 `json:"precipitation_sum"`
		PrecipitationProbabilityMax []int     `json:"precipitation_probability_max"`
		WindSpeed10MMax             []float64 `json:"wind_speed_10m_max"`
	} `json:"daily"`
}

// weatherCodes maps WMO weather interpretation codes to short descriptions.
var weatherCodes = map[int]string{
	0:  "☀️ clear sky",
	1:  "🌤️ mainly clear",
	2:  "⛅ partly cloudy",
	3:  "☁️ overcast",
	45: "🌫️ fog",
	48: "🌫️ depositing rime fog",
	51: "🌦️ light drizzle",
	53: "🌦️ moderate drizzle",
	55: "🌦️ dense drizzle",
	56: "🌧️ light freezing drizzle",
	57: "🌧️ dense freezing drizzle",
	61: "🌧️ slight rain",
	63: "🌧️ moderate rain",
	65: "🌧️ heavy rain",
	66: "🌧️ light freezing rain",
	67: "🌧️ heavy freezing rain",
	71: "🌨️ slight snowfall",
	73: "🌨️ moderate snowfall",
	75: "🌨️ heavy snowfall",
	77: "❄️ snow grains",
	80: "🌦️ slight rain showers",
	81: "🌦️ moderate rain showers",
	82: "🌦️ violent rain showers",
	85: "🌨️ slight snow showers",
	86: "🌨️ heavy snow showers",
	95: "⛈️ thunderstorm",
	96: "⛈️ thunderstorm with slight hail",
	99: "⛈️ thunderstorm with heavy hail",
}

// currentFields and dailyFields are the fixed field lists requested from the
// forecast service, in the order they are declared here.
const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m,wind_direction_10m,precipitation"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max,wind_speed_10m_max"
)

// describeWeatherCode resolves a WMO code, rendering codes absent from the
// table as "unknown ({code})" instead of failing.
func describeWeatherCode(code int) string {
	if desc, ok := weatherCodes[code]; ok {
		return desc
	}
	return fmt.Sprintf("unknown (%d)", code)
}

// GetWeatherDefinition describes the forecast tool to the MCP host.
func GetWeatherDefinition() Definition {
	return Definition{
		Name:        GetWeatherName,
		Description: "Get the current weather and a daily forecast for a coordinate pair via Open-Meteo.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"latitude": map[string]any{
					"type":        "number",
					"description": "Latitude in decimal degrees.",
					"minimum":     -90,
					"maximum":     90,
				},
				"longitude": map[string]any{
					"type":        "number",
					"description": "Longitude in decimal degrees.",
					"minimum":     -180,
					"maximum":     180,
				},
				"forecast_days": map[string]any{
					"type":        "integer",
					"description": "Number of forecast days to return.",
					"minimum":     1,
					"maximum":     16,
					"default":     3,
				},
			},
			"required":             []string{"latitude", "longitude"},
			"additionalProperties": false,
		},
	}
}

// NewGetWeatherHandler builds the forecast handler around the configured
// Open-Meteo endpoint. The service resolves the timezone from the coordinates.
func NewGetWeatherHandler(cfg *appconfig.Config, client *http.Client) Handler {
	base := cfg.ForecastBaseURL()

	return func(args map[string]any) ([]ContentPart, error) {
		latitude, okLat := toFloat(args["latitude"])
		longitude, okLon := toFloat(args["longitude"])
		if !okLat || !okLon {
			return nil, fmt.Errorf("get_weather: coordinates missing after validation")
		}
		days, ok := toFloat(args["forecast_days"])
		if !ok {
			return nil, fmt.Errorf("get_weather: forecast_days missing after validation")
		}

		forecastURL := fmt.Sprintf(
			"%s/v1/forecast?latitude=%.4f&longitude=%.4f&current=%s&daily=%s&forecast_days=%d&timezone=auto",
			base, latitude, longitude, currentFields, dailyFields, int(days),
		)

		resp, err := client.Get(forecastURL)
		if err != nil {
			return ErrorContent("weather request failed: %v", err), nil
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return ErrorContent("weather service returned status: %s", resp.Status), nil
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return ErrorContent("failed to read weather response: %v", err), nil
		}

		var report openMeteoResponse
		if err := json.Unmarshal(body, &report); err != nil {
			return ErrorContent("failed to parse weather response: %v", err), nil
		}

		return TextContent(formatWeatherReport(report)), nil
	}
}

// formatWeatherReport renders the header, current block, and one line per
// forecast day, preserving the upstream day order.
func formatWeatherReport(report openMeteoResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Weather for %.4f, %.4f (%s)\n", report.Latitude, report.Longitude, report.Timezone)

	cur := report.Current
	fmt.Fprintf(&b, "\nCurrent (%s):\n", cur.Time)
	fmt.Fprintf(&b, "  %s\n", describeWeatherCode(cur.WeatherCode))
	fmt.Fprintf(&b, "  Temperature: %.1f°C (feels like %.1f°C)\n", cur.Temperature, cur.ApparentTemperature)
	fmt.Fprintf(&b, "  Humidity: %d%%\n", cur.RelativeHumidity)
	fmt.Fprintf(&b, "  Wind: %.1f km/h (%d°)\n", cur.WindSpeed10M, cur.WindDirection10M)
	fmt.Fprintf(&b, "  Precipitation: %.1f mm\n", cur.Precipitation)

	b.WriteString("\nDaily forecast:\n")
	for i, day := range report.Daily.Time {
		fmt.Fprintf(&b, "  %s: %s, %.1f–%.1f°C, precipitation %.1f mm (%d%%), wind up to %.1f km/h\n",
			day,
			describeWeatherCode(dailyAt(report.Daily.WeatherCode, i)),
			dailyAt(report.Daily.TemperatureMin, i),
			dailyAt(report.Daily.TemperatureMax, i),
			dailyAt(report.Daily.PrecipitationSum, i),
			dailyAt(report.Daily.PrecipitationProbabilityMax, i),
			dailyAt(report.Daily.WindSpeed10MMax, i),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

// dailyAt guards against upstream arrays of uneven length.
func dailyAt[T int | float64](values []T, i int) T {
	var zero T
	if i < 0 || i >= len(values) {
		return zero
	}
	return values[i]
}
