package openweather

import (
	"context"
	"encoding/json"

	// Packages
	client "github.com/mutablelogic/go-client"
	param "github.com/mutablelogic/go-toolserver/pkg/param"
	tool "github.com/mutablelogic/go-toolserver/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	lat   = param.Number("lat", "Latitude, decimal (-90; 90)", param.Required(), param.Range(-90, 90), param.Title("latitude"))
	lon   = param.Number("lon", "Longitude, decimal (-180; 180)", param.Required(), param.Range(-180, 180), param.Title("longitude"))
	units = param.String("units", "Units of measurement (standard, metric, imperial)", param.Default("standard"),
		param.WithLabels(param.Identity("standard", "standard", "metric", "imperial")),
	)
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the weather and air pollution tools, sharing one client
func NewTools(apiKey string, opts ...client.ClientOpt) ([]tool.Tool, error) {
	client, err := New(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return client.Tools(), nil
}

// Tools returns the tools backed by this client
func (c *Client) Tools() []tool.Tool {
	return []tool.Tool{
		tool.New("get-current-weather", "Get the current weather for a given location",
			run(c.Current), lat, lon, units,
		),
		tool.New("get-hourly-forecast", "Get hourly weather forecast for a given location",
			run(c.Hourly), lat, lon, units,
			param.Integer("cnt", "Number of hours to return [1-40]", param.Default(12), param.Range(1, 40), param.Title("count")),
		),
		tool.New("get-daily-forecast", "Get daily weather forecast for a given location",
			run(c.Daily), lat, lon, units,
			param.Integer("cnt", "Number of days to return [1-16]", param.Default(7), param.Range(1, 16), param.Title("count")),
		),
		tool.New("get-current-air-pollution", "Get current air pollution data for a given location",
			run(c.AirPollution), lat, lon,
		),
		tool.New("get-forecast-air-pollution", "Get forecast air pollution data for a given location",
			run(c.AirPollutionForecast), lat, lon,
		),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func run(fn func(context.Context, *WeatherRequest) (json.RawMessage, error)) tool.RunFunc {
	return func(ctx context.Context, args param.Values) (json.RawMessage, error) {
		return fn(ctx, newWeatherRequest(args))
	}
}
