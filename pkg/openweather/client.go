/*
openweather implements an API client and tools for OpenWeather
https://openweathermap.org/api
*/
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	// Packages
	client "github.com/mutablelogic/go-client"
	upstream "github.com/mutablelogic/go-toolserver/pkg/upstream"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client calls the standard API host, and the pro host for hourly forecasts
type Client struct {
	api *upstream.Client
	pro *upstream.Client
	key string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint    = "https://api.openweathermap.org/data/2.5"
	proEndPoint = "https://pro.openweathermap.org/data/2.5"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client with an API key, which is sent as the appid query
// parameter. An empty key is not rejected here; the upstream refuses each
// call instead.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	api, err := upstream.New(endPoint, opts...)
	if err != nil {
		return nil, err
	}
	pro, err := upstream.New(proEndPoint, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{api: api, pro: pro, key: apiKey}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Current returns the current weather for a location
func (c *Client) Current(ctx context.Context, req *WeatherRequest) (json.RawMessage, error) {
	return c.get(ctx, c.api, "current weather", req.Values(c.key), "weather")
}

// Hourly returns an hourly forecast for a location
func (c *Client) Hourly(ctx context.Context, req *WeatherRequest) (json.RawMessage, error) {
	return c.get(ctx, c.pro, "hourly forecast", req.Values(c.key), "forecast", "hourly")
}

// Daily returns a daily forecast for a location
func (c *Client) Daily(ctx context.Context, req *WeatherRequest) (json.RawMessage, error) {
	return c.get(ctx, c.api, "daily forecast", req.Values(c.key), "forecast", "daily")
}

// AirPollution returns current air pollution data for a location
func (c *Client) AirPollution(ctx context.Context, req *WeatherRequest) (json.RawMessage, error) {
	return c.get(ctx, c.api, "current air pollution data", req.Values(c.key), "air_pollution")
}

// AirPollutionForecast returns forecast air pollution data for a location
func (c *Client) AirPollutionForecast(ctx context.Context, req *WeatherRequest) (json.RawMessage, error) {
	return c.get(ctx, c.api, "forecast air pollution data", req.Values(c.key), "air_pollution", "forecast")
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// get returns the whole response body
func (c *Client) get(ctx context.Context, host *upstream.Client, what string, query url.Values, path ...string) (json.RawMessage, error) {
	result, err := host.Get(ctx, "", query, path...)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return result, nil
}
