package openweather

import (
	"net/url"
	"strconv"

	// Packages
	param "github.com/mutablelogic/go-toolserver/pkg/param"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// WeatherRequest is a location with optional units and result count
type WeatherRequest struct {
	Lat   float64
	Lon   float64
	Units string
	Count int64
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newWeatherRequest(args param.Values) *WeatherRequest {
	return &WeatherRequest{
		Lat:   args.Float("lat"),
		Lon:   args.Float("lon"),
		Units: args.String("units"),
		Count: args.Int("cnt"),
	}
}

///////////////////////////////////////////////////////////////////////////////
// METHODS

// Values converts the request to query parameters, omitting unset
// units and count
func (r *WeatherRequest) Values(apiKey string) url.Values {
	result := url.Values{}
	result.Set("lat", strconv.FormatFloat(r.Lat, 'f', -1, 64))
	result.Set("lon", strconv.FormatFloat(r.Lon, 'f', -1, 64))
	if r.Units != "" {
		result.Set("units", r.Units)
	}
	if r.Count > 0 {
		result.Set("cnt", strconv.FormatInt(r.Count, 10))
	}
	result.Set("appid", apiKey)
	return result
}
