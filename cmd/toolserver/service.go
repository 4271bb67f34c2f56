package main

import (
	"fmt"
	"slices"

	// Packages
	client "github.com/mutablelogic/go-client"
	logger "github.com/mutablelogic/go-toolserver/pkg/logger"
	newsapi "github.com/mutablelogic/go-toolserver/pkg/newsapi"
	openweather "github.com/mutablelogic/go-toolserver/pkg/openweather"
	param "github.com/mutablelogic/go-toolserver/pkg/param"
	serpapi "github.com/mutablelogic/go-toolserver/pkg/serpapi"
	tool "github.com/mutablelogic/go-toolserver/pkg/tool"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	serviceNews    = "news"
	serviceWeather = "weather"
	serviceSerpAPI = "serpapi"
	serviceAll     = "all"
)

var services = []string{serviceNews, serviceWeather, serviceSerpAPI}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Toolkit returns the tools for a service, or for all services. A missing
// credential is logged but not fatal: calls will fail upstream.
func (g *Globals) Toolkit(service string) (*tool.Toolkit, error) {
	names := []string{service}
	if service == serviceAll {
		names = services
	}

	// Client options
	opts := []client.ClientOpt{}
	if g.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.Timeout))
	}

	var tools []tool.Tool
	for _, name := range names {
		var key string
		var fn func(string, ...client.ClientOpt) ([]tool.Tool, error)
		switch name {
		case serviceNews:
			key, fn = g.NewsAPIKey, newsapi.NewTools
		case serviceWeather:
			key, fn = g.OpenWeatherKey, openweather.NewTools
		case serviceSerpAPI:
			key, fn = g.SerpAPIKey, serpapi.NewTools
		default:
			return nil, fmt.Errorf("unknown service %q, expected one of %v", name, append(slices.Clone(services), serviceAll))
		}
		if key == "" {
			g.logger.Warnw("credential is not set, calls will fail", "service", name)
		} else {
			g.logger.Debugw("credential", "service", name, "key", logger.Secret(key))
		}
		t, err := fn(key, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		tools = append(tools, t...)
	}

	// Label policy
	policy := param.Fallback
	if g.StrictLabels {
		policy = param.Strict
	}

	return tool.NewToolkit(
		tool.WithTool(tools...),
		tool.WithPolicy(policy),
		tool.WithTracer(g.tracer),
		tool.WithLogger(g.logger),
	)
}
