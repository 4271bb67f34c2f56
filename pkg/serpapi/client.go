/*
serpapi implements an API client and tools for the Google search verticals
of SerpApi
https://serpapi.com/search-api
*/
package serpapi

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

type Client struct {
	*upstream.Client
	key string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint   = "https://serpapi.com"
	searchPath = "search.json"
)

// Engines
const (
	EngineEvents   = "google_events"
	EngineFinance  = "google_finance"
	EngineFlights  = "google_flights"
	EngineHotels   = "google_hotels"
	EngineJobs     = "google_jobs"
	EngineLocal    = "google_local"
	EngineShopping = "google_shopping"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client with an API key, which is sent as the api_key query
// parameter. An empty key is not rejected here; the upstream refuses each
// call instead.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	client, err := upstream.New(endPoint, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{Client: client, key: apiKey}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Events returns the events_results of a google_events search
func (c *Client) Events(ctx context.Context, req *EventsRequest) (json.RawMessage, error) {
	return c.search(ctx, EngineEvents, "events_results", req.Values())
}

// Finance returns the summary of a google_finance search
func (c *Client) Finance(ctx context.Context, req *SearchRequest) (json.RawMessage, error) {
	return c.search(ctx, EngineFinance, "summary", req.Values())
}

// Flights returns the best_flights of a google_flights search
func (c *Client) Flights(ctx context.Context, req *FlightsRequest) (json.RawMessage, error) {
	return c.search(ctx, EngineFlights, "best_flights", req.Values())
}

// Hotels returns the properties of a google_hotels search
func (c *Client) Hotels(ctx context.Context, req *HotelsRequest) (json.RawMessage, error) {
	return c.search(ctx, EngineHotels, "properties", req.Values())
}

// Jobs returns the jobs_results of a google_jobs search
func (c *Client) Jobs(ctx context.Context, req *SearchRequest) (json.RawMessage, error) {
	return c.search(ctx, EngineJobs, "jobs_results", req.Values())
}

// Places returns the local_results of a google_local search
func (c *Client) Places(ctx context.Context, req *SearchRequest) (json.RawMessage, error) {
	return c.search(ctx, EngineLocal, "local_results", req.Values())
}

// Shopping returns the shopping_results of a google_shopping search
func (c *Client) Shopping(ctx context.Context, req *SearchRequest) (json.RawMessage, error) {
	return c.search(ctx, EngineShopping, "shopping_results", req.Values())
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) search(ctx context.Context, engine, key string, query url.Values) (json.RawMessage, error) {
	query.Set("engine", engine)
	query.Set("api_key", c.key)
	result, err := c.Get(ctx, key, query, searchPath)
	if err != nil {
		return nil, fmt.Errorf("%s search failed: %w", engine, err)
	}
	return result, nil
}
