/*
newsapi implements an API client and tools for NewsAPI
https://newsapi.org/docs/
*/
package newsapi

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	upstream "github.com/mutablelogic/go-toolserver/pkg/upstream"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*upstream.Client
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint   = "https://newsapi.org/v2"
	headerKey  = "X-Api-Key"
	resultKey  = "articles"
	language   = "en"
	pathSearch = "everything"
	pathTop    = "top-headlines"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client with an API key, which is sent as a request header.
// An empty key is not rejected here; the upstream refuses each call instead.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	opts = append([]client.ClientOpt{client.OptHeader(headerKey, apiKey)}, opts...)
	client, err := upstream.New(endPoint, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{Client: client}, nil
}
