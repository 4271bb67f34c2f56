package newsapi

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
	pageSize = param.Integer("page_size", "Number of results to return (1-25)", param.Default(5), param.Range(1, 25))
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the news tools, sharing one client
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
		tool.New("get-news", "Get the latest news for a given topic",
			func(ctx context.Context, args param.Values) (json.RawMessage, error) {
				return c.Articles(ctx, newArticlesRequest(args))
			},
			param.String("topic", "Topic to search for", param.Required()),
			pageSize,
		),
		tool.New("get-headlines", "Get the latest headlines for a given country",
			func(ctx context.Context, args param.Values) (json.RawMessage, error) {
				return c.Headlines(ctx, newHeadlinesRequest(args))
			},
			param.String("country", "Country code (2 letters)", param.Required(), param.Length(2), param.Lower()),
			pageSize,
		),
	}
}
