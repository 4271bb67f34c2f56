package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Articles searches all articles and returns the articles array
func (c *Client) Articles(ctx context.Context, req *ArticlesRequest) (json.RawMessage, error) {
	result, err := c.Get(ctx, resultKey, req.Values(), pathSearch)
	if err != nil {
		return nil, fmt.Errorf("failed to get news: %w", err)
	}
	return result, nil
}

// Headlines returns top headlines for a country as the articles array
func (c *Client) Headlines(ctx context.Context, req *HeadlinesRequest) (json.RawMessage, error) {
	result, err := c.Get(ctx, resultKey, req.Values(), pathTop)
	if err != nil {
		return nil, fmt.Errorf("failed to get news: %w", err)
	}
	return result, nil
}
