package newsapi

import (
	"net/url"
	"strconv"

	// Packages
	param "github.com/mutablelogic/go-toolserver/pkg/param"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ArticlesRequest struct {
	Query    string
	PageSize int64
}

type HeadlinesRequest struct {
	Country  string
	PageSize int64
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newArticlesRequest(args param.Values) *ArticlesRequest {
	return &ArticlesRequest{
		Query:    args.String("topic"),
		PageSize: args.Int("page_size"),
	}
}

func newHeadlinesRequest(args param.Values) *HeadlinesRequest {
	return &HeadlinesRequest{
		Country:  args.String("country"),
		PageSize: args.Int("page_size"),
	}
}

///////////////////////////////////////////////////////////////////////////////
// METHODS

func (r *ArticlesRequest) Values() url.Values {
	result := url.Values{}
	if r.Query != "" {
		result.Set("q", r.Query)
	}
	if r.PageSize > 0 {
		result.Set("pageSize", strconv.FormatInt(r.PageSize, 10))
	}
	result.Set("language", language)
	return result
}

func (r *HeadlinesRequest) Values() url.Values {
	result := url.Values{}
	if r.Country != "" {
		result.Set("country", r.Country)
	}
	if r.PageSize > 0 {
		result.Set("pageSize", strconv.FormatInt(r.PageSize, 10))
	}
	result.Set("language", language)
	return result
}
