package upstream_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	// Packages
	toolserver "github.com/mutablelogic/go-toolserver"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	upstream "github.com/mutablelogic/go-toolserver/pkg/upstream"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	requests := []*http.Request{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func Test_upstream_001(t *testing.T) {
	assert := assert.New(t)
	server, requests := newTestServer(t, http.StatusOK, `{"status":"ok","articles":[{"title":"A"},{"title":"B"}]}`)

	client, err := upstream.New(server.URL)
	require.NoError(t, err)

	result, err := client.Get(context.Background(), "articles", url.Values{"q": []string{"go"}}, "everything")
	assert.NoError(err)
	assert.JSONEq(`[{"title":"A"},{"title":"B"}]`, string(result))

	require.Len(t, *requests, 1)
	assert.Equal(http.MethodGet, (*requests)[0].Method)
	assert.Equal("/everything", (*requests)[0].URL.Path)
	assert.Equal("go", (*requests)[0].URL.Query().Get("q"))
}

func Test_upstream_002(t *testing.T) {
	assert := assert.New(t)
	server, _ := newTestServer(t, http.StatusOK, `{"cod":200,"main":{"temp":280.1}}`)

	client, err := upstream.New(server.URL)
	require.NoError(t, err)

	// Empty key returns the whole body
	result, err := client.Get(context.Background(), "", nil, "weather")
	assert.NoError(err)
	assert.JSONEq(`{"cod":200,"main":{"temp":280.1}}`, string(result))
}

func Test_upstream_003(t *testing.T) {
	assert := assert.New(t)
	server, _ := newTestServer(t, http.StatusOK, `{"search_metadata":{"status":"Success"},"error":"Google hasn't returned any results for this query."}`)

	client, err := upstream.New(server.URL)
	require.NoError(t, err)

	// Missing key is an upstream error carrying the upstream explanation
	_, err = client.Get(context.Background(), "events_results", nil, "search.json")
	assert.ErrorIs(err, toolserver.ErrUpstream)
	assert.ErrorContains(err, "hasn't returned any results")
	assert.ErrorContains(err, "events_results")
}

func Test_upstream_004(t *testing.T) {
	assert := assert.New(t)
	server, requests := newTestServer(t, http.StatusUnauthorized, `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid or incorrect."}`)

	client, err := upstream.New(server.URL)
	require.NoError(t, err)

	// Non-2xx carries the upstream message
	_, err = client.Get(context.Background(), "articles", nil, "top-headlines")
	assert.ErrorIs(err, toolserver.ErrUpstream)
	assert.ErrorContains(err, "Your API key is invalid or incorrect.")
	assert.Len(*requests, 1)
}

func Test_upstream_005(t *testing.T) {
	assert := assert.New(t)
	server, _ := newTestServer(t, http.StatusOK, `{}`)
	endpoint := server.URL
	server.Close()

	client, err := upstream.New(endpoint)
	require.NoError(t, err)

	// Transport failures are upstream errors
	_, err = client.Get(context.Background(), "articles", url.Values{"apiKey": []string{"s3cret"}}, "everything")
	assert.True(errors.Is(err, toolserver.ErrUpstream))
	assert.NotContains(err.Error(), "s3cret")
}

func Test_upstream_006(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Invalid API key", upstream.Message(errors.New(`401 Unauthorized: {"cod":401, "message": "Invalid API key"}`)))
	assert.Equal("Invalid API key", upstream.Message(errors.New(`401 Unauthorized: {"error": "Invalid API key"}`)))
	assert.Equal("502 Bad Gateway", upstream.Message(errors.New(`502 Bad Gateway`)))

	// Credentials in URLs are never echoed
	msg := upstream.Message(errors.New(`Get "https://api.example/weather?lat=1&appid=s3cret&lon=2": dial tcp: connection refused`))
	assert.NotContains(msg, "s3cret")
	assert.Contains(msg, "appid=REDACTED&lon=2")
	assert.Equal("q=go&api_key=REDACTED", upstream.Redact("q=go&api_key=abc123"))
	assert.Equal("q=go", upstream.Redact("q=go"))
}

func Test_upstream_007(t *testing.T) {
	assert := assert.New(t)
	server, requests := newTestServer(t, http.StatusOK, `{"list":[{"dt":1}]}`)

	client, err := upstream.New(server.URL)
	require.NoError(t, err)

	// Path segments are joined in order
	result, err := client.Get(context.Background(), "list", nil, "forecast", "hourly")
	assert.NoError(err)
	assert.JSONEq(`[{"dt":1}]`, string(result))
	require.Len(t, *requests, 1)
	assert.Equal("/forecast/hourly", (*requests)[0].URL.Path)
}

func Test_upstream_008(t *testing.T) {
	assert := assert.New(t)
	server, _ := newTestServer(t, http.StatusUnauthorized, `{"code":401,"message":"Invalid API key. Please see https://openweathermap.org/faq#error401"}`)

	client, err := upstream.New(server.URL)
	require.NoError(t, err)

	// A body with a numeric code still yields the upstream message
	_, err = client.Get(context.Background(), "", url.Values{"appid": []string{"s3cret"}}, "weather")
	assert.ErrorIs(err, toolserver.ErrUpstream)
	assert.ErrorContains(err, "Invalid API key. Please see")
	assert.NotContains(err.Error(), "s3cret")

	// Decoded error responses use their detail, then their reason
	assert.Equal("quota exceeded", upstream.Message(httpresponse.ErrResponse{Code: 429, Reason: "Too Many Requests", Detail: "quota exceeded"}))
	assert.Equal("Too Many Requests", upstream.Message(httpresponse.ErrResponse{Code: 429, Reason: "Too Many Requests"}))
}
