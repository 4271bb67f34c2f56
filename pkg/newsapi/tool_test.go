package newsapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolserver "github.com/mutablelogic/go-toolserver"
	newsapi "github.com/mutablelogic/go-toolserver/pkg/newsapi"
	tool "github.com/mutablelogic/go-toolserver/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

// upstream records requests and replies with a fixed status and body
type upstream struct {
	sync.Mutex
	*httptest.Server
	requests []*http.Request
}

func newUpstream(t *testing.T, status int, body string) *upstream {
	t.Helper()
	u := new(upstream)
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.Lock()
		u.requests = append(u.requests, r)
		u.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(u.Close)
	return u
}

func (u *upstream) calls() int {
	u.Lock()
	defer u.Unlock()
	return len(u.requests)
}

func (u *upstream) last() *http.Request {
	u.Lock()
	defer u.Unlock()
	return u.requests[len(u.requests)-1]
}

func newToolkit(t *testing.T, u *upstream) *tool.Toolkit {
	t.Helper()
	tools, err := newsapi.NewTools("test-key", client.OptEndpoint(u.URL))
	require.NoError(t, err)
	tk, err := tool.NewToolkit(tool.WithTool(tools...))
	require.NoError(t, err)
	return tk
}

func Test_tool_001(t *testing.T) {
	assert := assert.New(t)
	tk := newToolkit(t, newUpstream(t, http.StatusOK, `{}`))

	catalog := tk.Describe()
	require.Len(t, catalog, 2)
	assert.Equal("get-news", catalog[0].Name)
	assert.Equal([]string{"topic"}, catalog[0].InputSchema.Required)
	assert.Equal("get-headlines", catalog[1].Name)
	assert.Equal([]string{"country"}, catalog[1].InputSchema.Required)
	assert.Contains(catalog[1].InputSchema.Properties, "page_size")
}

func Test_tool_002(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"status":"ok","totalResults":3,"articles":[{"title":"A"},{"title":"B"},{"title":"C"}]}`)
	tk := newToolkit(t, u)

	result, err := tk.Run(context.Background(), "get-headlines", map[string]any{"country": "us", "page_size": 3})
	assert.NoError(err)
	assert.JSONEq(`[{"title":"A"},{"title":"B"},{"title":"C"}]`, string(result))

	require.Equal(t, 1, u.calls())
	req := u.last()
	assert.Equal("/top-headlines", req.URL.Path)
	assert.Equal(url.Values{"country": {"us"}, "pageSize": {"3"}, "language": {"en"}}, req.URL.Query())
	assert.Equal("test-key", req.Header.Get("X-Api-Key"))
}

func Test_tool_003(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"status":"ok","articles":[]}`)
	tk := newToolkit(t, u)

	// Default page size and upper-case country codes
	_, err := tk.Run(context.Background(), "get-headlines", map[string]any{"country": "GB"})
	assert.NoError(err)
	assert.Equal("gb", u.last().URL.Query().Get("country"))
	assert.Equal("5", u.last().URL.Query().Get("pageSize"))

	// Three letter country codes fail before any call
	_, err = tk.Run(context.Background(), "get-headlines", map[string]any{"country": "usa"})
	assert.ErrorIs(err, toolserver.ErrValidation)
	assert.Equal(1, u.calls())
}

func Test_tool_004(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"status":"ok","articles":[{"title":"A"}]}`)
	tk := newToolkit(t, u)

	// Boundaries
	for _, n := range []int{1, 25} {
		_, err := tk.Run(context.Background(), "get-news", map[string]any{"topic": "golang", "page_size": n})
		assert.NoError(err)
	}
	for _, n := range []int{0, 26} {
		_, err := tk.Run(context.Background(), "get-news", map[string]any{"topic": "golang", "page_size": n})
		assert.ErrorIs(err, toolserver.ErrValidation)
	}
	assert.Equal(2, u.calls())

	// Missing topic
	_, err := tk.Run(context.Background(), "get-news", map[string]any{"page_size": 5})
	assert.ErrorIs(err, toolserver.ErrValidation)
	assert.ErrorContains(err, "topic is required")
	assert.Equal(2, u.calls())

	req := u.last()
	assert.Equal("/everything", req.URL.Path)
	assert.Equal(url.Values{"q": {"golang"}, "pageSize": {"25"}, "language": {"en"}}, req.URL.Query())
}

func Test_tool_005(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusUnauthorized, `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid or incorrect. Check your key, or go to https://newsapi.org to create a free API key."}`)
	tk := newToolkit(t, u)

	_, err := tk.Run(context.Background(), "get-news", map[string]any{"topic": "golang"})
	assert.ErrorIs(err, toolserver.ErrUpstream)
	assert.ErrorContains(err, "failed to get news")
	assert.ErrorContains(err, "Your API key is invalid or incorrect.")
}

func Test_tool_006(t *testing.T) {
	assert := assert.New(t)

	// An empty key is accepted at construction
	tools, err := newsapi.NewTools("")
	assert.NoError(err)
	assert.Len(tools, 2)
}
