/*
upstream implements a read-only JSON API client which issues a single GET
per call and returns a named field of the response body.
*/
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolserver "github.com/mutablelogic/go-toolserver"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	gjson "github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

// body captures the raw response
type body struct {
	data []byte
}

// failure keeps the body of an unsuccessful response, which the client
// otherwise decodes into a status code and reason
type failure struct {
	http.RoundTripper
	data []byte
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Query parameters which carry credentials, masked in error text
var reCredential = regexp.MustCompile(`(?i)\b(api_key|apikey|appid|key|token)=[^&\s"]*`)

const (
	maxFailureBody = 64 * 1024
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for an endpoint. Options are applied after the
// endpoint, so client.OptEndpoint can be used to redirect requests.
func New(endpoint string, opts ...client.ClientOpt) (*Client, error) {
	opts = append([]client.ClientOpt{client.OptEndpoint(endpoint)}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{Client: client}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Get issues one GET request with query parameters and returns the JSON
// value at key, or the whole body when key is empty. Every failure is
// returned as toolserver.ErrUpstream.
func (c *Client) Get(ctx context.Context, key string, query url.Values, path ...string) (json.RawMessage, error) {
	segments := make([]any, 0, len(path))
	for _, segment := range path {
		segments = append(segments, segment)
	}

	var response body
	var failed failure
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath(segments...), client.OptQuery(query), client.OptReqTransport(failed.wrap)); err != nil {
		if msg := message(failed.data); msg != "" {
			return nil, toolserver.ErrUpstream.With(Redact(msg))
		}
		return nil, toolserver.ErrUpstream.With(Message(err))
	}
	return response.Field(key)
}

// Message returns the error text an upstream put in its response body,
// or the error itself when there is no parseable body. Credentials in
// request URLs are masked.
func Message(err error) string {
	var response httpresponse.ErrResponse
	if errors.As(err, &response) {
		if detail, ok := response.Detail.(string); ok && detail != "" {
			return Redact(detail)
		} else if response.Reason != "" {
			return Redact(response.Reason)
		}
	}
	text := err.Error()
	if start, end := strings.IndexByte(text, '{'), strings.LastIndexByte(text, '}'); start >= 0 && end > start {
		if msg := message([]byte(text[start : end+1])); msg != "" {
			return Redact(msg)
		}
	}
	return Redact(text)
}

// Redact masks credential query parameters in text
func Redact(text string) string {
	return reCredential.ReplaceAllString(text, "$1=REDACTED")
}

///////////////////////////////////////////////////////////////////////////////
// UNMARSHALER

func (b *body) Unmarshal(_ http.Header, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.data = data
	return nil
}

func (f *failure) wrap(next http.RoundTripper) http.RoundTripper {
	f.RoundTripper = next
	return f
}

func (f *failure) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := f.RoundTripper.RoundTrip(req)
	if err != nil || resp.StatusCode < http.StatusBadRequest {
		return resp, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFailureBody))
	if err != nil {
		return nil, err
	}
	f.data = data
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return resp, nil
}

// Field returns the value at key, or the whole body for an empty key
func (b *body) Field(key string) (json.RawMessage, error) {
	if !gjson.ValidBytes(b.data) {
		return nil, toolserver.ErrUpstream.With("response is not valid JSON")
	}
	if key == "" {
		return json.RawMessage(strings.TrimSpace(string(b.data))), nil
	}
	result := gjson.GetBytes(b.data, key)
	if !result.Exists() {
		if msg := message(b.data); msg != "" {
			return nil, toolserver.ErrUpstream.Withf("%s (%q not found in response)", msg, key)
		}
		return nil, toolserver.ErrUpstream.Withf("%q not found in response", key)
	}
	return json.RawMessage(result.Raw), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// message returns the "message" or "error" member of a JSON error body
func message(data []byte) string {
	if !gjson.ValidBytes(data) {
		return ""
	}
	for _, key := range []string{"message", "error.message", "error"} {
		if result := gjson.GetBytes(data, key); result.Exists() && result.Type == gjson.String && result.Str != "" {
			return result.Str
		}
	}
	return ""
}
