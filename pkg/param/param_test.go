package param_test

import (
	"encoding/json"
	"errors"
	"testing"

	// Packages
	toolserver "github.com/mutablelogic/go-toolserver"
	param "github.com/mutablelogic/go-toolserver/pkg/param"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

var (
	pageSize = param.Integer("page_size", "Number of articles", param.Default(5), param.Range(1, 25))
	country  = param.String("country", "Country code", param.Required(), param.Length(2), param.Lower())
	lat      = param.Number("lat", "Latitude", param.Required(), param.Range(-90, 90), param.Title("latitude"))
	sortBy   = param.String("sort_by", "Sort order", param.Default("top_flights"), param.WithLabels(param.NewLabels(1,
		param.Label{Label: "top_flights", Code: 1},
		param.Label{Label: "price", Code: 2},
		param.Label{Label: "duration", Code: 5},
	)))
	rating = param.String("rating", "Minimum rating", param.WithLabels(param.NewLabels(nil,
		param.Label{Label: "3.5+", Code: 7},
		param.Label{Label: "4.0+", Code: 8},
	)))
	date   = param.String("outbound_date", "Outbound date", param.Date())
	refund = param.Bool("free_cancellation", "Free cancellation")
)

func Test_param_001(t *testing.T) {
	assert := assert.New(t)

	// Defaults are applied when absent
	values, err := param.Normalize([]param.Param{pageSize}, map[string]any{}, param.Fallback)
	assert.NoError(err)
	assert.Equal(int64(5), values.Int("page_size"))
	assert.Equal("5", values.String("page_size"))

	// Empty strings and nulls count as absent
	values, err = param.Normalize([]param.Param{pageSize}, map[string]any{"page_size": nil}, param.Fallback)
	assert.NoError(err)
	assert.Equal(int64(5), values.Int("page_size"))
	values, err = param.Normalize([]param.Param{pageSize}, map[string]any{"page_size": " "}, param.Fallback)
	assert.NoError(err)
	assert.Equal(int64(5), values.Int("page_size"))
}

func Test_param_002(t *testing.T) {
	assert := assert.New(t)

	// Boundary values succeed, one unit outside fails
	for _, n := range []any{1, 25, float64(1), "25"} {
		_, err := param.Normalize([]param.Param{pageSize}, map[string]any{"page_size": n}, param.Fallback)
		assert.NoError(err, n)
	}
	for _, n := range []any{0, 26, float64(-1), "26"} {
		_, err := param.Normalize([]param.Param{pageSize}, map[string]any{"page_size": n}, param.Fallback)
		assert.ErrorIs(err, toolserver.ErrValidation, n)
		assert.ErrorContains(err, "page_size must be between 1 and 25")
	}

	// Fractional and non-numeric values are not integers
	for _, n := range []any{2.5, "five", true} {
		_, err := param.Normalize([]param.Param{pageSize}, map[string]any{"page_size": n}, param.Fallback)
		assert.ErrorIs(err, toolserver.ErrValidation, n)
	}
}

func Test_param_003(t *testing.T) {
	assert := assert.New(t)

	// Required fields
	_, err := param.Normalize([]param.Param{country}, map[string]any{}, param.Fallback)
	assert.ErrorIs(err, toolserver.ErrValidation)
	assert.ErrorContains(err, "country is required")

	// Exact length and lower-casing
	values, err := param.Normalize([]param.Param{country}, map[string]any{"country": "US"}, param.Fallback)
	assert.NoError(err)
	assert.Equal("us", values.String("country"))
	_, err = param.Normalize([]param.Param{country}, map[string]any{"country": "usa"}, param.Fallback)
	assert.ErrorIs(err, toolserver.ErrValidation)
	assert.ErrorContains(err, "exactly 2 characters")
}

func Test_param_004(t *testing.T) {
	assert := assert.New(t)

	// Titles are used in messages
	_, err := param.Normalize([]param.Param{lat}, map[string]any{"lat": 91}, param.Fallback)
	assert.ErrorIs(err, toolserver.ErrValidation)
	assert.ErrorContains(err, "latitude must be between -90 and 90")

	values, err := param.Normalize([]param.Param{lat}, map[string]any{"lat": "-90"}, param.Fallback)
	assert.NoError(err)
	assert.Equal(float64(-90), values.Float("lat"))
	assert.Equal("-90", values.String("lat"))

	values, err = param.Normalize([]param.Param{lat}, map[string]any{"lat": 51.5072}, param.Fallback)
	assert.NoError(err)
	assert.Equal("51.5072", values.String("lat"))
}

func Test_param_005(t *testing.T) {
	assert := assert.New(t)

	// Known labels translate to codes
	values, err := param.Normalize([]param.Param{sortBy}, map[string]any{"sort_by": "price"}, param.Fallback)
	assert.NoError(err)
	assert.Equal(2, values["sort_by"])
	assert.Equal("2", values.String("sort_by"))

	// Case-insensitive match
	values, err = param.Normalize([]param.Param{sortBy}, map[string]any{"sort_by": "Duration"}, param.Fallback)
	assert.NoError(err)
	assert.Equal("5", values.String("sort_by"))

	// Default label translates too
	values, err = param.Normalize([]param.Param{sortBy}, map[string]any{}, param.Fallback)
	assert.NoError(err)
	assert.Equal("1", values.String("sort_by"))

	// Unknown labels fall back
	values, err = param.Normalize([]param.Param{sortBy}, map[string]any{"sort_by": "cheapest"}, param.Fallback)
	assert.NoError(err)
	assert.Equal("1", values.String("sort_by"))

	// Unknown labels without a fallback are omitted
	values, err = param.Normalize([]param.Param{rating}, map[string]any{"rating": "5.0+"}, param.Fallback)
	assert.NoError(err)
	assert.False(values.Has("rating"))

	// Strict policy rejects unknown labels
	_, err = param.Normalize([]param.Param{sortBy}, map[string]any{"sort_by": "cheapest"}, param.Strict)
	assert.ErrorIs(err, toolserver.ErrValidation)
	assert.ErrorContains(err, "sort_by must be one of top_flights, price, duration")
}

func Test_param_006(t *testing.T) {
	assert := assert.New(t)

	values, err := param.Normalize([]param.Param{date, refund}, map[string]any{
		"outbound_date":     "2026-11-01",
		"free_cancellation": "true",
	}, param.Fallback)
	assert.NoError(err)
	assert.Equal("2026-11-01", values.String("outbound_date"))
	assert.True(values.Bool("free_cancellation"))

	_, err = param.Normalize([]param.Param{date}, map[string]any{"outbound_date": "01/11/2026"}, param.Fallback)
	assert.ErrorIs(err, toolserver.ErrValidation)
	assert.ErrorContains(err, "YYYY-MM-DD")

	_, err = param.Normalize([]param.Param{refund}, map[string]any{"free_cancellation": "perhaps"}, param.Fallback)
	assert.ErrorIs(err, toolserver.ErrValidation)

	// Absent booleans stay absent
	values, err = param.Normalize([]param.Param{refund}, map[string]any{}, param.Fallback)
	assert.NoError(err)
	assert.False(values.Has("free_cancellation"))
}

func Test_param_007(t *testing.T) {
	assert := assert.New(t)

	// Normalization is deterministic
	params := []param.Param{pageSize, country, sortBy, rating}
	raw := map[string]any{"country": "GB", "page_size": "7", "sort_by": "price", "rating": "4.0+"}
	a, err := param.Normalize(params, raw, param.Fallback)
	assert.NoError(err)
	b, err := param.Normalize(params, raw, param.Fallback)
	assert.NoError(err)
	assert.Equal(a, b)
	assert.Equal(param.Values{"country": "gb", "page_size": int64(7), "sort_by": 2, "rating": 8}, a)
}

func Test_param_008(t *testing.T) {
	assert := assert.New(t)

	schema := param.Schema(pageSize, country, lat, sortBy)
	assert.Equal("object", schema.Type)
	assert.Equal([]string{"country", "lat"}, schema.Required)
	assert.Equal("integer", schema.Properties["page_size"].Type)
	assert.Equal(json.RawMessage("5"), schema.Properties["page_size"].Default)
	assert.Equal(float64(25), *schema.Properties["page_size"].Maximum)
	assert.Equal(2, *schema.Properties["country"].MinLength)
	assert.Equal([]any{"top_flights", "price", "duration"}, schema.Properties["sort_by"].Enum)
}

func Test_param_009(t *testing.T) {
	assert := assert.New(t)
	params := []param.Param{pageSize, country, lat}

	// The generated schema and the normalizer agree
	resolved, err := param.Schema(params...).Resolve(nil)
	require.NoError(t, err)

	tests := []struct {
		input string
		valid bool
	}{
		{`{"country":"us","lat":0}`, true},
		{`{"country":"us","lat":0,"page_size":25}`, true},
		{`{"country":"us","lat":-90,"page_size":1}`, true},
		{`{"country":"us"}`, false},
		{`{"lat":10}`, false},
		{`{"country":"us","lat":0,"page_size":26}`, false},
		{`{"country":"us","lat":91}`, false},
		{`{"country":"usa","lat":0}`, false},
	}
	for _, test := range tests {
		var raw map[string]any
		require.NoError(t, json.Unmarshal([]byte(test.input), &raw))
		_, err := param.Normalize(params, raw, param.Fallback)
		schemaErr := resolved.Validate(raw)
		if test.valid {
			assert.NoError(err, test.input)
			assert.NoError(schemaErr, test.input)
		} else {
			assert.True(errors.Is(err, toolserver.ErrValidation), test.input)
			assert.Error(schemaErr, test.input)
		}
	}
}
