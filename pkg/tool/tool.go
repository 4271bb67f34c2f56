package tool

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	param "github.com/mutablelogic/go-toolserver/pkg/param"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is a named operation with declared parameters, backed by a single
// upstream call
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the parameter declarations, from which both the input schema
	// and argument validation are derived
	Params() []param.Param

	// Run the tool with normalized arguments and return the JSON result
	Run(ctx context.Context, args param.Values) (json.RawMessage, error)
}

// RunFunc implements a tool given normalized arguments
type RunFunc func(ctx context.Context, args param.Values) (json.RawMessage, error)

// Descriptor is the advertised form of a tool
type Descriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

type tool struct {
	name        string
	description string
	params      []param.Param
	fn          RunFunc
}

var _ Tool = (*tool)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a tool from a name, description, implementation and parameters
func New(name, description string, fn RunFunc, params ...param.Param) Tool {
	return &tool{
		name:        name,
		description: description,
		params:      params,
		fn:          fn,
	}
}

// Describe returns the descriptor for a tool
func Describe(t Tool) Descriptor {
	return Descriptor{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: param.Schema(t.Params()...),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (t *tool) Name() string {
	return t.name
}

func (t *tool) Description() string {
	return t.description
}

func (t *tool) Params() []param.Param {
	return t.params
}

func (t *tool) Run(ctx context.Context, args param.Values) (json.RawMessage, error) {
	return t.fn(ctx, args)
}
