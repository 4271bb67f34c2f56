package tool

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolserver "github.com/mutablelogic/go-toolserver"
	param "github.com/mutablelogic/go-toolserver/pkg/param"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Toolkit is a closed registry of tools with unique names, and dispatches
// invocations to them. It is not modified after construction, so Run can
// be called concurrently.
type Toolkit struct {
	tools  []Tool
	index  map[string]Tool
	policy param.Policy
	tracer trace.Tracer
	logger *zap.SugaredLogger
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	reToolName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]{0,63}$`)
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a toolkit. Returns an error if any tool has an invalid
// or duplicate name.
func NewToolkit(opts ...Opt) (*Toolkit, error) {
	tk := &Toolkit{
		index:  make(map[string]Tool),
		policy: param.Fallback,
		tracer: noop.NewTracerProvider().Tracer(""),
		logger: zap.NewNop().Sugar(),
	}
	if err := tk.apply(opts...); err != nil {
		return nil, err
	}
	return tk, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns the tools in registration order
func (tk *Toolkit) Tools() []Tool {
	result := make([]Tool, len(tk.tools))
	copy(result, tk.tools)
	return result
}

// Lookup returns a tool by name, or nil
func (tk *Toolkit) Lookup(name string) Tool {
	return tk.index[name]
}

// Describe returns the tool catalog in registration order
func (tk *Toolkit) Describe() []Descriptor {
	result := make([]Descriptor, 0, len(tk.tools))
	for _, t := range tk.tools {
		result = append(result, Describe(t))
	}
	return result
}

// Policy returns the label policy used for validation
func (tk *Toolkit) Policy() param.Policy {
	return tk.policy
}

// Run looks up a tool, validates the raw arguments and then runs it. The
// tool is never run when validation fails. Errors are classified as
// toolserver.ErrUnknownTool, toolserver.ErrValidation or toolserver.ErrUpstream.
func (tk *Toolkit) Run(ctx context.Context, name string, raw map[string]any) (result json.RawMessage, err error) {
	ctx, endSpan := otel.StartSpan(tk.tracer, ctx, "Run",
		attribute.String("tool", name),
	)
	defer func() { endSpan(err) }()

	// Lookup
	t, exists := tk.index[name]
	if !exists {
		return nil, toolserver.ErrUnknownTool.Withf("tool %s not found", name)
	}

	// Validate
	args, err := param.Normalize(t.Params(), raw, tk.policy)
	if err != nil {
		tk.logger.Debugw("validation failed", "tool", name, "error", err)
		return nil, err
	}

	// Invoke
	start := time.Now()
	result, err = t.Run(ctx, args)
	if err != nil {
		tk.logger.Debugw("call failed", "tool", name, "duration", time.Since(start), "error", err)
		return nil, classify(err)
	}
	tk.logger.Debugw("call succeeded", "tool", name, "duration", time.Since(start), "bytes", len(result))

	// Return success
	return result, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (tk *Toolkit) register(tools ...Tool) error {
	for _, t := range tools {
		if t == nil {
			return toolserver.ErrBadParameter.With("tool cannot be nil")
		}
		name := t.Name()
		if !reToolName.MatchString(name) {
			return toolserver.ErrBadParameter.Withf("invalid tool name %q", name)
		}
		if _, exists := tk.index[name]; exists {
			return toolserver.ErrBadParameter.Withf("duplicate tool name %q", name)
		}
		tk.index[name] = t
		tk.tools = append(tk.tools, t)
	}
	return nil
}

// classify leaves classified errors unchanged and marks everything else
// as an upstream failure
func classify(err error) error {
	switch {
	case errors.Is(err, toolserver.ErrValidation), errors.Is(err, toolserver.ErrUnknownTool), errors.Is(err, toolserver.ErrUpstream):
		return err
	default:
		return toolserver.ErrUpstream.With(err)
	}
}
