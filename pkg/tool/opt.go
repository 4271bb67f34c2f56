package tool

import (
	// Packages
	toolserver "github.com/mutablelogic/go-toolserver"
	param "github.com/mutablelogic/go-toolserver/pkg/param"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Toolkit) error

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (tk *Toolkit) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(tk); err != nil {
			return err
		}
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithTool registers one or more tools, in order
func WithTool(tools ...Tool) Opt {
	return func(tk *Toolkit) error {
		return tk.register(tools...)
	}
}

// WithPolicy sets how unrecognized enumerated labels are treated
func WithPolicy(policy param.Policy) Opt {
	return func(tk *Toolkit) error {
		switch policy {
		case param.Fallback, param.Strict:
			tk.policy = policy
			return nil
		default:
			return toolserver.ErrBadParameter.Withf("invalid label policy %d", policy)
		}
	}
}

func WithTracer(tracer trace.Tracer) Opt {
	return func(tk *Toolkit) error {
		if tracer != nil {
			tk.tracer = tracer
		}
		return nil
	}
}

func WithLogger(logger *zap.SugaredLogger) Opt {
	return func(tk *Toolkit) error {
		if logger != nil {
			tk.logger = logger
		}
		return nil
	}
}
