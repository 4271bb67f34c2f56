package mcp

import (
	// Packages
	toolserver "github.com/mutablelogic/go-toolserver"
	tool "github.com/mutablelogic/go-toolserver/pkg/tool"
	zap "go.uber.org/zap"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Server) error

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (server *Server) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(server); err != nil {
			return err
		}
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

func WithToolkit(v *tool.Toolkit) Opt {
	return func(server *Server) error {
		server.toolkit = v
		return nil
	}
}

func WithLogger(v *zap.SugaredLogger) Opt {
	return func(server *Server) error {
		if v == nil {
			return toolserver.ErrBadParameter.With("logger is nil")
		}
		server.logger = v
		return nil
	}
}

// WithOrigin sets the origins allowed to make cross-origin requests to the
// HTTP transport. The default allows any origin.
func WithOrigin(origins ...string) Opt {
	return func(server *Server) error {
		if len(origins) == 0 {
			return toolserver.ErrBadParameter.With("no origins")
		}
		server.origins = origins
		return nil
	}
}
