package main

import (
	"context"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	version "github.com/mutablelogic/go-toolserver/pkg/version"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// newTracer returns a tracer which exports spans over OTLP, or a tracer
// which discards them when no endpoint is set. The header is a list of
// key=value pairs sent with each export. The returned function flushes
// and stops the exporter.
func newTracer(endpoint, header string) (trace.Tracer, func(context.Context) error, error) {
	if endpoint == "" {
		return noop.NewTracerProvider().Tracer(version.Name), func(context.Context) error { return nil }, nil
	}

	provider, err := otel.NewProvider(endpoint, header, version.Name, otel.Attr{
		Key:   "service.version",
		Value: version.Version(),
	})
	if err != nil {
		return nil, nil, err
	}
	return provider.Tracer(version.Name), otel.ShutdownProvider, nil
}
