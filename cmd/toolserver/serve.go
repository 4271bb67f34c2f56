package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	mcp "github.com/mutablelogic/go-toolserver/pkg/mcp"
	version "github.com/mutablelogic/go-toolserver/pkg/version"
	trace "go.opentelemetry.io/otel/trace"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ServeCommand struct {
	Service string   `arg:"" enum:"news,weather,serpapi,all" help:"Service whose tools are served (news, weather, serpapi, all)"`
	Stdio   bool     `name:"stdio" help:"Serve on standard input and output instead of HTTP"`
	Host    string   `name:"host" env:"HOST" default:"0.0.0.0" help:"Address to listen on"`
	Port    uint16   `name:"port" env:"PORT" default:"8000" help:"Port to listen on"`
	Origin  []string `name:"origin" env:"TOOLSERVER_ORIGIN" default:"*" help:"Origins allowed to make cross-origin requests"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ServeCommand) Run(ctx *Globals) error {
	toolkit, err := ctx.Toolkit(cmd.Service)
	if err != nil {
		return err
	}

	// Create MCP server
	server, err := mcp.New(version.Name, version.Version(),
		mcp.WithToolkit(toolkit),
		mcp.WithLogger(ctx.logger),
		mcp.WithOrigin(cmd.Origin...),
	)
	if err != nil {
		return err
	}
	defer server.Close()

	// Run the server on stdio
	if cmd.Stdio {
		ctx.logger.Infow("serving on stdio", "service", cmd.Service, "tools", len(toolkit.Tools()))
		if err := server.RunStdio(ctx.ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	// Run the server on HTTP until the context is done
	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cmd.Host, strconv.FormatUint(uint64(cmd.Port), 10)),
		Handler:           handler(server, ctx.tracer),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	g, gctx := errgroup.WithContext(ctx.ctx)
	g.Go(func() error {
		ctx.logger.Infow("listening", "addr", httpServer.Addr, "service", cmd.Service, "tools", len(toolkit.Tools()), "version", version.Version())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		ctx.logger.Infow("shutting down")

		// End the event streams, then wait for requests in flight
		server.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// handler serves the MCP endpoints with a span for each request
func handler(server *mcp.Server, tracer trace.Tracer) http.Handler {
	return otel.HTTPHandler(tracer)(server.Handler())
}
