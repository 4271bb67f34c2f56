package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	logger "github.com/mutablelogic/go-toolserver/pkg/logger"
	gotenv "github.com/subosito/gotenv"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug bool `name:"debug" env:"TOOLSERVER_DEBUG" help:"Enable debug output"`

	// Tools
	Timeout      time.Duration `name:"timeout" env:"TOOLSERVER_TIMEOUT" default:"30s" help:"Upstream request timeout"`
	StrictLabels bool          `name:"strict-labels" env:"TOOLSERVER_STRICT_LABELS" help:"Reject unrecognized values for enumerated arguments"`

	// Tracing
	OtelEndpoint string `name:"otel-endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" help:"OpenTelemetry collector endpoint, as host:port or a http, https, grpc or grpcs URL"`
	OtelHeader   string `name:"otel-header" env:"OTEL_EXPORTER_OTLP_HEADERS" help:"OpenTelemetry collector headers, as key=value pairs"`

	// Credentials
	Keys `embed:"" group:"CREDENTIALS"`

	// Context
	ctx      context.Context
	logger   *logger.Logger
	tracer   trace.Tracer
	execName string
}

type Keys struct {
	NewsAPIKey     string `name:"news-api-key" env:"NEWS_API_KEY" help:"NewsAPI key"`
	OpenWeatherKey string `name:"open-weather-api-key" env:"OPEN_WEATHER_API_KEY" help:"OpenWeather key"`
	SerpAPIKey     string `name:"serpapi-api-key" env:"SERPAPI_API_KEY" help:"SerpApi key"`
}

type CLI struct {
	Globals

	// Commands
	Serve   ServeCommand   `cmd:"" help:"Serve the tools of a service over MCP"`
	Tools   ToolsCommand   `cmd:"" help:"List the tools of a service"`
	Call    CallCommand    `cmd:"" help:"Call a tool once and print the result"`
	Version VersionCommand `cmd:"" help:"Print the version"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Read a .env file if there is one, without overriding the environment
	_ = gotenv.Load()

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("MCP server for news, weather and search tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Log to stderr, as stdout carries the stdio transport
	cli.Globals.logger = logger.New(os.Stderr, cli.Debug)
	defer cli.Globals.logger.Sync()

	// Create a tracer
	tracer, shutdown, err := newTracer(cli.OtelEndpoint, cli.OtelHeader)
	if err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			cli.Globals.logger.Warnw("tracer shutdown", "error", err)
		}
	}()
	cli.Globals.tracer = tracer

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
