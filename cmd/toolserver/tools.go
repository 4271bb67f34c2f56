package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolserver "github.com/mutablelogic/go-toolserver"
	tool "github.com/mutablelogic/go-toolserver/pkg/tool"
	attribute "go.opentelemetry.io/otel/attribute"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolsCommand struct {
	Service string `arg:"" optional:"" enum:"news,weather,serpapi,all" default:"all" help:"Service whose tools are listed"`
	YAML    bool   `name:"yaml" help:"Output YAML instead of JSON"`
}

type CallCommand struct {
	Service string   `arg:"" enum:"news,weather,serpapi,all" help:"Service which provides the tool"`
	Tool    string   `arg:"" help:"Tool name"`
	Args    []string `arg:"" optional:"" help:"Arguments as name=value"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ToolsCommand) Run(ctx *Globals) error {
	toolkit, err := ctx.Toolkit(cmd.Service)
	if err != nil {
		return err
	}
	return writeCatalog(os.Stdout, toolkit.Describe(), cmd.YAML)
}

func (cmd *CallCommand) Run(ctx *Globals) (err error) {
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "CallCommand",
		attribute.String("service", cmd.Service),
		attribute.String("tool", cmd.Tool),
	)
	defer func() { endSpan(err) }()

	toolkit, err := ctx.Toolkit(cmd.Service)
	if err != nil {
		return err
	}
	args, err := parseArgs(cmd.Args)
	if err != nil {
		return err
	}
	result, err := toolkit.Run(parent, cmd.Tool, args)
	if err != nil {
		return err
	}
	return writeResult(os.Stdout, result)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// parseArgs converts name=value pairs to raw arguments. Values are passed
// as strings and coerced by the tool's parameters.
func parseArgs(pairs []string) (map[string]any, error) {
	result := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if name = strings.TrimSpace(name); !ok || name == "" {
			return nil, toolserver.ErrBadParameter.Withf("expected name=value, got %q", pair)
		}
		if _, exists := result[name]; exists {
			return nil, toolserver.ErrBadParameter.Withf("duplicate argument %q", name)
		}
		result[name] = value
	}
	return result, nil
}

// writeCatalog writes the tool descriptors as indented JSON or YAML
func writeCatalog(w io.Writer, catalog []tool.Descriptor, asYAML bool) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}
	if !asYAML {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}

	// Go through JSON so that the schema field names are kept
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// writeResult writes a JSON result, indented
func writeResult(w io.Writer, result json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, result, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
