package param

import (
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Schema returns the object schema advertised for a set of parameters. The
// required list is generated from the same declarations Normalize enforces.
func Schema(params ...Param) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(params)),
		Required:   []string{},
	}
	for _, p := range params {
		schema.Properties[p.Name] = p.Schema()
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}

// Schema returns the property schema for a single parameter
func (p Param) Schema() *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:        string(p.Type),
		Description: p.Description,
		Minimum:     p.Min,
		Maximum:     p.Max,
	}
	if p.Length > 0 {
		length := p.Length
		schema.MinLength = &length
		schema.MaxLength = &length
	}
	if p.Format != "" {
		schema.Format = p.Format
	}
	if p.Labels != nil {
		for _, label := range p.Labels.Labels() {
			schema.Enum = append(schema.Enum, label)
		}
	}
	if p.Default != nil {
		if data, err := json.Marshal(p.Default); err == nil {
			schema.Default = data
		}
	}
	return schema
}
