// Package param declares tool parameters once and derives both the advertised
// JSON schema and the argument normalizer from that declaration.
package param

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Type is the semantic type of a parameter, using JSON schema names
type Type string

// Param declares a single tool argument
type Param struct {
	Name        string
	Title       string // human-readable name used in error messages
	Description string
	Type        Type
	Required    bool
	Default     any
	Min, Max    *float64
	Length      int    // exact string length when non-zero
	Format      string // "date" for YYYY-MM-DD strings
	Lower       bool   // lower-case strings before translation
	Labels      *Labels
}

// Opt modifies a parameter declaration
type Opt func(*Param)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
)

const (
	FormatDate = "date"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func String(name, description string, opts ...Opt) Param {
	return newParam(name, description, TypeString, opts...)
}

func Integer(name, description string, opts ...Opt) Param {
	return newParam(name, description, TypeInteger, opts...)
}

func Number(name, description string, opts ...Opt) Param {
	return newParam(name, description, TypeNumber, opts...)
}

func Bool(name, description string, opts ...Opt) Param {
	return newParam(name, description, TypeBoolean, opts...)
}

func newParam(name, description string, t Type, opts ...Opt) Param {
	p := Param{Name: name, Description: description, Type: t}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

func Required() Opt {
	return func(p *Param) {
		p.Required = true
	}
}

func Default(v any) Opt {
	return func(p *Param) {
		p.Default = v
	}
}

// Range sets an inclusive lower and upper bound
func Range(min, max float64) Opt {
	return func(p *Param) {
		p.Min = &min
		p.Max = &max
	}
}

// Min sets an inclusive lower bound
func Min(min float64) Opt {
	return func(p *Param) {
		p.Min = &min
	}
}

// Length requires a string of exactly n characters
func Length(n int) Opt {
	return func(p *Param) {
		p.Length = n
	}
}

// Date requires a YYYY-MM-DD string
func Date() Opt {
	return func(p *Param) {
		p.Format = FormatDate
	}
}

func Lower() Opt {
	return func(p *Param) {
		p.Lower = true
	}
}

func Title(title string) Opt {
	return func(p *Param) {
		p.Title = title
	}
}

// WithLabels translates the string value through a closed label table
func WithLabels(labels *Labels) Opt {
	return func(p *Param) {
		p.Labels = labels
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (p Param) title() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}
