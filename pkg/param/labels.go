package param

import (
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Label maps a human-readable label to the code an upstream expects
type Label struct {
	Label string
	Code  any
}

// Labels is a closed, ordered label-to-code table. When a label is not
// recognized the Fallback code is used, and a nil Fallback omits the
// parameter altogether.
type Labels struct {
	table    []Label
	fallback any
}

// Policy decides what happens to a label which is not in the table
type Policy int

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Fallback substitutes the table fallback code for unknown labels
	Fallback Policy = iota

	// Strict rejects unknown labels with a validation error
	Strict
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewLabels returns a table with a fallback code, which may be nil
func NewLabels(fallback any, table ...Label) *Labels {
	return &Labels{table: table, fallback: fallback}
}

// Identity returns a table whose codes are the labels themselves
func Identity(fallback string, labels ...string) *Labels {
	table := make([]Label, 0, len(labels))
	for _, label := range labels {
		table = append(table, Label{Label: label, Code: label})
	}
	return NewLabels(fallback, table...)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Labels returns the accepted labels in declaration order
func (l *Labels) Labels() []string {
	result := make([]string, 0, len(l.table))
	for _, entry := range l.table {
		result = append(result, entry.Label)
	}
	return result
}

// Lookup returns the code for a label. An exact match is preferred over
// a case-insensitive one.
func (l *Labels) Lookup(label string) (any, bool) {
	for _, entry := range l.table {
		if entry.Label == label {
			return entry.Code, true
		}
	}
	for _, entry := range l.table {
		if strings.EqualFold(entry.Label, label) {
			return entry.Code, true
		}
	}
	return nil, false
}

// Fallback returns the code for unknown labels, or nil to omit
func (l *Labels) Fallback() any {
	return l.fallback
}

func (p Policy) String() string {
	switch p {
	case Fallback:
		return "fallback"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}
