package param

import (
	"fmt"
	"strconv"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Values holds normalized arguments: strings, int64, float64, bool or a
// translated label code. Absent optional parameters have no entry.
type Values map[string]any

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (v Values) Has(name string) bool {
	_, exists := v[name]
	return exists
}

// String returns the value formatted for a query string, or empty
// when the value is absent
func (v Values) String(name string) string {
	value, exists := v[name]
	if !exists {
		return ""
	}
	switch value := value.(type) {
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}

func (v Values) Int(name string) int64 {
	switch value := v[name].(type) {
	case int64:
		return value
	case int:
		return int64(value)
	case float64:
		return int64(value)
	default:
		return 0
	}
}

func (v Values) Float(name string) float64 {
	switch value := v[name].(type) {
	case float64:
		return value
	case int64:
		return float64(value)
	case int:
		return float64(value)
	default:
		return 0
	}
}

func (v Values) Bool(name string) bool {
	value, _ := v[name].(bool)
	return value
}
