package param

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	// Packages
	toolserver "github.com/mutablelogic/go-toolserver"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	dateLayout = "2006-01-02"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Normalize validates a raw argument bag against the declared parameters,
// applying defaults and label translation. Unknown arguments are ignored.
// Any failure is returned as toolserver.ErrValidation.
func Normalize(params []Param, raw map[string]any, policy Policy) (Values, error) {
	result := make(Values, len(params))
	for _, p := range params {
		value, present := lookup(raw, p.Name)
		if !present {
			if p.Required {
				return nil, toolserver.ErrValidation.Withf("%s is required", p.title())
			} else if p.Default == nil {
				continue
			}
			value = p.Default
		}

		// Coerce and check the value
		v, err := p.coerce(value)
		if err != nil {
			return nil, err
		}

		// Translate labels
		if p.Labels != nil {
			label, _ := v.(string)
			if code, ok := p.Labels.Lookup(label); ok {
				v = code
			} else if policy == Strict {
				return nil, toolserver.ErrValidation.Withf("%s must be one of %s", p.title(), strings.Join(p.Labels.Labels(), ", "))
			} else if code := p.Labels.Fallback(); code != nil {
				v = code
			} else {
				continue
			}
		}

		result[p.Name] = v
	}

	// Return success
	return result, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// lookup returns a value unless it is missing, null or an empty string
func lookup(raw map[string]any, name string) (any, bool) {
	value, exists := raw[name]
	if !exists || value == nil {
		return nil, false
	}
	if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
		return nil, false
	}
	return value, true
}

func (p Param) coerce(value any) (any, error) {
	switch p.Type {
	case TypeString:
		return p.coerceString(value)
	case TypeInteger:
		n, err := toInteger(value)
		if err != nil {
			return nil, toolserver.ErrValidation.Withf("%s must be an integer", p.title())
		}
		if err := p.bounds(float64(n)); err != nil {
			return nil, err
		}
		return n, nil
	case TypeNumber:
		f, err := toNumber(value)
		if err != nil {
			return nil, toolserver.ErrValidation.Withf("%s must be a number", p.title())
		}
		if err := p.bounds(f); err != nil {
			return nil, err
		}
		return f, nil
	case TypeBoolean:
		b, err := toBool(value)
		if err != nil {
			return nil, toolserver.ErrValidation.Withf("%s must be true or false", p.title())
		}
		return b, nil
	default:
		return nil, toolserver.ErrInternalServerError.Withf("%s has unsupported type %q", p.Name, p.Type)
	}
}

func (p Param) coerceString(value any) (string, error) {
	var str string
	switch value := value.(type) {
	case string:
		str = strings.TrimSpace(value)
	case float64:
		str = strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		str = strconv.Itoa(value)
	case int64:
		str = strconv.FormatInt(value, 10)
	case json.Number:
		str = value.String()
	case bool:
		str = strconv.FormatBool(value)
	default:
		return "", toolserver.ErrValidation.Withf("%s must be a string", p.title())
	}
	if p.Lower {
		str = strings.ToLower(str)
	}
	if p.Length > 0 && utf8.RuneCountInString(str) != p.Length {
		return "", toolserver.ErrValidation.Withf("%s must be exactly %d characters", p.title(), p.Length)
	}
	if p.Format == FormatDate {
		if _, err := time.Parse(dateLayout, str); err != nil {
			return "", toolserver.ErrValidation.Withf("%s must be a date in YYYY-MM-DD format", p.title())
		}
	}
	return str, nil
}

func (p Param) bounds(value float64) error {
	switch {
	case p.Min != nil && p.Max != nil:
		if value < *p.Min || value > *p.Max {
			return toolserver.ErrValidation.Withf("%s must be between %s and %s", p.title(), formatFloat(*p.Min), formatFloat(*p.Max))
		}
	case p.Min != nil:
		if value < *p.Min {
			return toolserver.ErrValidation.Withf("%s must be at least %s", p.title(), formatFloat(*p.Min))
		}
	case p.Max != nil:
		if value > *p.Max {
			return toolserver.ErrValidation.Withf("%s must be at most %s", p.title(), formatFloat(*p.Max))
		}
	}
	return nil
}

func toInteger(value any) (int64, error) {
	switch value := value.(type) {
	case int:
		return int64(value), nil
	case int64:
		return value, nil
	case float64:
		if value != math.Trunc(value) || math.IsInf(value, 0) {
			return 0, strconv.ErrSyntax
		} else if value >= math.MaxInt64 || value < math.MinInt64 {
			return 0, strconv.ErrRange
		}
		return int64(value), nil
	case json.Number:
		return toInteger(value.String())
	case string:
		str := strings.TrimSpace(value)
		if n, err := strconv.ParseInt(str, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return 0, err
		}
		return toInteger(f)
	default:
		return 0, strconv.ErrSyntax
	}
}

func toNumber(value any) (float64, error) {
	switch value := value.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, strconv.ErrRange
		}
		return value, nil
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case json.Number:
		return toNumber(value.String())
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, err
		}
		return toNumber(f)
	default:
		return 0, strconv.ErrSyntax
	}
}

func toBool(value any) (bool, error) {
	switch value := value.(type) {
	case bool:
		return value, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(value))
	default:
		return false, strconv.ErrSyntax
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
