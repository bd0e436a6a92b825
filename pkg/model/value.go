// pkg/model/value.go
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical rendering of a normalized date.
const DateLayout = "2006-01-02"

// Value is one cell of a flat row: a scalar that may be absent.
// The null marker is distinct from an empty string. The underlying
// scalar is one of string, float64, bool, or time.Time.
type Value struct {
	raw any
	ok  bool
}

// Null returns the explicit no-value marker.
func Null() Value {
	return Value{}
}

// String wraps a string value.
func String(s string) Value {
	return Value{raw: s, ok: true}
}

// Float wraps a numeric value.
func Float(f float64) Value {
	return Value{raw: f, ok: true}
}

// Bool wraps a boolean value.
func Bool(b bool) Value {
	return Value{raw: b, ok: true}
}

// Date wraps a date value.
func Date(t time.Time) Value {
	return Value{raw: t, ok: true}
}

// FromJSON converts a decoded JSON leaf into a Value. Absent fields and
// JSON nulls both decode to nil and become the null marker. Anything
// that is not a JSON scalar is stringified.
func FromJSON(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case string:
		return String(val)
	case float64:
		return Float(val)
	case bool:
		return Bool(val)
	default:
		return String(fmt.Sprintf("%v", val))
	}
}

// IsNull reports whether the value is the no-value marker.
func (v Value) IsNull() bool {
	return !v.ok
}

// IsMissing reports whether the value is null or an empty string.
// This is the absence test used for completeness scoring.
func (v Value) IsMissing() bool {
	if !v.ok {
		return true
	}
	s, isStr := v.raw.(string)
	return isStr && s == ""
}

// Raw returns the underlying scalar, or nil for the null marker.
func (v Value) Raw() any {
	if !v.ok {
		return nil
	}
	return v.raw
}

// AsString converts the value to its string form. The null marker
// converts to an empty string.
func (v Value) AsString() string {
	if !v.ok {
		return ""
	}
	switch val := v.raw.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(DateLayout)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// AsFloat attempts to convert the value to float64. Strings are parsed
// after trimming whitespace; booleans convert to 0/1.
func (v Value) AsFloat() (float64, error) {
	if !v.ok {
		return 0, errors.New("null value")
	}
	switch val := v.raw.(type) {
	case float64:
		return val, nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return 0, errors.New("empty string")
		}
		return strconv.ParseFloat(cleaned, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v.raw)
	}
}

// AsBool attempts to convert the value to bool.
func (v Value) AsBool() (bool, error) {
	if !v.ok {
		return false, errors.New("null value")
	}
	switch val := v.raw.(type) {
	case bool:
		return val, nil
	case float64:
		return val != 0, nil
	case string:
		cleaned := strings.TrimSpace(strings.ToLower(val))
		switch cleaned {
		case "true", "t", "yes", "y", "1":
			return true, nil
		case "false", "f", "no", "n", "0":
			return false, nil
		default:
			return false, fmt.Errorf("cannot parse '%s' as boolean", val)
		}
	default:
		return false, fmt.Errorf("cannot convert %T to bool", v.raw)
	}
}

// AsDate returns the value as a date if it holds one.
func (v Value) AsDate() (time.Time, bool) {
	if !v.ok {
		return time.Time{}, false
	}
	t, isTime := v.raw.(time.Time)
	return t, isTime
}

// Equal compares two values, including their null markers.
func (v Value) Equal(other Value) bool {
	if v.ok != other.ok {
		return false
	}
	if !v.ok {
		return true
	}
	vt, vIsTime := v.raw.(time.Time)
	ot, oIsTime := other.raw.(time.Time)
	if vIsTime || oIsTime {
		return vIsTime && oIsTime && vt.Equal(ot)
	}
	return v.raw == other.raw
}
