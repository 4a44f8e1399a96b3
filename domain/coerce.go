// server/domain/coerce.go
package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Truthy coerces a decoded JSON value to a flag. Only true, "true", 1 and "1"
// are true; everything else is false.
func Truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == "true" || x == "1"
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 1
	case float64:
		return x == 1
	case int:
		return x == 1
	}
	return false
}

// CoerceString renders a scalar JSON value as text. Objects, arrays and null
// have no text form and report false.
func CoerceString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	}
	return "", false
}

// NormalizeTitle trims surrounding whitespace.
func NormalizeTitle(s string) string {
	return strings.TrimSpace(s)
}
