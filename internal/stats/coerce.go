package stats

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// numericPattern is the strict literal grammar accepted from string
// input: optional sign, digits, optional single decimal point. No
// exponent form, no bare leading dot.
var numericPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// Coerce classifies each raw element as numeric or not and returns the
// numeric values in input order plus the count of dropped elements.
// Accepted: Go integer and float types, json.Number, and strings
// matching the strict numeric grammar (surrounding whitespace is
// trimmed first). Everything else, including nil, is dropped silently.
func Coerce(raw []any) (values []float64, dropped int) {
	values = make([]float64, 0, len(raw))
	for _, r := range raw {
		v, ok := coerceOne(r)
		if !ok {
			dropped++
			continue
		}
		values = append(values, v)
	}
	return values, dropped
}

func coerceOne(r any) (float64, bool) {
	switch v := r.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		return parseNumeric(v.String())
	case string:
		return parseNumeric(v)
	default:
		return 0, false
	}
}

func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numericPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
