// Package numeric coerces loosely typed spreadsheet values into float64.
//
// Parsing is total: every input yields a number, falling back to a caller
// supplied default. Inspect additionally reports whether the default was used
// because the value was absent or because it was present but unparsable.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

// Outcome classifies how a value was coerced.
type Outcome int

const (
	// OutcomeParsed means the value was numeric or parsed from text.
	OutcomeParsed Outcome = iota
	// OutcomeAbsent means the value was nil or blank text.
	OutcomeAbsent
	// OutcomeMalformed means the value was present but could not be parsed.
	OutcomeMalformed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeParsed:
		return "parsed"
	case OutcomeAbsent:
		return "absent"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Parse returns v as a float64, or def when v is absent or unparsable.
func Parse(v any, def float64) float64 {
	f, _ := Inspect(v, def)
	return f
}

// Inspect is Parse plus the outcome that produced the result.
func Inspect(v any, def float64) (float64, Outcome) {
	switch x := v.(type) {
	case nil:
		return def, OutcomeAbsent
	case float64:
		return finite(x, def)
	case float32:
		return finite(float64(x), def)
	case int:
		return float64(x), OutcomeParsed
	case int8:
		return float64(x), OutcomeParsed
	case int16:
		return float64(x), OutcomeParsed
	case int32:
		return float64(x), OutcomeParsed
	case int64:
		return float64(x), OutcomeParsed
	case uint:
		return float64(x), OutcomeParsed
	case uint8:
		return float64(x), OutcomeParsed
	case uint16:
		return float64(x), OutcomeParsed
	case uint32:
		return float64(x), OutcomeParsed
	case uint64:
		return float64(x), OutcomeParsed
	case string:
		return parseText(x, def)
	default:
		return def, OutcomeMalformed
	}
}

func finite(f, def float64) (float64, Outcome) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def, OutcomeMalformed
	}
	return f, OutcomeParsed
}

// parseText keeps digits, '.', ',' and '-', turns the first ',' into '.',
// then parses the longest leading decimal prefix ("R$ 1.234,5" -> 1.234).
func parseText(s string, def float64) (float64, Outcome) {
	if strings.TrimSpace(s) == "" {
		return def, OutcomeAbsent
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)

	prefix := decimalPrefix(cleaned)
	if prefix == "" {
		return def, OutcomeMalformed
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return def, OutcomeMalformed
	}
	return finite(f, def)
}

// decimalPrefix returns the longest prefix of s matching -?D*(\.D*)? with at
// least one digit, or "".
func decimalPrefix(s string) string {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	end := i
	if i < len(s) && s[i] == '.' {
		i++
		frac := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			frac++
		}
		if frac > 0 {
			digits += frac
			end = i
		}
	}
	if digits == 0 {
		return ""
	}
	return s[:end]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
