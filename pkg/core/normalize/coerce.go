package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// NUMERIC COERCION
// =============================================================================
// Extractor output writes numbers however the source deck did: "₹3,50,000",
// "$1.2m", "2 lakh", "12%", "(500)". Coercion turns all of those into plain
// float64 values; anything it cannot read is an error for the caller to
// report, never a silent zero.

// magnitudeSuffixes are checked longest-first so "bn" wins over "b" and
// "crore" over "cr".
var magnitudeSuffixes = []struct {
	suffix string
	factor float64
}{
	{"crore", 1e7},
	{"cr", 1e7},
	{"lakh", 1e5},
	{"lac", 1e5},
	{"billion", 1e9},
	{"bn", 1e9},
	{"b", 1e9},
	{"million", 1e6},
	{"mn", 1e6},
	{"m", 1e6},
	{"thousand", 1e3},
	{"k", 1e3},
}

// currencyTokens are stripped from the front of money strings. "rs." must
// precede "rs" so the dot is consumed with it.
var currencyTokens = []string{"₹", "$", "€", "£", "rs.", "rs", "inr", "usd"}

// CoerceNumber converts a raw extracted value into a float64. Strings go
// through the money/percent parser; numeric JSON types pass through.
func CoerceNumber(raw any) (float64, error) {
	v, _, err := coerce(raw)
	return v, err
}

// coerce additionally reports whether the input was explicitly written in
// percent form ("12%"), so fraction fields can skip the percentage
// reinterpretation heuristic on values the source already marked.
func coerce(raw any) (float64, bool, error) {
	switch v := raw.(type) {
	case float64:
		return v, false, nil
	case float32:
		return float64(v), false, nil
	case int:
		return float64(v), false, nil
	case int32:
		return float64(v), false, nil
	case int64:
		return float64(v), false, nil
	case uint:
		return float64(v), false, nil
	case uint64:
		return float64(v), false, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("not numeric: %q", v.String())
		}
		return f, false, nil
	case string:
		return parseNumberString(v)
	case nil:
		return 0, false, fmt.Errorf("value is null")
	default:
		return 0, false, fmt.Errorf("unsupported type %T", raw)
	}
}

// parseNumberString reads a human-formatted number: currency symbols,
// thousands separators (Western or Indian grouping), magnitude suffixes,
// percent signs, and accounting-style parenthesized negatives.
func parseNumberString(raw string) (float64, bool, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false, fmt.Errorf("empty string")
	}

	// Accounting negative: (500) means -500.
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	percent := false
	for _, p := range []string{"%", "percent", "pct"} {
		if strings.HasSuffix(s, p) {
			percent = true
			s = strings.TrimSpace(strings.TrimSuffix(s, p))
			break
		}
	}

	for _, c := range currencyTokens {
		s = strings.TrimSpace(strings.TrimPrefix(s, c))
	}

	// Commas are grouping only; Indian 2-2-3 grouping parses the same way.
	s = strings.ReplaceAll(s, ",", "")

	factor := 1.0
	for _, m := range magnitudeSuffixes {
		if strings.HasSuffix(s, m.suffix) {
			factor = m.factor
			s = strings.TrimSpace(strings.TrimSuffix(s, m.suffix))
			break
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("not numeric: %q", raw)
	}

	v *= factor
	if percent {
		v /= 100
	}
	if negative {
		v = -v
	}
	return v, percent, nil
}
