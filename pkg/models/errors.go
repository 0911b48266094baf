package models

import (
	"fmt"
	"strings"
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================
// Three failure classes, surfaced as structured results rather than retried:
//   ValidationError:    malformed/missing input fields, ALL enumerated
//   CalculationError:   a specific ratio could not be computed
//   ConfigurationError: bad engine configuration, raised before calculation

// FieldError describes one offending input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError enumerates every missing or invalid field found while
// normalizing a raw record. Normalization never stops at the first problem:
// the caller inspects the full list to decide whether the record is usable
// or should be re-requested from the upstream extractor.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation error"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return fmt.Sprintf("%d invalid field(s): %s", len(e.Fields), strings.Join(parts, "; "))
}

// Add records one offending field.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// Addf records one offending field with a formatted reason.
func (e *ValidationError) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// Empty reports whether no field errors were recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// HasField reports whether the named field was flagged.
func (e *ValidationError) HasField(field string) bool {
	if e == nil {
		return false
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrNil returns nil when no errors were recorded, so callers can return the
// accumulated value directly.
func (e *ValidationError) OrNil() *ValidationError {
	if e.Empty() {
		return nil
	}
	return e
}

// CalcErrorKind distinguishes why a ratio was uncomputable.
type CalcErrorKind string

const (
	// KindDivisionByZero: a denominator the ratio depends on is zero.
	// Rejected explicitly, never coerced to zero or infinity.
	KindDivisionByZero CalcErrorKind = "division_by_zero"
	// KindInsufficientData: a required input field is absent.
	KindInsufficientData CalcErrorKind = "insufficient_data"
)

// CalculationError reports that one specific metric could not be computed.
// Calculation always continues for unaffected metrics.
type CalculationError struct {
	Metric string        `json:"metric"`
	Kind   CalcErrorKind `json:"kind"`
	Detail string        `json:"detail"`
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Metric, e.Detail, e.Kind)
}

// ConfigurationError reports invalid engine configuration (unknown scenario
// name, weight set not summing to 1.0, bad granularity). It is raised before
// any calculation starts.
type ConfigurationError struct {
	Setting string `json:"setting"`
	Detail  string `json:"detail"`
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Setting, e.Detail)
}
