// Package utils holds the lenient JSON intake used at the input boundary.
// Extractor payloads arrive as text of uneven quality; everything past this
// package works on decoded values, never on raw strings.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ValidateJSON decodes a JSON string into the provided Go struct and rejects
// any field the struct does not declare. The struct is the schema: if the
// payload carries keys the code does not know, the decode fails instead of
// silently dropping them.
func ValidateJSON(jsonData string, schema interface{}) error {
	dec := json.NewDecoder(strings.NewReader(jsonData))
	dec.DisallowUnknownFields()
	if err := dec.Decode(schema); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return fmt.Errorf("JSON_SCHEMA_VIOLATION: %v", err)
		}
		return fmt.Errorf("JSON_STRUCTURAL_ERROR: %v", err)
	}
	return nil
}

// RepairJSON attempts to fix common JSON errors in extractor output.
// Uses github.com/RealAlexandreAI/json-repair for mechanical repair.
// Supported repairs:
// - Missing quotes around keys
// - Single quotes instead of double quotes
// - Unclosed arrays/objects
// - TRUE/FALSE/Null instead of true/false/null
// - Trailing commas
// - Comments in JSON
// - Leading/trailing whitespace and markdown code blocks
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSON parses Human-friendly JSON (Hjson) and returns standard JSON.
// Hjson supports:
// - Comments (# // /* */)
// - Unquoted keys
// - Unquoted strings
// - Optional commas
// - Multiline strings
//
// This covers hand-written record files and the most damaged extractor
// payloads the mechanical repair cannot salvage.
func ParseHJSON(hjsonData string) (string, error) {
	var result interface{}
	err := hjson.Unmarshal([]byte(hjsonData), &result)
	if err != nil {
		return "", fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}

	return string(jsonBytes), nil
}

// SmartParse tries multiple parsing strategies to turn raw extractor text
// into a record payload. The payload must be a JSON object; arrays and bare
// scalars are rejected by every stage.
// Order of attempts:
// 1. Standard JSON parse
// 2. JSON repair
// 3. Hjson parse (most lenient)
func SmartParse(input string) (map[string]interface{}, error) {
	// Try 1: Standard JSON
	if payload, ok := decodeObject(input); ok {
		return payload, nil
	}

	// Try 2: JSON Repair
	if repaired, err := RepairJSON(input); err == nil {
		if payload, ok := decodeObject(repaired); ok {
			return payload, nil
		}
	}

	// Try 3: Hjson (most lenient)
	if converted, err := ParseHJSON(input); err == nil {
		if payload, ok := decodeObject(converted); ok {
			return payload, nil
		}
	}

	return nil, fmt.Errorf("SMART_PARSE_FAILED: all parsing strategies failed for input")
}

// decodeObject unmarshals one JSON object with number fidelity preserved:
// values decode as json.Number so large funding figures survive intact
// until the normalizer coerces them.
func decodeObject(input string) (map[string]interface{}, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(input)))
	dec.UseNumber()
	var payload map[string]interface{}
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return nil, false
	}
	return payload, true
}
