// Package utils holds small helpers shared across the surfaces: tolerant
// JSON reading for hand-written deal files and markdown rendering for
// reports.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes the mechanical damage common in hand-edited JSON:
// missing quotes around keys, single quotes, trailing commas, unclosed
// arrays and objects, inline comments.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("repair json: %w", err)
	}
	return repaired, nil
}

// ParseHJSON reads HJSON (comments, unquoted keys, optional commas,
// multiline strings) and returns the equivalent standard JSON.
func ParseHJSON(input string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(input), &result); err != nil {
		return "", fmt.Errorf("parse hjson: %w", err)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("remarshal hjson: %w", err)
	}
	return string(jsonBytes), nil
}

// SmartParse unmarshals input into schema through progressively more
// forgiving readers: strict JSON first, then mechanical repair, then HJSON
// for files written by hand. It returns the JSON that finally parsed so
// callers can log what was actually accepted.
func SmartParse(input string, schema interface{}) (string, error) {
	// Try 1: strict JSON.
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return input, nil
	}

	// Try 2: repaired JSON.
	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return repaired, nil
		}
	}

	// Try 3: HJSON, the most lenient.
	if converted, err := ParseHJSON(input); err == nil {
		if err := json.Unmarshal([]byte(converted), schema); err == nil {
			return converted, nil
		}
	}

	return "", fmt.Errorf("input is not valid JSON, repairable JSON, or HJSON")
}
