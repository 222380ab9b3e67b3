package format

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"dirmap/internal/types"
)

const (
	jsonIndentPrefix = ""
	jsonIndentSpacer = "  "

	// errorNilStructure reports a canonical formatter invoked without a structure.
	errorNilStructure = "canonical format requires a structure"
)

// JSONFormatter serializes the canonical structure as an ordered JSON object
// and parses it back exactly.
type JSONFormatter struct{}

// Format encodes the canonical structure as indented JSON.
func (formatter JSONFormatter) Format(input Input) (string, error) {
	if input.Structure == nil {
		return "", fmt.Errorf(errorNilStructure)
	}
	encoded, encodeError := json.MarshalIndent(input.Structure, jsonIndentPrefix, jsonIndentSpacer)
	if encodeError != nil {
		return "", encodeError
	}
	return string(encoded), nil
}

// Parse decodes JSON text back into the canonical structure.
func (formatter JSONFormatter) Parse(text string) (*types.Structure, error) {
	parsed := types.NewStructure()
	if decodeError := json.Unmarshal([]byte(text), parsed); decodeError != nil {
		return nil, decodeError
	}
	return parsed, nil
}

// YAMLFormatter serializes the canonical structure as an ordered YAML mapping
// and parses it back exactly.
type YAMLFormatter struct{}

// Format encodes the canonical structure as YAML.
func (formatter YAMLFormatter) Format(input Input) (string, error) {
	if input.Structure == nil {
		return "", fmt.Errorf(errorNilStructure)
	}
	encoded, encodeError := yaml.Marshal(input.Structure)
	if encodeError != nil {
		return "", encodeError
	}
	return string(encoded), nil
}

// Parse decodes YAML text back into the canonical structure.
func (formatter YAMLFormatter) Parse(text string) (*types.Structure, error) {
	parsed := types.NewStructure()
	if decodeError := yaml.Unmarshal([]byte(text), parsed); decodeError != nil {
		return nil, decodeError
	}
	return parsed, nil
}
