// Package format serializes structures into their final textual encoding.
//
// JSON and YAML encode the canonical structure directly and parse back
// exactly (the round-trip invariant templating depends on). Plain text, HTML,
// and Markdown encode the styled rendering and are one-way.
package format

import (
	"fmt"
	"strings"

	"dirmap/internal/types"
)

// errorUnsupportedFormatFormat reports an unknown format identifier.
const errorUnsupportedFormatFormat = "unsupported format %q (supported: %s)"

// Input carries both possible formatter sources: the styled rendering for
// one-way formats and the canonical structure for round-trippable ones.
type Input struct {
	Styled    string
	Structure *types.Structure
}

// Formatter serializes an input into the final output text.
type Formatter interface {
	Format(input Input) (string, error)
}

// Parser is the optional round-trip capability of a formatter.
type Parser interface {
	Parse(text string) (*types.Structure, error)
}

// formatterRegistry is the closed set of format variants.
var formatterRegistry = map[string]Formatter{
	types.FormatPlain:    PlainFormatter{},
	types.FormatJSON:     JSONFormatter{},
	types.FormatYAML:     YAMLFormatter{},
	types.FormatHTML:     HTMLFormatter{},
	types.FormatMarkdown: MarkdownFormatter{},
}

// fileExtensions maps each format to its canonical output file extension.
var fileExtensions = map[string]string{
	types.FormatPlain:    ".txt",
	types.FormatJSON:     ".json",
	types.FormatYAML:     ".yaml",
	types.FormatHTML:     ".html",
	types.FormatMarkdown: ".md",
}

// ForName returns the formatter registered for the format identifier.
func ForName(formatName string) (Formatter, error) {
	formatter, found := formatterRegistry[formatName]
	if !found {
		return nil, fmt.Errorf(errorUnsupportedFormatFormat, formatName, strings.Join(types.FormatNames, ", "))
	}
	return formatter, nil
}

// IsRoundTrippable reports whether the format can parse its own output.
func IsRoundTrippable(formatName string) bool {
	formatter, found := formatterRegistry[formatName]
	if !found {
		return false
	}
	_, supportsParse := formatter.(Parser)
	return supportsParse
}

// ParseStructure parses formatted text back into the canonical structure.
// One-way formats fail with an UnsupportedRoundTripError.
func ParseStructure(formatName string, text string) (*types.Structure, error) {
	formatter, lookupError := ForName(formatName)
	if lookupError != nil {
		return nil, lookupError
	}
	parser, supportsParse := formatter.(Parser)
	if !supportsParse {
		return nil, &types.UnsupportedRoundTripError{Format: formatName}
	}
	return parser.Parse(text)
}

// Extension returns the canonical file extension for the format.
func Extension(formatName string) string {
	return fileExtensions[formatName]
}
