// Package types defines every cross-package data structure used by the dirmap tool.
//
// The canonical structure encoding marks directories by a trailing path
// separator on their serialized key; this is the sole type discriminator. A
// file whose name literally ends in a separator therefore cannot be
// represented, and neither can a file named exactly "summary", whose key is
// reserved for the annotation convention (serialization fails loudly for
// such entries). These conventions are kept for compatibility with
// hand-authored templates and are known representational limitations.
package types

const (
	StyleTree        = "tree"
	StyleIndentation = "indent"
	StyleList        = "list"
	StyleFlat        = "flat"

	FormatPlain    = "plain"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"

	SortAscending  = "asc"
	SortDescending = "desc"
	SortNone       = "none"

	// TemplateVersion is the only template document version this tool reads and writes.
	TemplateVersion = "1.1"
	// ToolName identifies this tool in template metadata.
	ToolName = "dirmap"

	// DirectorySuffix marks directory keys in the serialized canonical structure.
	DirectorySuffix = "/"
	// SummaryKey is the reserved mapping key carrying a directory's summary annotation.
	SummaryKey = "summary"
)

// StyleNames lists every supported style identifier.
var StyleNames = []string{StyleTree, StyleIndentation, StyleList, StyleFlat}

// FormatNames lists every supported format identifier.
var FormatNames = []string{FormatPlain, FormatJSON, FormatYAML, FormatHTML, FormatMarkdown}

// EntryRecord is one traversal result produced by the walker. The root record
// carries the root path itself in Path at depth zero; descendant records carry
// the slash-separated path relative to the root.
type EntryRecord struct {
	Path        string
	Depth       int
	Name        string
	IsDirectory bool
}

// TemplateMetadata describes how a template's structure was produced.
type TemplateMetadata struct {
	Style        string `json:"style" yaml:"style"`
	Format       string `json:"format" yaml:"format"`
	Version      string `json:"version" yaml:"version"`
	Tool         string `json:"tool,omitempty" yaml:"tool,omitempty"`
	Author       string `json:"author,omitempty" yaml:"author,omitempty"`
	CreationDate string `json:"creation_date,omitempty" yaml:"creation_date,omitempty"`
	LastModified string `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
}

// Template packages a canonical structure with its metadata. The template
// exclusively owns its structure copy; materialization never mutates it.
type Template struct {
	Metadata  TemplateMetadata `json:"metadata" yaml:"metadata"`
	Structure *Structure       `json:"structure" yaml:"structure"`
}

// MaterializationReport enumerates the outcome of one materialization run.
// Entry failures are collected here rather than aborting the operation.
type MaterializationReport struct {
	Created []string
	Skipped []string
	Errors  []*MaterializationError
}

// CreatedCount returns the number of paths created during the run.
func (report *MaterializationReport) CreatedCount() int { return len(report.Created) }

// SkippedCount returns the number of already-existing paths left untouched.
func (report *MaterializationReport) SkippedCount() int { return len(report.Skipped) }

// ErrorCount returns the number of per-entry failures.
func (report *MaterializationReport) ErrorCount() int { return len(report.Errors) }
