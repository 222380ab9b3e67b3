package styles

import (
	"strings"

	"dirmap/internal/types"
)

const (
	indentUnit     = "    "
	listItemPrefix = "- "
)

// IndentationRenderer renders names with depth-proportional indentation and
// no connector glyphs.
type IndentationRenderer struct{}

// Render produces the indented rendering.
func (renderer IndentationRenderer) Render(records []types.EntryRecord) string {
	var lines []string
	for _, record := range records {
		if record.Depth == 0 {
			lines = append(lines, record.Path)
			continue
		}
		lines = append(lines, strings.Repeat(indentUnit, record.Depth-1)+entryLabel(record))
	}
	return strings.Join(lines, "\n")
}

// ListRenderer renders each entry as a dash-prefixed list item indented by depth.
type ListRenderer struct{}

// Render produces the list rendering.
func (renderer ListRenderer) Render(records []types.EntryRecord) string {
	var lines []string
	for _, record := range records {
		if record.Depth == 0 {
			lines = append(lines, record.Path)
			continue
		}
		lines = append(lines, strings.Repeat(indentUnit, record.Depth-1)+listItemPrefix+entryLabel(record))
	}
	return strings.Join(lines, "\n")
}

// FlatRenderer renders each entry as its full path relative to the root, one
// per line; depth information is discarded.
type FlatRenderer struct{}

// Render produces the flat path rendering.
func (renderer FlatRenderer) Render(records []types.EntryRecord) string {
	var lines []string
	for _, record := range records {
		if record.Depth == 0 {
			lines = append(lines, record.Path)
			continue
		}
		label := record.Path
		if record.IsDirectory {
			label += types.DirectorySuffix
		}
		lines = append(lines, label)
	}
	return strings.Join(lines, "\n")
}
