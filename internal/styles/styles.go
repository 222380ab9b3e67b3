// Package styles converts the ordered entry sequence into a visual layout.
// Rendering is a pure function of the sequence: identical input ordering
// always yields identical output.
package styles

import (
	"fmt"
	"strings"

	"dirmap/internal/types"
)

// errorUnsupportedStyleFormat reports an unknown style identifier.
const errorUnsupportedStyleFormat = "unsupported style %q (supported: %s)"

// Renderer converts the ordered entry records into a style-specific rendering.
type Renderer interface {
	Render(records []types.EntryRecord) string
}

// rendererRegistry is the closed set of style variants.
var rendererRegistry = map[string]Renderer{
	types.StyleTree:        TreeRenderer{},
	types.StyleIndentation: IndentationRenderer{},
	types.StyleList:        ListRenderer{},
	types.StyleFlat:        FlatRenderer{},
}

// ForName returns the renderer registered for the style identifier.
func ForName(styleName string) (Renderer, error) {
	renderer, found := rendererRegistry[styleName]
	if !found {
		return nil, fmt.Errorf(errorUnsupportedStyleFormat, styleName, strings.Join(types.StyleNames, ", "))
	}
	return renderer, nil
}

// entryLabel returns the display name with the directory suffix applied.
func entryLabel(record types.EntryRecord) string {
	if record.IsDirectory {
		return record.Name + types.DirectorySuffix
	}
	return record.Name
}

// isLastSibling reports whether no later record shares the record's depth
// before the sequence returns to a shallower level.
func isLastSibling(records []types.EntryRecord, index int) bool {
	currentDepth := records[index].Depth
	for nextIndex := index + 1; nextIndex < len(records); nextIndex++ {
		nextDepth := records[nextIndex].Depth
		if nextDepth == currentDepth {
			return false
		}
		if nextDepth < currentDepth {
			break
		}
	}
	return true
}
