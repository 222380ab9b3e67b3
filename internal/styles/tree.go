package styles

import (
	"strings"

	"dirmap/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
)

// TreeRenderer draws branch and connector glyphs per depth, distinguishing
// last siblings from mid siblings by connector shape.
type TreeRenderer struct{}

// Render produces the connector-drawn tree rendering.
func (renderer TreeRenderer) Render(records []types.EntryRecord) string {
	var lines []string
	var levelsHaveNext []bool
	for index, record := range records {
		if record.Depth == 0 {
			lines = append(lines, record.Path)
			levelsHaveNext = levelsHaveNext[:0]
			continue
		}
		isLast := isLastSibling(records, index)
		for len(levelsHaveNext) < record.Depth {
			levelsHaveNext = append(levelsHaveNext, true)
		}
		levelsHaveNext[record.Depth-1] = !isLast

		var lineBuilder strings.Builder
		for level := 0; level < record.Depth-1; level++ {
			if levelsHaveNext[level] {
				lineBuilder.WriteString(treeBranchPadding)
			} else {
				lineBuilder.WriteString(treeLastPadding)
			}
		}
		if isLast {
			lineBuilder.WriteString(treeLastConnector)
		} else {
			lineBuilder.WriteString(treeBranchConnector)
		}
		lineBuilder.WriteString(entryLabel(record))
		lines = append(lines, lineBuilder.String())
	}
	return strings.Join(lines, "\n")
}
