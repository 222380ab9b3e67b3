package styles_test

import (
	"strings"
	"testing"

	"dirmap/internal/styles"
	"dirmap/internal/types"
)

// fixtureRecords models root/ with dir1 (two files, a subdirectory) and dir2.
func fixtureRecords() []types.EntryRecord {
	return []types.EntryRecord{
		{Path: "root", Depth: 0, Name: "root", IsDirectory: true},
		{Path: "dir1", Depth: 1, Name: "dir1", IsDirectory: true},
		{Path: "dir1/file1.txt", Depth: 2, Name: "file1.txt", IsDirectory: false},
		{Path: "dir1/file2.txt", Depth: 2, Name: "file2.txt", IsDirectory: false},
		{Path: "dir1/subdir1", Depth: 2, Name: "subdir1", IsDirectory: true},
		{Path: "dir1/subdir1/file3.txt", Depth: 3, Name: "file3.txt", IsDirectory: false},
		{Path: "dir2", Depth: 1, Name: "dir2", IsDirectory: true},
	}
}

// TestForNameUnknownStyle verifies style dispatch failure.
func TestForNameUnknownStyle(testingInstance *testing.T) {
	if _, lookupError := styles.ForName("sculpture"); lookupError == nil {
		testingInstance.Errorf("expected error for unknown style, got nil")
	}
}

// TestRenderers verifies each style's exact rendering of the fixture tree.
func TestRenderers(testingInstance *testing.T) {
	testCases := []struct {
		testName  string
		styleName string
		expected  []string
	}{
		{
			testName:  "tree connectors",
			styleName: types.StyleTree,
			expected: []string{
				"root",
				"├── dir1/",
				"│   ├── file1.txt",
				"│   ├── file2.txt",
				"│   └── subdir1/",
				"│       └── file3.txt",
				"└── dir2/",
			},
		},
		{
			testName:  "indentation",
			styleName: types.StyleIndentation,
			expected: []string{
				"root",
				"dir1/",
				"    file1.txt",
				"    file2.txt",
				"    subdir1/",
				"        file3.txt",
				"dir2/",
			},
		},
		{
			testName:  "list",
			styleName: types.StyleList,
			expected: []string{
				"root",
				"- dir1/",
				"    - file1.txt",
				"    - file2.txt",
				"    - subdir1/",
				"        - file3.txt",
				"- dir2/",
			},
		},
		{
			testName:  "flat paths",
			styleName: types.StyleFlat,
			expected: []string{
				"root",
				"dir1/",
				"dir1/file1.txt",
				"dir1/file2.txt",
				"dir1/subdir1/",
				"dir1/subdir1/file3.txt",
				"dir2/",
			},
		},
	}
	for index, testCase := range testCases {
		renderer, lookupError := styles.ForName(testCase.styleName)
		if lookupError != nil {
			testingInstance.Fatalf("case %d (%s): looking up style: %v", index, testCase.testName, lookupError)
		}
		actual := renderer.Render(fixtureRecords())
		expected := strings.Join(testCase.expected, "\n")
		if actual != expected {
			testingInstance.Errorf("case %d (%s): expected:\n%s\ngot:\n%s", index, testCase.testName, expected, actual)
		}
	}
}

// TestRenderDeterminism verifies that rendering is a pure function of the sequence.
func TestRenderDeterminism(testingInstance *testing.T) {
	renderer, lookupError := styles.ForName(types.StyleTree)
	if lookupError != nil {
		testingInstance.Fatalf("looking up style: %v", lookupError)
	}
	first := renderer.Render(fixtureRecords())
	second := renderer.Render(fixtureRecords())
	if first != second {
		testingInstance.Errorf("expected identical renderings for identical input")
	}
}
