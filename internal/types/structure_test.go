package types_test

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"dirmap/internal/types"
)

// buildSampleStructure returns a structure covering directories, files,
// summaries, and an empty directory.
func buildSampleStructure(testingInstance *testing.T) *types.Structure {
	testingInstance.Helper()
	structure := types.NewStructure()
	sourceDirectory, directoryError := structure.AddDirectory("src")
	if directoryError != nil {
		testingInstance.Fatalf("adding src directory: %v", directoryError)
	}
	if fileError := sourceDirectory.AddFile("main.ext", ""); fileError != nil {
		testingInstance.Fatalf("adding main.ext: %v", fileError)
	}
	if fileError := sourceDirectory.AddFile("notes.txt", "scratch notes"); fileError != nil {
		testingInstance.Fatalf("adding notes.txt: %v", fileError)
	}
	if _, directoryError := structure.AddDirectory("empty"); directoryError != nil {
		testingInstance.Fatalf("adding empty directory: %v", directoryError)
	}
	if fileError := structure.AddFile("README.md", ""); fileError != nil {
		testingInstance.Fatalf("adding README.md: %v", fileError)
	}
	return structure
}

// TestStructureAddRejections verifies entry validation rules.
func TestStructureAddRejections(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		build    func(structure *types.Structure) error
	}{
		{
			testName: "empty name",
			build: func(structure *types.Structure) error {
				return structure.AddFile("", "")
			},
		},
		{
			testName: "trailing separator in name",
			build: func(structure *types.Structure) error {
				return structure.AddFile("dir/", "")
			},
		},
		{
			testName: "duplicate name",
			build: func(structure *types.Structure) error {
				if addError := structure.AddFile("a.txt", ""); addError != nil {
					return addError
				}
				return structure.AddFile("a.txt", "")
			},
		},
	}
	for index, testCase := range testCases {
		structure := types.NewStructure()
		if buildError := testCase.build(structure); buildError == nil {
			testingInstance.Errorf("case %d (%s): expected error, got nil", index, testCase.testName)
		}
	}
}

// TestStructureJSONScenario verifies the exact canonical JSON encoding.
func TestStructureJSONScenario(testingInstance *testing.T) {
	structure := types.NewStructure()
	sourceDirectory, directoryError := structure.AddDirectory("src")
	if directoryError != nil {
		testingInstance.Fatalf("adding src directory: %v", directoryError)
	}
	if fileError := sourceDirectory.AddFile("main.ext", ""); fileError != nil {
		testingInstance.Fatalf("adding main.ext: %v", fileError)
	}
	encoded, encodeError := json.Marshal(structure)
	if encodeError != nil {
		testingInstance.Fatalf("marshaling structure: %v", encodeError)
	}
	expected := `{"src/":{"main.ext":null}}`
	if string(encoded) != expected {
		testingInstance.Errorf("expected %s, got %s", expected, string(encoded))
	}
}

// TestStructureJSONRoundTrip verifies that parse(format(structure)) equals the structure.
func TestStructureJSONRoundTrip(testingInstance *testing.T) {
	original := buildSampleStructure(testingInstance)
	encoded, encodeError := json.MarshalIndent(original, "", "  ")
	if encodeError != nil {
		testingInstance.Fatalf("marshaling structure: %v", encodeError)
	}
	parsed := types.NewStructure()
	if decodeError := json.Unmarshal(encoded, parsed); decodeError != nil {
		testingInstance.Fatalf("unmarshaling structure: %v", decodeError)
	}
	if !original.Equal(parsed) {
		testingInstance.Errorf("round trip mismatch: original %v, parsed %v", original.Entries(), parsed.Entries())
	}
}

// TestStructureYAMLRoundTrip verifies the YAML round trip including summaries.
func TestStructureYAMLRoundTrip(testingInstance *testing.T) {
	original := buildSampleStructure(testingInstance)
	encoded, encodeError := yaml.Marshal(original)
	if encodeError != nil {
		testingInstance.Fatalf("marshaling structure: %v", encodeError)
	}
	parsed := types.NewStructure()
	if decodeError := yaml.Unmarshal(encoded, parsed); decodeError != nil {
		testingInstance.Fatalf("unmarshaling structure: %v", decodeError)
	}
	if !original.Equal(parsed) {
		testingInstance.Errorf("round trip mismatch: original %v, parsed %v", original.Entries(), parsed.Entries())
	}
}

// TestStructureDirectorySummaryRoundTrip verifies the reserved summary key on directories.
func TestStructureDirectorySummaryRoundTrip(testingInstance *testing.T) {
	encoded := `{"src/":{"summary":"application sources","main.ext":null}}`
	parsed := types.NewStructure()
	if decodeError := json.Unmarshal([]byte(encoded), parsed); decodeError != nil {
		testingInstance.Fatalf("unmarshaling structure: %v", decodeError)
	}
	entry, found := parsed.Lookup("src")
	if !found {
		testingInstance.Fatalf("expected src entry")
	}
	if entry.Summary != "application sources" {
		testingInstance.Errorf("expected summary %q, got %q", "application sources", entry.Summary)
	}
	if entry.Children.Len() != 1 {
		testingInstance.Errorf("expected one child, got %d", entry.Children.Len())
	}
	reencoded, encodeError := json.Marshal(parsed)
	if encodeError != nil {
		testingInstance.Fatalf("marshaling structure: %v", encodeError)
	}
	if string(reencoded) != encoded {
		testingInstance.Errorf("expected %s, got %s", encoded, string(reencoded))
	}
}

// TestStructureMarshalRejectsReservedFileName verifies a file named after the
// reserved annotation key fails serialization instead of producing a document
// that parses back differently.
func TestStructureMarshalRejectsReservedFileName(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		summary  string
	}{
		{testName: "unannotated file", summary: ""},
		{testName: "annotated file", summary: "weekly report"},
	}
	for index, testCase := range testCases {
		structure := types.NewStructure()
		documentsDirectory, directoryError := structure.AddDirectory("docs")
		if directoryError != nil {
			testingInstance.Fatalf("case %d (%s): adding docs: %v", index, testCase.testName, directoryError)
		}
		if fileError := documentsDirectory.AddFile(types.SummaryKey, testCase.summary); fileError != nil {
			testingInstance.Fatalf("case %d (%s): adding summary file: %v", index, testCase.testName, fileError)
		}
		if _, encodeError := json.Marshal(structure); encodeError == nil {
			testingInstance.Errorf("case %d (%s): expected JSON marshal error, got nil", index, testCase.testName)
		}
		if _, encodeError := yaml.Marshal(structure); encodeError == nil {
			testingInstance.Errorf("case %d (%s): expected YAML marshal error, got nil", index, testCase.testName)
		}
	}
}

// TestStructureDirectoryNamedSummaryRoundTrips verifies the reserved key only
// constrains files; a directory named summary keys its trailing separator.
func TestStructureDirectoryNamedSummaryRoundTrips(testingInstance *testing.T) {
	original := types.NewStructure()
	summaryDirectory, directoryError := original.AddDirectory(types.SummaryKey)
	if directoryError != nil {
		testingInstance.Fatalf("adding summary directory: %v", directoryError)
	}
	if fileError := summaryDirectory.AddFile("q3.md", ""); fileError != nil {
		testingInstance.Fatalf("adding q3.md: %v", fileError)
	}
	encoded, encodeError := json.Marshal(original)
	if encodeError != nil {
		testingInstance.Fatalf("marshaling structure: %v", encodeError)
	}
	expected := `{"summary/":{"q3.md":null}}`
	if string(encoded) != expected {
		testingInstance.Fatalf("expected %s, got %s", expected, string(encoded))
	}
	parsed := types.NewStructure()
	if decodeError := json.Unmarshal(encoded, parsed); decodeError != nil {
		testingInstance.Fatalf("unmarshaling structure: %v", decodeError)
	}
	if !original.Equal(parsed) {
		testingInstance.Errorf("round trip mismatch for directory named summary")
	}
}

// TestStructureUnmarshalRejectsFileMapping verifies a mapping value under a
// file key fails with an error naming the file key.
func TestStructureUnmarshalRejectsFileMapping(testingInstance *testing.T) {
	parsed := types.NewStructure()
	decodeError := json.Unmarshal([]byte(`{"file.txt":{}}`), parsed)
	if decodeError == nil {
		testingInstance.Fatalf("expected error for mapping under file key, got nil")
	}
	if !strings.Contains(decodeError.Error(), `file key "file.txt"`) {
		testingInstance.Errorf("expected error naming the file key, got %v", decodeError)
	}
	yamlParsed := types.NewStructure()
	yamlDecodeError := yaml.Unmarshal([]byte("file.txt:\n  nested: null\n"), yamlParsed)
	if yamlDecodeError == nil {
		testingInstance.Fatalf("expected YAML error for mapping under file key, got nil")
	}
	if !strings.Contains(yamlDecodeError.Error(), `file key "file.txt"`) {
		testingInstance.Errorf("expected YAML error naming the file key, got %v", yamlDecodeError)
	}
}

// TestStructureUnmarshalRejectsDuplicates verifies the unique-name invariant during parsing.
func TestStructureUnmarshalRejectsDuplicates(testingInstance *testing.T) {
	encoded := `{"a.txt":null,"a.txt":null}`
	parsed := types.NewStructure()
	if decodeError := json.Unmarshal([]byte(encoded), parsed); decodeError == nil {
		testingInstance.Errorf("expected duplicate key error, got nil")
	}
}

// TestStructureClone verifies that clones are deep and independent.
func TestStructureClone(testingInstance *testing.T) {
	original := buildSampleStructure(testingInstance)
	cloned := original.Clone()
	if !original.Equal(cloned) {
		testingInstance.Fatalf("clone differs from original")
	}
	sourceEntry, found := original.Lookup("src")
	if !found {
		testingInstance.Fatalf("expected src entry")
	}
	if addError := sourceEntry.Children.AddFile("added-later.txt", ""); addError != nil {
		testingInstance.Fatalf("mutating original: %v", addError)
	}
	if original.Equal(cloned) {
		testingInstance.Errorf("clone changed with the original")
	}
}

// TestStructureEqualOrderSensitive verifies that insertion order participates in equality.
func TestStructureEqualOrderSensitive(testingInstance *testing.T) {
	first := types.NewStructure()
	if addError := first.AddFile("a.txt", ""); addError != nil {
		testingInstance.Fatalf("adding a.txt: %v", addError)
	}
	if addError := first.AddFile("b.txt", ""); addError != nil {
		testingInstance.Fatalf("adding b.txt: %v", addError)
	}
	second := types.NewStructure()
	if addError := second.AddFile("b.txt", ""); addError != nil {
		testingInstance.Fatalf("adding b.txt: %v", addError)
	}
	if addError := second.AddFile("a.txt", ""); addError != nil {
		testingInstance.Fatalf("adding a.txt: %v", addError)
	}
	if first.Equal(second) {
		testingInstance.Errorf("structures with different order compared equal")
	}
}
