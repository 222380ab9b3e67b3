package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// errorDuplicateEntryFormat reports a name collision within one mapping.
	errorDuplicateEntryFormat = "duplicate entry %q in structure"
	// errorEmptyEntryName reports an entry with no name.
	errorEmptyEntryName = "entry name must not be empty"
	// errorSeparatorInNameFormat reports an entry name carrying the directory suffix.
	errorSeparatorInNameFormat = "entry name %q must not end with %q"
	// errorNotMappingFormat reports a serialized structure that is not a mapping.
	errorNotMappingFormat = "structure must be a mapping, got %v"
	// errorDirectoryValueFormat reports a directory key whose value is not a mapping.
	errorDirectoryValueFormat = "directory key %q requires a mapping value"
	// errorFileValueFormat reports a file key whose value is neither null nor a string.
	errorFileValueFormat = "file key %q requires a null or string value"
	// errorFileMappingFormat reports a file key whose value is a mapping.
	errorFileMappingFormat = "file key %q cannot carry a mapping value"
	// errorSummaryValueFormat reports a summary annotation that is not a string.
	errorSummaryValueFormat = "summary annotation must be a string, got %v"
	// errorReservedFileNameFormat reports a file entry whose name collides with
	// the reserved summary annotation key.
	errorReservedFileNameFormat = "file entry %q cannot be serialized; the key is reserved for summary annotations"
)

// Entry is one named member of a canonical structure. A file never has
// children; a directory always does, possibly empty. Summary carries the
// optional per-entry annotation consumed by external summarization and, for
// files, doubles as placeholder content during materialization.
type Entry struct {
	Name        string
	IsDirectory bool
	Summary     string
	Children    *Structure
}

// Structure is the canonical, ordered mapping from entry name to either a
// nested structure (directory) or a leaf (file). Names are unique within one
// structure; insertion order equals traversal and render order.
type Structure struct {
	entries []Entry
}

// NewStructure returns an empty canonical structure.
func NewStructure() *Structure {
	return &Structure{}
}

// Len returns the number of direct entries.
func (structure *Structure) Len() int {
	return len(structure.entries)
}

// Entries returns the direct entries in insertion order.
func (structure *Structure) Entries() []Entry {
	return structure.entries
}

// Lookup returns the direct entry with the given name.
func (structure *Structure) Lookup(name string) (Entry, bool) {
	for _, entry := range structure.entries {
		if entry.Name == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// Add appends an entry, enforcing name uniqueness and the trailing-separator
// convention (the separator lives in the serialized key, never in the name).
func (structure *Structure) Add(entry Entry) error {
	if entry.Name == "" {
		return fmt.Errorf(errorEmptyEntryName)
	}
	if strings.HasSuffix(entry.Name, DirectorySuffix) {
		return fmt.Errorf(errorSeparatorInNameFormat, entry.Name, DirectorySuffix)
	}
	if _, exists := structure.Lookup(entry.Name); exists {
		return fmt.Errorf(errorDuplicateEntryFormat, entry.Name)
	}
	if entry.IsDirectory && entry.Children == nil {
		entry.Children = NewStructure()
	}
	if !entry.IsDirectory {
		entry.Children = nil
	}
	structure.entries = append(structure.entries, entry)
	return nil
}

// AddFile appends a file entry with an optional summary annotation.
func (structure *Structure) AddFile(name string, summary string) error {
	return structure.Add(Entry{Name: name, Summary: summary})
}

// AddDirectory appends a directory entry and returns its child structure.
func (structure *Structure) AddDirectory(name string) (*Structure, error) {
	children := NewStructure()
	if addError := structure.Add(Entry{Name: name, IsDirectory: true, Children: children}); addError != nil {
		return nil, addError
	}
	return children, nil
}

// Clone returns a deep, independent copy of the structure.
func (structure *Structure) Clone() *Structure {
	if structure == nil {
		return nil
	}
	cloned := NewStructure()
	cloned.entries = make([]Entry, 0, len(structure.entries))
	for _, entry := range structure.entries {
		clonedEntry := entry
		if entry.IsDirectory {
			clonedEntry.Children = entry.Children.Clone()
		}
		cloned.entries = append(cloned.entries, clonedEntry)
	}
	return cloned
}

// Equal reports whether two structures hold identical entries in identical order.
func (structure *Structure) Equal(other *Structure) bool {
	if structure == nil || other == nil {
		return structure.Len() == 0 && other.Len() == 0
	}
	if len(structure.entries) != len(other.entries) {
		return false
	}
	for index, entry := range structure.entries {
		otherEntry := other.entries[index]
		if entry.Name != otherEntry.Name || entry.IsDirectory != otherEntry.IsDirectory || entry.Summary != otherEntry.Summary {
			return false
		}
		if entry.IsDirectory && !entry.Children.Equal(otherEntry.Children) {
			return false
		}
	}
	return true
}

// MarshalJSON serializes the structure as an ordered JSON object. Directory
// keys carry the trailing separator; file values are null or the summary
// string; a directory's summary is emitted as the reserved "summary" key
// inside its own mapping.
func (structure *Structure) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	if marshalError := structure.marshalObject(&buffer, ""); marshalError != nil {
		return nil, marshalError
	}
	return buffer.Bytes(), nil
}

func (structure *Structure) marshalObject(buffer *bytes.Buffer, ownerSummary string) error {
	buffer.WriteByte('{')
	needsComma := false
	writeString := func(value string) error {
		encoded, encodeError := json.Marshal(value)
		if encodeError != nil {
			return encodeError
		}
		buffer.Write(encoded)
		return nil
	}
	if ownerSummary != "" {
		if writeError := writeString(SummaryKey); writeError != nil {
			return writeError
		}
		buffer.WriteByte(':')
		if writeError := writeString(ownerSummary); writeError != nil {
			return writeError
		}
		needsComma = true
	}
	for _, entry := range structure.entries {
		// A file serialized under the reserved key would read back as a
		// summary annotation, so it cannot be represented. Directories are
		// unaffected; their key carries the trailing separator.
		if !entry.IsDirectory && entry.Name == SummaryKey {
			return fmt.Errorf(errorReservedFileNameFormat, SummaryKey)
		}
		if needsComma {
			buffer.WriteByte(',')
		}
		needsComma = true
		key := entry.Name
		if entry.IsDirectory {
			key += DirectorySuffix
		}
		if writeError := writeString(key); writeError != nil {
			return writeError
		}
		buffer.WriteByte(':')
		switch {
		case entry.IsDirectory:
			if marshalError := entry.Children.marshalObject(buffer, entry.Summary); marshalError != nil {
				return marshalError
			}
		case entry.Summary != "":
			if writeError := writeString(entry.Summary); writeError != nil {
				return writeError
			}
		default:
			buffer.WriteString("null")
		}
	}
	buffer.WriteByte('}')
	return nil
}

// UnmarshalJSON parses an ordered JSON object back into the canonical
// structure, preserving key order. A summary annotation on the top-level
// mapping has no owning entry and is discarded.
func (structure *Structure) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	openingToken, tokenError := decoder.Token()
	if tokenError != nil {
		return tokenError
	}
	if delimiter, isDelimiter := openingToken.(json.Delim); !isDelimiter || delimiter != '{' {
		return fmt.Errorf(errorNotMappingFormat, openingToken)
	}
	parsed, _, decodeError := decodeStructureBody(decoder)
	if decodeError != nil {
		return decodeError
	}
	*structure = *parsed
	return nil
}

// decodeStructureBody consumes the members and closing brace of an object
// whose opening brace has already been read, returning the parsed structure
// and the mapping's own summary annotation if present.
func decodeStructureBody(decoder *json.Decoder) (*Structure, string, error) {
	parsed := NewStructure()
	ownerSummary := ""
	for decoder.More() {
		keyToken, keyError := decoder.Token()
		if keyError != nil {
			return nil, "", keyError
		}
		key, isString := keyToken.(string)
		if !isString {
			return nil, "", fmt.Errorf(errorNotMappingFormat, keyToken)
		}
		valueToken, valueError := decoder.Token()
		if valueError != nil {
			return nil, "", valueError
		}
		if key == SummaryKey {
			summaryValue, isSummaryString := valueToken.(string)
			if !isSummaryString {
				return nil, "", fmt.Errorf(errorSummaryValueFormat, valueToken)
			}
			ownerSummary = summaryValue
			continue
		}
		isDirectoryKey := strings.HasSuffix(key, DirectorySuffix)
		entryName := strings.TrimSuffix(key, DirectorySuffix)
		switch value := valueToken.(type) {
		case json.Delim:
			if value != '{' {
				if isDirectoryKey {
					return nil, "", fmt.Errorf(errorDirectoryValueFormat, key)
				}
				return nil, "", fmt.Errorf(errorFileValueFormat, key)
			}
			if !isDirectoryKey {
				return nil, "", fmt.Errorf(errorFileMappingFormat, key)
			}
			children, childSummary, childError := decodeStructureBody(decoder)
			if childError != nil {
				return nil, "", childError
			}
			if addError := parsed.Add(Entry{Name: entryName, IsDirectory: true, Summary: childSummary, Children: children}); addError != nil {
				return nil, "", addError
			}
		case string:
			if isDirectoryKey {
				return nil, "", fmt.Errorf(errorDirectoryValueFormat, key)
			}
			if addError := parsed.AddFile(entryName, value); addError != nil {
				return nil, "", addError
			}
		case nil:
			// A null under a directory key is tolerated in hand-authored
			// templates and reads as an empty directory.
			if isDirectoryKey {
				if _, addError := parsed.AddDirectory(entryName); addError != nil {
					return nil, "", addError
				}
				continue
			}
			if addError := parsed.AddFile(entryName, ""); addError != nil {
				return nil, "", addError
			}
		default:
			return nil, "", fmt.Errorf(errorFileValueFormat, key)
		}
	}
	closingToken, closingError := decoder.Token()
	if closingError != nil {
		return nil, "", closingError
	}
	if delimiter, isDelimiter := closingToken.(json.Delim); !isDelimiter || delimiter != '}' {
		return nil, "", fmt.Errorf(errorNotMappingFormat, closingToken)
	}
	return parsed, ownerSummary, nil
}
