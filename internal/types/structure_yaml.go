package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	yamlStringTag  = "!!str"
	yamlNullTag    = "!!null"
	yamlMappingTag = "!!map"
)

// MarshalYAML serializes the structure as an ordered YAML mapping using the
// same key conventions as the JSON encoding.
func (structure *Structure) MarshalYAML() (interface{}, error) {
	return structure.yamlMappingNode("")
}

func (structure *Structure) yamlMappingNode(ownerSummary string) (*yaml.Node, error) {
	mappingNode := &yaml.Node{Kind: yaml.MappingNode, Tag: yamlMappingTag}
	appendPair := func(keyNode *yaml.Node, valueNode *yaml.Node) {
		mappingNode.Content = append(mappingNode.Content, keyNode, valueNode)
	}
	if ownerSummary != "" {
		appendPair(yamlStringNode(SummaryKey), yamlStringNode(ownerSummary))
	}
	for _, entry := range structure.entries {
		switch {
		case entry.IsDirectory:
			childNode, childError := entry.Children.yamlMappingNode(entry.Summary)
			if childError != nil {
				return nil, childError
			}
			appendPair(yamlStringNode(entry.Name+DirectorySuffix), childNode)
		case entry.Name == SummaryKey:
			// Serialized under the reserved key the file would read back as a
			// summary annotation; refuse rather than emit an ambiguous document.
			return nil, fmt.Errorf(errorReservedFileNameFormat, SummaryKey)
		case entry.Summary != "":
			appendPair(yamlStringNode(entry.Name), yamlStringNode(entry.Summary))
		default:
			appendPair(yamlStringNode(entry.Name), &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlNullTag, Value: "null"})
		}
	}
	return mappingNode, nil
}

func yamlStringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStringTag, Value: value}
}

// UnmarshalYAML parses an ordered YAML mapping back into the canonical
// structure. As with JSON, a top-level summary annotation is discarded.
func (structure *Structure) UnmarshalYAML(value *yaml.Node) error {
	parsed, _, decodeError := decodeYAMLMapping(value)
	if decodeError != nil {
		return decodeError
	}
	*structure = *parsed
	return nil
}

func decodeYAMLMapping(mappingNode *yaml.Node) (*Structure, string, error) {
	if mappingNode.Kind == yaml.AliasNode && mappingNode.Alias != nil {
		mappingNode = mappingNode.Alias
	}
	if mappingNode.Kind != yaml.MappingNode {
		return nil, "", fmt.Errorf(errorNotMappingFormat, mappingNode.Tag)
	}
	parsed := NewStructure()
	ownerSummary := ""
	for pairIndex := 0; pairIndex+1 < len(mappingNode.Content); pairIndex += 2 {
		keyNode := mappingNode.Content[pairIndex]
		valueNode := mappingNode.Content[pairIndex+1]
		key := keyNode.Value
		if key == SummaryKey {
			if valueNode.Kind != yaml.ScalarNode || valueNode.Tag == yamlNullTag {
				return nil, "", fmt.Errorf(errorSummaryValueFormat, valueNode.Tag)
			}
			ownerSummary = valueNode.Value
			continue
		}
		isDirectoryKey := strings.HasSuffix(key, DirectorySuffix)
		entryName := strings.TrimSuffix(key, DirectorySuffix)
		switch {
		case valueNode.Kind == yaml.MappingNode || (valueNode.Kind == yaml.AliasNode && valueNode.Alias != nil && valueNode.Alias.Kind == yaml.MappingNode):
			if !isDirectoryKey {
				return nil, "", fmt.Errorf(errorFileMappingFormat, key)
			}
			children, childSummary, childError := decodeYAMLMapping(valueNode)
			if childError != nil {
				return nil, "", childError
			}
			if addError := parsed.Add(Entry{Name: entryName, IsDirectory: true, Summary: childSummary, Children: children}); addError != nil {
				return nil, "", addError
			}
		case valueNode.Kind == yaml.ScalarNode && valueNode.Tag == yamlNullTag:
			if isDirectoryKey {
				if _, addError := parsed.AddDirectory(entryName); addError != nil {
					return nil, "", addError
				}
				continue
			}
			if addError := parsed.AddFile(entryName, ""); addError != nil {
				return nil, "", addError
			}
		case valueNode.Kind == yaml.ScalarNode:
			if isDirectoryKey {
				return nil, "", fmt.Errorf(errorDirectoryValueFormat, key)
			}
			if addError := parsed.AddFile(entryName, valueNode.Value); addError != nil {
				return nil, "", addError
			}
		default:
			return nil, "", fmt.Errorf(errorFileValueFormat, key)
		}
	}
	return parsed, ownerSummary, nil
}
