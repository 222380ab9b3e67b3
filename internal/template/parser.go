package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"dirmap/internal/types"
	"dirmap/internal/utils"
)

const (
	templateExtensionJSON = ".json"
	templateExtensionYAML = ".yaml"
	templateExtensionYML  = ".yml"

	// errorTemplateExtensionFormat reports a template file with an unrecognized extension.
	errorTemplateExtensionFormat = "template %q must be a %s, %s, or %s document"
	// errorTemplateVersionFormat reports an unsupported template document version.
	errorTemplateVersionFormat = "unsupported template version %q (expected %s)"
	// errorTemplateReadFormat reports a template file that could not be read.
	errorTemplateReadFormat = "reading template %q: %w"
	// errorTemplateParseFormat reports a template document that could not be decoded.
	errorTemplateParseFormat = "parsing template %q: %w"
)

// Load reads a template document from disk. The encoding is chosen by file
// extension: .json decodes as JSON, .yaml and .yml as YAML. The document
// version must match the version this tool writes.
func Load(templatePath string) (*types.Template, error) {
	resolvedPath := utils.ExpandHome(templatePath)
	content, readError := os.ReadFile(resolvedPath)
	if readError != nil {
		return nil, fmt.Errorf(errorTemplateReadFormat, templatePath, readError)
	}
	loaded := &types.Template{Structure: types.NewStructure()}
	switch strings.ToLower(filepath.Ext(resolvedPath)) {
	case templateExtensionJSON:
		if decodeError := json.Unmarshal(content, loaded); decodeError != nil {
			return nil, fmt.Errorf(errorTemplateParseFormat, templatePath, decodeError)
		}
	case templateExtensionYAML, templateExtensionYML:
		if decodeError := yaml.Unmarshal(content, loaded); decodeError != nil {
			return nil, fmt.Errorf(errorTemplateParseFormat, templatePath, decodeError)
		}
	default:
		return nil, fmt.Errorf(errorTemplateExtensionFormat, templatePath, templateExtensionJSON, templateExtensionYAML, templateExtensionYML)
	}
	if loaded.Metadata.Version != types.TemplateVersion {
		return nil, fmt.Errorf(errorTemplateVersionFormat, loaded.Metadata.Version, types.TemplateVersion)
	}
	if loaded.Structure == nil {
		loaded.Structure = types.NewStructure()
	}
	applyMetadataDefaults(&loaded.Metadata)
	return loaded, nil
}

// Encode serializes a template document. Only the canonical encodings carry
// templates; the styled formats cannot represent the metadata envelope.
func Encode(loadedTemplate *types.Template, formatName string) (string, error) {
	switch formatName {
	case types.FormatJSON:
		encoded, encodeError := json.MarshalIndent(loadedTemplate, "", "  ")
		if encodeError != nil {
			return "", encodeError
		}
		return string(encoded), nil
	case types.FormatYAML:
		encoded, encodeError := yaml.Marshal(loadedTemplate)
		if encodeError != nil {
			return "", encodeError
		}
		return string(encoded), nil
	default:
		return "", &types.UnsupportedRoundTripError{Format: formatName}
	}
}

// applyMetadataDefaults fills metadata fields hand-authored templates commonly omit.
func applyMetadataDefaults(metadata *types.TemplateMetadata) {
	if metadata.Tool == "" {
		metadata.Tool = types.ToolName
	}
	if metadata.Style == "" {
		metadata.Style = types.StyleTree
	}
	if metadata.Format == "" {
		metadata.Format = types.FormatJSON
	}
}
