// Package template builds, loads, and materializes structure templates.
//
// A template packages a canonical structure with metadata describing how it
// was produced. Templates are exchanged as JSON or YAML documents and can be
// replayed onto disk by the materializer.
package template

import (
	"fmt"
	"os/user"
	"time"

	"dirmap/internal/format"
	"dirmap/internal/styles"
	"dirmap/internal/types"
)

// errorNilTemplateStructure reports template creation without a structure.
const errorNilTemplateStructure = "template requires a structure"

// Create packages a canonical structure into a new template. The structure is
// deep-copied so the template never aliases the caller's value. Style and
// format names are validated against the supported sets; metadata fields the
// caller cannot supply are filled with defaults.
func Create(structure *types.Structure, styleName string, formatName string) (*types.Template, error) {
	if structure == nil {
		return nil, fmt.Errorf(errorNilTemplateStructure)
	}
	if _, styleError := styles.ForName(styleName); styleError != nil {
		return nil, styleError
	}
	if _, formatError := format.ForName(formatName); formatError != nil {
		return nil, formatError
	}
	timestamp := time.Now().Format(time.RFC3339)
	built := &types.Template{
		Metadata: types.TemplateMetadata{
			Style:        styleName,
			Format:       formatName,
			Version:      types.TemplateVersion,
			Tool:         types.ToolName,
			Author:       currentUserName(),
			CreationDate: timestamp,
			LastModified: timestamp,
		},
		Structure: structure.Clone(),
	}
	return built, nil
}

// currentUserName resolves the invoking user for the author metadata field.
// Resolution failures leave the field empty rather than failing the build.
func currentUserName() string {
	currentUser, lookupError := user.Current()
	if lookupError != nil {
		return ""
	}
	return currentUser.Username
}
