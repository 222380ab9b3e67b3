package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"dirmap/internal/types"
	"dirmap/internal/utils"
)

const (
	directoryCreationMode = 0o755
	fileCreationMode      = 0o644

	// errorTargetRootFormat reports a materialization root that could not be prepared.
	errorTargetRootFormat = "preparing target root %q: %w"
	// errorEscapesRootFormat reports an entry whose resolved path leaves the target root.
	errorEscapesRootFormat = "entry %q escapes the target root"

	createdDirectoryMessage = "created directory"
	createdFileMessage      = "created file"
	skippedEntryMessage     = "skipped existing entry"
	entryFailedMessage      = "entry materialization failed"
)

// Materializer writes a template's structure onto disk.
type Materializer struct {
	Logger *zap.Logger
}

// Build materializes the template's structure under targetRoot. The root
// itself is created if missing and is never counted in the report. Entry
// failures are collected per entry and never abort the run; existing paths
// are left untouched and reported as skipped. Files carrying a summary
// annotation are written with the summary as placeholder content.
func (materializer *Materializer) Build(sourceTemplate *types.Template, targetRoot string) (*types.MaterializationReport, error) {
	resolvedRoot := utils.ExpandHome(targetRoot)
	absoluteRoot, absoluteError := filepath.Abs(resolvedRoot)
	if absoluteError != nil {
		return nil, fmt.Errorf(errorTargetRootFormat, targetRoot, absoluteError)
	}
	if creationError := os.MkdirAll(absoluteRoot, directoryCreationMode); creationError != nil {
		return nil, fmt.Errorf(errorTargetRootFormat, targetRoot, creationError)
	}
	report := &types.MaterializationReport{}
	materializer.buildStructure(sourceTemplate.Structure, absoluteRoot, "", report)
	return report, nil
}

// buildStructure materializes one mapping level. relativePath is the
// slash-separated path of the owning directory, empty at the root.
func (materializer *Materializer) buildStructure(structure *types.Structure, absoluteRoot string, relativePath string, report *types.MaterializationReport) {
	if structure == nil {
		return
	}
	for _, entry := range structure.Entries() {
		entryRelativePath := entry.Name
		if relativePath != "" {
			entryRelativePath = relativePath + "/" + entry.Name
		}
		absoluteEntryPath, joinError := joinUnderRoot(absoluteRoot, entryRelativePath)
		if joinError != nil {
			materializer.recordFailure(report, entryRelativePath, joinError)
			continue
		}
		if entry.IsDirectory {
			materializer.buildDirectory(entry, absoluteEntryPath, entryRelativePath, absoluteRoot, report)
			continue
		}
		materializer.buildFile(entry, absoluteEntryPath, entryRelativePath, report)
	}
}

func (materializer *Materializer) buildDirectory(entry types.Entry, absolutePath string, relativePath string, absoluteRoot string, report *types.MaterializationReport) {
	existing, statError := os.Stat(absolutePath)
	switch {
	case statError == nil && existing.IsDir():
		materializer.recordSkip(report, relativePath)
	case statError == nil:
		materializer.recordFailure(report, relativePath, fmt.Errorf("existing file blocks directory"))
		return
	default:
		if creationError := os.MkdirAll(absolutePath, directoryCreationMode); creationError != nil {
			materializer.recordFailure(report, relativePath, creationError)
			return
		}
		materializer.recordCreation(report, relativePath, createdDirectoryMessage)
	}
	materializer.buildStructure(entry.Children, absoluteRoot, relativePath, report)
}

func (materializer *Materializer) buildFile(entry types.Entry, absolutePath string, relativePath string, report *types.MaterializationReport) {
	if _, statError := os.Stat(absolutePath); statError == nil {
		materializer.recordSkip(report, relativePath)
		return
	}
	// Templates may name a file whose parent directory never appears as its
	// own entry; the parent chain is created transparently and not counted.
	if creationError := os.MkdirAll(filepath.Dir(absolutePath), directoryCreationMode); creationError != nil {
		materializer.recordFailure(report, relativePath, creationError)
		return
	}
	if writeError := os.WriteFile(absolutePath, []byte(entry.Summary), fileCreationMode); writeError != nil {
		materializer.recordFailure(report, relativePath, writeError)
		return
	}
	materializer.recordCreation(report, relativePath, createdFileMessage)
}

func (materializer *Materializer) recordCreation(report *types.MaterializationReport, relativePath string, message string) {
	report.Created = append(report.Created, relativePath)
	if materializer.Logger != nil {
		materializer.Logger.Debug(message, zap.String("path", relativePath))
	}
}

func (materializer *Materializer) recordSkip(report *types.MaterializationReport, relativePath string) {
	report.Skipped = append(report.Skipped, relativePath)
	if materializer.Logger != nil {
		materializer.Logger.Debug(skippedEntryMessage, zap.String("path", relativePath))
	}
}

func (materializer *Materializer) recordFailure(report *types.MaterializationReport, relativePath string, failure error) {
	report.Errors = append(report.Errors, &types.MaterializationError{Path: relativePath, Err: failure})
	if materializer.Logger != nil {
		materializer.Logger.Warn(entryFailedMessage, zap.String("path", relativePath), zap.Error(failure))
	}
}

// joinUnderRoot joins a relative entry path onto the root, rejecting any path
// that resolves outside it. Entry names like ".." in a hand-authored template
// must never write above the target root.
func joinUnderRoot(absoluteRoot string, relativePath string) (string, error) {
	joined := filepath.Join(absoluteRoot, filepath.FromSlash(relativePath))
	if joined != absoluteRoot && !strings.HasPrefix(joined, absoluteRoot+string(os.PathSeparator)) {
		return "", fmt.Errorf(errorEscapesRootFormat, relativePath)
	}
	return joined, nil
}
