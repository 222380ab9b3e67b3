// Package walker performs the ordered, filtered filesystem traversal that
// produces the entry sequence consumed by styles and formatters.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"dirmap/internal/ignore"
	"dirmap/internal/types"
	"dirmap/internal/utils"
)

const (
	// warningBrokenLinkMessage reports an unresolvable symbolic link. The
	// link is excluded from the structure rather than silently dropped.
	warningBrokenLinkMessage = "broken symbolic link excluded from structure"
	// warningSkipSubdirMessage reports a subdirectory that could not be read.
	warningSkipSubdirMessage = "skipping unreadable subdirectory"

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorNotDirectoryFormat is used when the root path is not a directory.
	errorNotDirectoryFormat = "%s is not a directory"
	// errorRecordDepthFormat is used when the record sequence skips depth levels.
	errorRecordDepthFormat = "record %q at depth %d skips levels (current depth %d)"
)

// Walker traverses a directory tree depth-first, filtering entries through a
// PathIgnorer and ordering children per the configured sort order. Traversal
// is synchronous and single-threaded; it runs to completion or fails.
type Walker struct {
	Ignorer       *ignore.PathIgnorer
	SortOrder     string
	CaseSensitive bool
	Logger        *zap.Logger
}

// Walk traverses the root and returns the ordered entry records. The first
// record is the root itself at depth zero. The root undergoes home-directory
// expansion before traversal; a root that does not exist fails with an
// UnresolvedRootError.
func (treeWalker *Walker) Walk(rootPath string) ([]types.EntryRecord, error) {
	expandedRootPath := utils.ExpandHome(rootPath)
	absoluteRootPath, absoluteError := filepath.Abs(expandedRootPath)
	if absoluteError != nil {
		return nil, &types.UnresolvedRootError{Path: rootPath, Err: absoluteError}
	}
	rootInfo, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		return nil, &types.UnresolvedRootError{Path: rootPath, Err: rootStatError}
	}
	if !rootInfo.IsDir() {
		return nil, &types.UnresolvedRootError{Path: rootPath, Err: fmt.Errorf(errorNotDirectoryFormat, absoluteRootPath)}
	}

	records := []types.EntryRecord{{
		Path:        filepath.ToSlash(filepath.Clean(expandedRootPath)),
		Depth:       0,
		Name:        filepath.Base(absoluteRootPath),
		IsDirectory: true,
	}}
	if walkError := treeWalker.walkDirectory(absoluteRootPath, absoluteRootPath, 1, &records); walkError != nil {
		return nil, fmt.Errorf("building structure for %s: %w", rootPath, walkError)
	}
	return records, nil
}

// walkDirectory recursively appends records for the directory's surviving children.
func (treeWalker *Walker) walkDirectory(currentDirectoryPath string, absoluteRootPath string, depth int, records *[]types.EntryRecord) error {
	directoryEntries, listError := treeWalker.listDirectory(currentDirectoryPath)
	if listError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, currentDirectoryPath, listError)
	}
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		relativeChildPath := utils.RelativePathOrSelf(childPath, absoluteRootPath)
		isDirectory, resolvable := treeWalker.resolveEntryKind(directoryEntry, childPath)
		if !resolvable {
			continue
		}
		if treeWalker.Ignorer != nil && treeWalker.Ignorer.ShouldIgnore(relativeChildPath, isDirectory) {
			continue
		}
		*records = append(*records, types.EntryRecord{
			Path:        relativeChildPath,
			Depth:       depth,
			Name:        directoryEntry.Name(),
			IsDirectory: isDirectory,
		})
		if isDirectory {
			if walkError := treeWalker.walkDirectory(childPath, absoluteRootPath, depth+1, records); walkError != nil {
				treeWalker.warn(warningSkipSubdirMessage, zap.String("path", childPath), zap.Error(walkError))
			}
		}
	}
	return nil
}

// resolveEntryKind resolves symbolic links to their target's kind. A link
// whose target cannot be resolved is reported and excluded.
func (treeWalker *Walker) resolveEntryKind(directoryEntry os.DirEntry, childPath string) (bool, bool) {
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return directoryEntry.IsDir(), true
	}
	targetInfo, statError := os.Stat(childPath)
	if statError != nil {
		treeWalker.warn(warningBrokenLinkMessage, zap.String("path", childPath), zap.Error(statError))
		return false, false
	}
	return targetInfo.IsDir(), true
}

// listDirectory lists direct children honoring the configured sort order.
// SortNone reads through an open handle so the filesystem's native listing
// order survives; os.ReadDir would sort by name.
func (treeWalker *Walker) listDirectory(directoryPath string) ([]os.DirEntry, error) {
	if treeWalker.SortOrder == types.SortNone || treeWalker.SortOrder == "" {
		directoryHandle, openError := os.Open(directoryPath)
		if openError != nil {
			return nil, openError
		}
		defer directoryHandle.Close()
		return directoryHandle.ReadDir(-1)
	}
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil, readError
	}
	descending := treeWalker.SortOrder == types.SortDescending
	sort.SliceStable(directoryEntries, func(firstIndex, secondIndex int) bool {
		firstName := directoryEntries[firstIndex].Name()
		secondName := directoryEntries[secondIndex].Name()
		if !treeWalker.CaseSensitive {
			firstName = strings.ToLower(firstName)
			secondName = strings.ToLower(secondName)
		}
		if descending {
			return firstName > secondName
		}
		return firstName < secondName
	})
	return directoryEntries, nil
}

func (treeWalker *Walker) warn(message string, fields ...zap.Field) {
	if treeWalker.Logger != nil {
		treeWalker.Logger.Warn(message, fields...)
	}
}

// BuildStructure folds an ordered record sequence into a canonical structure.
// The depth-zero root record is not part of its own mapping.
func BuildStructure(records []types.EntryRecord) (*types.Structure, error) {
	rootStructure := types.NewStructure()
	parentStack := []*types.Structure{rootStructure}
	for _, record := range records {
		if record.Depth == 0 {
			continue
		}
		if record.Depth > len(parentStack) {
			return nil, fmt.Errorf(errorRecordDepthFormat, record.Path, record.Depth, len(parentStack))
		}
		parentStack = parentStack[:record.Depth]
		parentStructure := parentStack[record.Depth-1]
		if record.IsDirectory {
			childStructure, addError := parentStructure.AddDirectory(record.Name)
			if addError != nil {
				return nil, addError
			}
			parentStack = append(parentStack, childStructure)
			continue
		}
		if addError := parentStructure.AddFile(record.Name, ""); addError != nil {
			return nil, addError
		}
	}
	return rootStructure, nil
}
