// Package utils contains general helper functions used across the dirmap tool.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// Configuration discovery constants used across the project.
const (
	// ConfigFileName is the per-project configuration file looked up in the
	// working directory.
	ConfigFileName = ".dirmap.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home that
	// holds the global configuration file.
	GlobalConfigDirectoryName = ".config/dirmap"
)

const tildePrefix = "~"

// ExpandHome resolves a leading "~" to the invoking user's home directory.
// Both the walker and the materializer resolve paths through this single
// function so they can never diverge. Expansion never fails: when no home
// directory can be resolved the path is returned unchanged and the tilde is
// treated as a literal segment.
func ExpandHome(path string) string {
	if path != tildePrefix && !strings.HasPrefix(path, tildePrefix+string(os.PathSeparator)) && !strings.HasPrefix(path, tildePrefix+"/") {
		return path
	}
	homeDirectory, homeError := os.UserHomeDir()
	if homeError != nil || homeDirectory == "" {
		return path
	}
	if path == tildePrefix {
		return homeDirectory
	}
	return filepath.Join(homeDirectory, path[len(tildePrefix)+1:])
}

// RelativePathOrSelf calculates the relative path from root to fullPath in
// forward-slash form. Returns the cleaned fullPath if relative calculation
// fails and "." if both resolve to the same directory.
func RelativePathOrSelf(fullPath string, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)
	if cleanPath == cleanAbsoluteRoot {
		return "."
	}
	relativePath, relativeError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativeError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving
// order. The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}
