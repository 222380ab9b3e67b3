package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"dirmap/internal/utils"
)

// GitIgnoreFileName is the name of the Git ignore file read from the traversal root.
const GitIgnoreFileName = ".gitignore"

const (
	commentPrefix  = "#"
	negationPrefix = "!"
)

// baselineRuleData is the packaged baseline rule set covering common
// VCS and build artifacts, mirroring a bundled .mapping-ignore file.
//
//go:embed baseline.mapping-ignore
var baselineRuleData string

// BaselinePatterns returns the packaged baseline patterns.
func BaselinePatterns() []string {
	return parsePatternLines(baselineRuleData)
}

// LoadGitignorePatterns reads the .gitignore file of the given directory.
// A missing file yields no patterns. Negation lines are skipped since the
// rule model has no negation support.
func LoadGitignorePatterns(directoryPath string) ([]string, error) {
	gitIgnoreFilePath := filepath.Join(directoryPath, GitIgnoreFileName)
	fileContent, readError := os.ReadFile(gitIgnoreFilePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s from %s: %w", GitIgnoreFileName, directoryPath, readError)
	}
	return parsePatternLines(string(fileContent)), nil
}

// CombinePatterns merges baseline, gitignore, and caller-supplied patterns
// into one deduplicated list. All sources carry equal precedence.
func CombinePatterns(patternSources ...[]string) []string {
	var combinedPatterns []string
	for _, patternSource := range patternSources {
		for _, pattern := range patternSource {
			trimmedPattern := strings.TrimSpace(pattern)
			if trimmedPattern == "" {
				continue
			}
			combinedPatterns = append(combinedPatterns, trimmedPattern)
		}
	}
	return utils.DeduplicatePatterns(combinedPatterns)
}

func parsePatternLines(content string) []string {
	var patterns []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		if strings.HasPrefix(trimmedLine, negationPrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	return patterns
}
