// Package ignore evaluates traversal paths against glob-style ignore rules.
//
// Rules combine with pure OR semantics: a path is excluded as soon as any
// rule matches. Negation patterns are deliberately unsupported; this is a
// scope decision, not an oversight, and hand-written rule files relying on
// gitignore-style last-match-wins semantics will not behave identically.
package ignore

import (
	"path/filepath"
	"strings"

	"dirmap/internal/types"
)

const pathSegmentSeparator = "/"

// Rule is a single compiled ignore rule. Anchored rules match relative to the
// traversal root; unanchored rules match an entry name at any depth. Directory
// rules (trailing separator in the source pattern) match directories only.
type Rule struct {
	Pattern       string
	Anchored      bool
	DirectoryOnly bool
	segments      []string
}

// CompileRule parses a raw pattern into a Rule. Malformed glob syntax fails
// with a PatternSyntaxError instead of being silently dropped.
func CompileRule(pattern string) (Rule, error) {
	trimmedPattern := strings.TrimSpace(pattern)
	if trimmedPattern == "" {
		return Rule{}, &types.PatternSyntaxError{Pattern: pattern}
	}
	normalizedPattern := strings.ReplaceAll(trimmedPattern, "\\", pathSegmentSeparator)
	directoryOnly := strings.HasSuffix(normalizedPattern, pathSegmentSeparator)
	normalizedPattern = strings.TrimSuffix(normalizedPattern, pathSegmentSeparator)
	anchored := strings.HasPrefix(normalizedPattern, pathSegmentSeparator)
	normalizedPattern = strings.TrimPrefix(normalizedPattern, pathSegmentSeparator)
	if strings.Contains(normalizedPattern, pathSegmentSeparator) {
		anchored = true
	}
	if normalizedPattern == "" {
		return Rule{}, &types.PatternSyntaxError{Pattern: pattern}
	}
	segments := strings.Split(normalizedPattern, pathSegmentSeparator)
	for _, segment := range segments {
		if _, matchError := filepath.Match(segment, ""); matchError != nil {
			return Rule{}, &types.PatternSyntaxError{Pattern: pattern, Err: matchError}
		}
	}
	return Rule{
		Pattern:       trimmedPattern,
		Anchored:      anchored,
		DirectoryOnly: directoryOnly,
		segments:      segments,
	}, nil
}

// matches reports whether the rule applies to the given path segments.
func (rule Rule) matches(pathSegments []string, isDirectory bool) bool {
	if rule.DirectoryOnly && !isDirectory {
		return false
	}
	if rule.Anchored {
		return len(pathSegments) == len(rule.segments) && segmentsMatch(pathSegments, rule.segments)
	}
	lastSegment := pathSegments[len(pathSegments)-1]
	isMatched, matchError := filepath.Match(rule.segments[0], lastSegment)
	return matchError == nil && isMatched
}

// segmentsMatch reports whether each pattern segment matches the
// corresponding path segment using filepath.Match semantics.
func segmentsMatch(pathSegments []string, patternSegments []string) bool {
	for segmentIndex, patternSegment := range patternSegments {
		isMatched, matchError := filepath.Match(patternSegment, pathSegments[segmentIndex])
		if matchError != nil || !isMatched {
			return false
		}
	}
	return true
}

// PathIgnorer aggregates an ordered set of compiled rules into a single
// inclusion decision. The rule set is immutable after construction; baseline
// and caller-supplied rules carry equal precedence.
type PathIgnorer struct {
	rules []Rule
}

// NewPathIgnorer compiles the provided patterns. Construction fails on the
// first malformed pattern.
func NewPathIgnorer(patterns []string) (*PathIgnorer, error) {
	rules := make([]Rule, 0, len(patterns))
	for _, pattern := range patterns {
		compiledRule, compileError := CompileRule(pattern)
		if compileError != nil {
			return nil, compileError
		}
		rules = append(rules, compiledRule)
	}
	return &PathIgnorer{rules: rules}, nil
}

// Rules returns the compiled rule set.
func (ignorer *PathIgnorer) Rules() []Rule {
	return ignorer.rules
}

// ShouldIgnore reports whether the path, given relative to the traversal
// root, is excluded. Patterns are never re-rooted per subdirectory.
func (ignorer *PathIgnorer) ShouldIgnore(relativePath string, isDirectory bool) bool {
	normalizedPath := strings.ReplaceAll(relativePath, "\\", pathSegmentSeparator)
	pathSegments := strings.Split(normalizedPath, pathSegmentSeparator)
	if len(pathSegments) == 0 {
		return false
	}
	for _, rule := range ignorer.rules {
		if rule.matches(pathSegments, isDirectory) {
			return true
		}
	}
	return false
}
