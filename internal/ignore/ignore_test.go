package ignore_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dirmap/internal/ignore"
	"dirmap/internal/types"
)

// TestCompileRuleAttributes verifies pattern classification.
func TestCompileRuleAttributes(testingInstance *testing.T) {
	testCases := []struct {
		testName              string
		pattern               string
		expectedAnchored      bool
		expectedDirectoryOnly bool
	}{
		{
			testName:              "bare name",
			pattern:               "*.log",
			expectedAnchored:      false,
			expectedDirectoryOnly: false,
		},
		{
			testName:              "directory pattern",
			pattern:               "node_modules/",
			expectedAnchored:      false,
			expectedDirectoryOnly: true,
		},
		{
			testName:              "nested pattern is anchored",
			pattern:               "src/generated",
			expectedAnchored:      true,
			expectedDirectoryOnly: false,
		},
		{
			testName:              "leading separator anchors",
			pattern:               "/coverage",
			expectedAnchored:      true,
			expectedDirectoryOnly: false,
		},
	}
	for index, testCase := range testCases {
		compiledRule, compileError := ignore.CompileRule(testCase.pattern)
		if compileError != nil {
			testingInstance.Errorf("case %d (%s): unexpected error: %v", index, testCase.testName, compileError)
			continue
		}
		if compiledRule.Anchored != testCase.expectedAnchored {
			testingInstance.Errorf("case %d (%s): expected anchored %t, got %t", index, testCase.testName, testCase.expectedAnchored, compiledRule.Anchored)
		}
		if compiledRule.DirectoryOnly != testCase.expectedDirectoryOnly {
			testingInstance.Errorf("case %d (%s): expected directoryOnly %t, got %t", index, testCase.testName, testCase.expectedDirectoryOnly, compiledRule.DirectoryOnly)
		}
	}
}

// TestCompileRuleSyntaxError verifies that malformed globs fail construction.
func TestCompileRuleSyntaxError(testingInstance *testing.T) {
	malformedPatterns := []string{"[", "src/[a-", ""}
	for index, pattern := range malformedPatterns {
		_, compileError := ignore.CompileRule(pattern)
		if compileError == nil {
			testingInstance.Errorf("case %d: expected error for pattern %q, got nil", index, pattern)
			continue
		}
		var patternError *types.PatternSyntaxError
		if !errors.As(compileError, &patternError) {
			testingInstance.Errorf("case %d: expected PatternSyntaxError, got %T", index, compileError)
		}
	}
}

// TestNewPathIgnorerFailsFast verifies that construction surfaces the first malformed pattern.
func TestNewPathIgnorerFailsFast(testingInstance *testing.T) {
	_, constructionError := ignore.NewPathIgnorer([]string{"*.log", "["})
	if constructionError == nil {
		testingInstance.Fatalf("expected construction error, got nil")
	}
}

// TestShouldIgnore verifies OR matching semantics across rule shapes.
func TestShouldIgnore(testingInstance *testing.T) {
	testCases := []struct {
		testName       string
		patterns       []string
		relativePath   string
		isDirectory    bool
		expectedIgnore bool
	}{
		{
			testName:       "wildcard matches file at any depth",
			patterns:       []string{"*.log"},
			relativePath:   "logs/app.log",
			isDirectory:    false,
			expectedIgnore: true,
		},
		{
			testName:       "directory rule matches directory",
			patterns:       []string{".git/"},
			relativePath:   ".git",
			isDirectory:    true,
			expectedIgnore: true,
		},
		{
			testName:       "directory rule skips file of same name",
			patterns:       []string{".git/"},
			relativePath:   ".git",
			isDirectory:    false,
			expectedIgnore: false,
		},
		{
			testName:       "anchored rule matches exact relative path",
			patterns:       []string{"src/generated"},
			relativePath:   "src/generated",
			isDirectory:    true,
			expectedIgnore: true,
		},
		{
			testName:       "anchored rule is not re-rooted",
			patterns:       []string{"src/generated"},
			relativePath:   "other/src/generated",
			isDirectory:    true,
			expectedIgnore: false,
		},
		{
			testName:       "anchored glob segments",
			patterns:       []string{"src/*.tmp"},
			relativePath:   "src/cache.tmp",
			isDirectory:    false,
			expectedIgnore: true,
		},
		{
			testName:       "backslash pattern is normalized",
			patterns:       []string{`src\generated`},
			relativePath:   "src/generated",
			isDirectory:    false,
			expectedIgnore: true,
		},
		{
			testName:       "no rule matches",
			patterns:       []string{"*.md", "docs/"},
			relativePath:   "src/main.ext",
			isDirectory:    false,
			expectedIgnore: false,
		},
	}
	for index, testCase := range testCases {
		ignorer, constructionError := ignore.NewPathIgnorer(testCase.patterns)
		if constructionError != nil {
			testingInstance.Fatalf("case %d (%s): constructing ignorer: %v", index, testCase.testName, constructionError)
		}
		actual := ignorer.ShouldIgnore(testCase.relativePath, testCase.isDirectory)
		if actual != testCase.expectedIgnore {
			testingInstance.Errorf("case %d (%s): expected %t, got %t", index, testCase.testName, testCase.expectedIgnore, actual)
		}
	}
}

// TestBaselinePatterns verifies that the packaged baseline excludes common artifacts.
func TestBaselinePatterns(testingInstance *testing.T) {
	baselinePatterns := ignore.BaselinePatterns()
	if len(baselinePatterns) == 0 {
		testingInstance.Fatalf("expected baseline patterns, got none")
	}
	ignorer, constructionError := ignore.NewPathIgnorer(baselinePatterns)
	if constructionError != nil {
		testingInstance.Fatalf("baseline patterns failed to compile: %v", constructionError)
	}
	if !ignorer.ShouldIgnore(".git", true) {
		testingInstance.Errorf("expected .git directory to be ignored by baseline")
	}
	if !ignorer.ShouldIgnore("module.pyc", false) {
		testingInstance.Errorf("expected *.pyc files to be ignored by baseline")
	}
	if ignorer.ShouldIgnore("src", true) {
		testingInstance.Errorf("expected src directory to survive baseline")
	}
}

// TestLoadGitignorePatterns verifies .gitignore loading including negation skipping.
func TestLoadGitignorePatterns(testingInstance *testing.T) {
	temporaryRoot := testingInstance.TempDir()
	gitignoreContent := "# build output\nbin/\n!bin/keep\n\n*.tmp\n"
	writeError := os.WriteFile(filepath.Join(temporaryRoot, ignore.GitIgnoreFileName), []byte(gitignoreContent), 0600)
	if writeError != nil {
		testingInstance.Fatalf("writing gitignore: %v", writeError)
	}
	patterns, loadError := ignore.LoadGitignorePatterns(temporaryRoot)
	if loadError != nil {
		testingInstance.Fatalf("loading gitignore: %v", loadError)
	}
	expected := []string{"bin/", "*.tmp"}
	if len(patterns) != len(expected) {
		testingInstance.Fatalf("expected %d patterns, got %d (%v)", len(expected), len(patterns), patterns)
	}
	for position, pattern := range expected {
		if patterns[position] != pattern {
			testingInstance.Errorf("expected %s at position %d, got %s", pattern, position, patterns[position])
		}
	}
}

// TestLoadGitignorePatternsMissingFile verifies that a missing file yields no patterns.
func TestLoadGitignorePatternsMissingFile(testingInstance *testing.T) {
	patterns, loadError := ignore.LoadGitignorePatterns(testingInstance.TempDir())
	if loadError != nil {
		testingInstance.Fatalf("unexpected error: %v", loadError)
	}
	if len(patterns) != 0 {
		testingInstance.Errorf("expected no patterns, got %v", patterns)
	}
}

// TestCombinePatterns verifies merging and deduplication across sources.
func TestCombinePatterns(testingInstance *testing.T) {
	combined := ignore.CombinePatterns([]string{"a/", "b"}, []string{" b ", "", "c"})
	expected := []string{"a/", "b", "c"}
	if len(combined) != len(expected) {
		testingInstance.Fatalf("expected %v, got %v", expected, combined)
	}
	for position, pattern := range expected {
		if combined[position] != pattern {
			testingInstance.Errorf("expected %s at position %d, got %s", pattern, position, combined[position])
		}
	}
}
