package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion           = "unknown"
	developmentVersion       = "(devel)"
	gitMetadataDirectoryName = ".git"
)

// GetApplicationVersion resolves the version string reported by --version.
// Module build info wins when the binary was built from a tagged module;
// otherwise a git description of the working tree is attempted, and the
// placeholder is returned when neither source is available.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}
	repositoryRoot, repositoryError := locateRepositoryRoot(".")
	if repositoryError != nil {
		return unknownVersion
	}
	if described := describeRepositoryVersion(repositoryRoot); described != "" {
		return described
	}
	return unknownVersion
}

// describeRepositoryVersion asks git for a tag-based description of the
// repository, preferring an exact tag over a long description.
func describeRepositoryVersion(repositoryRoot string) string {
	describeArguments := [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	}
	for _, arguments := range describeArguments {
		// #nosec G204
		describeCommand := exec.Command("git", arguments...)
		describeCommand.Dir = repositoryRoot
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return ""
}

// locateRepositoryRoot walks upward from startDirectory until a directory
// containing a .git folder is found.
func locateRepositoryRoot(startDirectory string) (string, error) {
	currentDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return "", absoluteError
	}
	for {
		metadataInformation, statError := os.Stat(filepath.Join(currentDirectory, gitMetadataDirectoryName))
		if statError == nil && metadataInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return "", os.ErrNotExist
		}
		currentDirectory = parentDirectory
	}
}
