package version

import (
	"fmt"
	"strings"
)

// These variables are populated at build time using ldflags.
// Example: go build -ldflags "-X 'github.com/tkerr/ab3gy-dxentity/version.GitCommit=f80cf83' -X 'github.com/tkerr/ab3gy-dxentity/version.BuildVersion=1.0.0'" ...
var (
	// ProjectName is the name of the project.
	ProjectName = "ab3gy-dxentity"

	// ProjectGitHubURL is the GitHub repository URL.
	ProjectGitHubURL = "https://github.com/tkerr/ab3gy-dxentity"

	// BuildVersion represents the semantic version of the build.
	// This should be set via ldflags with a semver tag (e.g., v1.0.0).
	// If not set, it defaults to "unknown".
	BuildVersion = "unknown"

	// GitCommit represents the short Git commit hash.
	GitCommit = "unknown"
)

// ProjectVersion is the full project version string: "X.Y.Z+COMMIT" when both
// build vars were injected, "unknown" otherwise.
var ProjectVersion = "unknown"

// init constructs ProjectVersion AFTER all build-time vars are potentially
// set; a plain global var would be initialized before ldflags could inject
// values.
func init() {
	if BuildVersion != "unknown" && GitCommit != "unknown" {
		ProjectVersion = fmt.Sprintf("%s+%s", strings.TrimPrefix(BuildVersion, "v"), GitCommit[:7])
	}
}
