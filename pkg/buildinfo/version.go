// Package buildinfo carries version information stamped at build time:
//
//	go build -ldflags "-X github.com/matzehuels/viewstack/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/viewstack/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/viewstack/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information as one line for startup logs.
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, short(Commit), Date)
}

// Template returns the version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

func short(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}
