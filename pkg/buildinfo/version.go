// Package buildinfo holds the version stamped into the binary at link time:
//
//	go build -ldflags "-X github.com/matzehuels/eqsteps/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/eqsteps/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/eqsteps/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Set by -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build stamp as served by the preview server's health check.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func Get() Info { return Info{Version: Version, Commit: Commit, Date: Date} }

// CacheScope namespaces cache keys by release, so artifacts drawn by one
// build are never served by another. Development builds share "dev:".
func CacheScope() string { return Version + ":" }

// Template is the cobra --version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", i.Version, i.Commit, i.Date)
}
