// Package buildmeta carries the release metadata stamped into the binary by the linker:
//
//	go build -ldflags="-X github.com/devantler-tech/helm-cleaner/internal/buildmeta.Version=v0.3.0 \
//	  -X github.com/devantler-tech/helm-cleaner/internal/buildmeta.Commit=$(git rev-parse HEAD) \
//	  -X github.com/devantler-tech/helm-cleaner/internal/buildmeta.Date=$(date -u +%Y-%m-%d)"
//
// Local builds keep the placeholders below.
//
//nolint:gochecknoglobals
package buildmeta

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the Git SHA the binary was built from.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
