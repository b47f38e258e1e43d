// Package version holds build metadata, set at link time:
//
//	go build -ldflags "-X github.com/MrSnakeDoc/extlink/internal/version.Version=v0.3.0 \
//	  -X github.com/MrSnakeDoc/extlink/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	Version   = "dev"                           // ex: v0.1.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version()
)

// String is the one-line summary printed by "extlink version".
func String() string {
	return fmt.Sprintf("extlink %s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
