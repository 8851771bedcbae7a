package internal

import "fmt"

// Set at build time with -ldflags "-X github.com/zhengshuai-xiao/xdump/internal.version=..."
var (
	version  = "1.0.0-dev"
	revision = "unknown"
)

func Version() string {
	return fmt.Sprintf("%s+%s", version, revision)
}
