package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/doeshing/fishfix/internal/version"
)

// versionTemplate renders --version output.
func versionTemplate() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fishfix version %s\n", version.Version)
	if version.Commit != "" {
		fmt.Fprintf(&b, "Commit: %s\n", version.Commit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(&b, "Built: %s\n", version.BuildDate)
	}
	fmt.Fprintf(&b, "Go version: %s\n", runtime.Version())
	return b.String()
}
