package build

import "fmt"

// Set at link time with -ldflags "-X github.com/rohmanhakim/richtext-icons/internal/build.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns Version with the commit appended as semver build
// metadata ("1.0.0+abc123"). Without a linked commit it is just Version.
func FullVersion() string {
	if Commit == "" || Commit == "none" {
		return Version
	}
	return Version + "+" + Commit
}

// Banner is the line printed by the version command.
func Banner(program string) string {
	return fmt.Sprintf("%s %s (built %s)", program, FullVersion(), BuildTime)
}
