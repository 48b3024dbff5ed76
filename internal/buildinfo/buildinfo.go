// Package buildinfo holds build-time metadata injected via -ldflags.
package buildinfo

// Version is the semantic version or tag for this build.
// Inject via: -X github.com/chungli-bot/house-linebot-go/internal/buildinfo.Version=...
var Version = "dev"

// Commit is the git commit SHA for this build.
// Inject via: -X github.com/chungli-bot/house-linebot-go/internal/buildinfo.Commit=...
var Commit = ""

// Release combines version and commit for error tracking.
func Release() string {
	if Commit == "" {
		return Version
	}
	return Version + "+" + Commit
}
