// Package version holds build metadata injected with -ldflags.
package version

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent is sent with every API request.
func UserAgent() string {
	return "zencrawl/" + Version
}
