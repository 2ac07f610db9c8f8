// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "ytune"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent is sent with every outgoing API request.
	UserAgent = App + "/" + Version + " (+https://github.com/ytune-cli/ytune)"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
