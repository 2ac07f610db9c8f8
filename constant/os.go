package constant

// runtime.GOOS values the platform-specific code branches on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	FreeBSD = "freebsd"
	Android = "android"
)
