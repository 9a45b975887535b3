package version

// Version is overridden at build time with -ldflags "-X hycu-check/src/version.Version=...".
var Version = "0.1.0-dev"

// UserAgent is sent on every API request.
func UserAgent() string {
	return "hycu-check/" + Version
}
