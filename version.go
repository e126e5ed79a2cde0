package tlaudit

// Version information for tlaudit.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/tlaudit.GitCommit=$(git rev-parse HEAD)"
const (
	// Name is the application name.
	Name = "tlaudit"

	// Description is a short description of the application.
	Description = "Translation audit for Power BI report definitions"

	// Version is the semantic version of the application.
	Version = "0.1.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/tlaudit"

	// License is the software license.
	License = "MIT"
)

// BuildInfo contains build-time information.
var (
	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// FullVersion returns the version string with optional build info.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent identifies the tool to shared services such as the Redis cache.
func UserAgent() string {
	return Name + "/" + Version
}
