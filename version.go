package i18nmark

// Name is the application name.
const Name = "i18nmark"

// Description is a short description of the application.
const Description = "Annotates admin dashboard pages for i18n and rebuilds their locale tables"

// Build information, set via ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/i18nmark.GitCommit=$(git rev-parse HEAD)"
var (
	// Version is the semantic version of the application.
	Version = "0.1.0"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// FullVersion returns the version with the short commit hash, if known.
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

// UserAgent returns the User-Agent sent on suggestion API requests.
func UserAgent() string {
	return Name + "/" + Version
}
