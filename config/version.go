package config

var (
	Version    string = "dev"
	CommitHash string = ""
)

// IsProduction reports whether this build was stamped as a release.
func IsProduction() bool {
	return Version == "release" && CommitHash != ""
}
