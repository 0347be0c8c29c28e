package env

const AppName = "growtable"

// Set at build time with -ldflags "-X github.com/ostafen/growtable/internal/env.Version=..."
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
