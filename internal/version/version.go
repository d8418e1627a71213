// Package version carries build metadata stamped at link time.
package version

import "runtime"

const (
	AppName        = "Seina"
	AppDescription = "A cog-style Discord bot: games, role automation, moderation tools and utilities, each cog installable on its own."
	Repository     = "https://github.com/seina-bot/seina-bot"
)

// Set via -ldflags:
//
//	-X seina-bot/internal/version.Version=v1.2.3
//	-X seina-bot/internal/version.BuildDate=2024-06-01T12:00:00Z
var (
	Version   = "dev"
	BuildDate = ""
)

// GoVersion reports the toolchain that built the binary.
func GoVersion() string {
	return runtime.Version()
}
