// Package antilinks removes links posted in watched channels unless the
// author holds a whitelisted role. Configuration is per guild; enforcement
// runs as a message watcher.
package antilinks

import "seina-bot/internal/cog"

const CogName = "antilinks"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "1.0.3",
		Description: "Remove links in specified channels with role whitelisting.",
		Authors:     []string{"inthedark.org"},
	})
}
