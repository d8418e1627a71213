// Package seinatools bundles small server utilities: avatar lookup, guild
// stats and role/status summaries with CSV export.
package seinatools

import "seina-bot/internal/cog"

const CogName = "seinatools"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "0.1.4",
		Description: "My useful tools: avatars, server info and role status exports.",
		Authors:     []string{"inthedark.org"},
	})
}
