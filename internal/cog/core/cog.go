// Package core holds the host-side commands every install gets: help, about,
// ping and per-guild cog management. Core appears in the catalog like any
// other cog but cannot be disabled.
package core

import "seina-bot/internal/cog"

const CogName = "core"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "1.2.0",
		Description: "Help, bot info and per-guild cog management.",
		Authors:     []string{"inthedark.org"},
	})
}
