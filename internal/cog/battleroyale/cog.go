// Package battleroyale runs elimination games in a channel: members join a
// lobby through a button, random rounds kill players off with narrated
// prompts and composited battle images, and the winner takes the guild prize.
package battleroyale

import "seina-bot/internal/cog"

const CogName = "battleroyale"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "0.1.2",
		Description: "Play battle royale games in discord.",
		Authors:     []string{"inthedark.org", "MAX", "AAA3A", "sravan"},
	})
}
