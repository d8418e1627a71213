// Package conversationgames serves icebreaker questions from the Truth or
// Dare Bot API: would-you-rather, never-have-i-ever, truth, dare and
// paranoia, each with a re-roll button.
package conversationgames

import "seina-bot/internal/cog"

const CogName = "conversationgames"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "2.1.1",
		Description: "Conversation games for your server.",
		Authors:     []string{"inthedark.org"},
	})
}
