// Package firstmessage jumps to the oldest message of a channel.
package firstmessage

import "seina-bot/internal/cog"

const CogName = "firstmessage"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "1.0.1",
		Description: "Quickly jump to the first message of a channel.",
		Authors:     []string{"inthedark.org"},
	})
}
