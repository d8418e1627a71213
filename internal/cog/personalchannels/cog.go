// Package personalchannels binds a text channel to a member and lets the
// owner rename it, set its topic and share access with friends. Bindings are
// cleaned up when the channel is deleted.
package personalchannels

import "seina-bot/internal/cog"

const CogName = "personalchannels"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "1.1.0",
		Description: "Personal channels for members.",
		Authors:     []string{"inthedark.org"},
	})
}
