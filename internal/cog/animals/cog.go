// Package animals serves random animal pictures and facts from the Some
// Random API.
package animals

import "seina-bot/internal/cog"

const CogName = "animals"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "0.1.2",
		Description: "Random animal images and facts.",
		Authors:     []string{"inthedark.org"},
	})
}
