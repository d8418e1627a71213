// Package rainbowrole cycles a role's color around the hue wheel on a
// per-guild interval. Loops are named jobs, so enabling twice is a no-op and
// every loop survives a restart through the ready hook.
package rainbowrole

import "seina-bot/internal/cog"

const CogName = "rainbowrole"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "1.0.4",
		Description: "Loop a role's color through the rainbow.",
		Authors:     []string{"inthedark.org"},
	})
}
