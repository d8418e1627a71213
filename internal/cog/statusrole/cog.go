// Package statusrole grants a role while a member's custom status matches a
// configured pattern. A presence watcher reacts to live updates and a
// periodic sweep reconciles members whose updates were missed.
package statusrole

import "seina-bot/internal/cog"

const CogName = "statusrole"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "1.2.0",
		Description: "Assign roles on custom status match.",
		Authors:     []string{"inthedark.org"},
	})
}
