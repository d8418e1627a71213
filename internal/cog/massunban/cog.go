// Package massunban lifts every ban in a guild, optionally narrowed to bans
// whose stored reason matches a filter. Runs are confirmed with a button,
// executed through the bounded worker pool and recorded for the audit trail.
package massunban

import "seina-bot/internal/cog"

const CogName = "massunban"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "1.0.1",
		Description: "Mass unban users with an optional ban reason filter.",
		Authors:     []string{"inthedark.org"},
	})
}
