// Package chemistry answers periodic-table lookups and molar mass
// calculations. The element data and formula parser live in this package;
// nothing is fetched remotely.
package chemistry

import "seina-bot/internal/cog"

const CogName = "chemistry"

func init() {
	cog.Register(cog.Manifest{
		Name:        CogName,
		Version:     "1.1.0",
		Description: "Chemistry for your server: element lookups and molar mass.",
		Authors:     []string{"inthedark.org"},
	})
}
