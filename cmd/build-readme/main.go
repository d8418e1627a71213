// Command build-readme regenerates README.md from the cog and command
// registries. Run it after adding or changing a command:
//
//	go run ./cmd/build-readme
package main

import (
	"fmt"
	"os"

	"seina-bot/internal/docs"

	_ "seina-bot/internal/cog/animals"
	_ "seina-bot/internal/cog/antilinks"
	_ "seina-bot/internal/cog/battleroyale"
	_ "seina-bot/internal/cog/chemistry"
	_ "seina-bot/internal/cog/conversationgames"
	_ "seina-bot/internal/cog/core"
	_ "seina-bot/internal/cog/firstmessage"
	_ "seina-bot/internal/cog/massunban"
	_ "seina-bot/internal/cog/personalchannels"
	_ "seina-bot/internal/cog/rainbowrole"
	_ "seina-bot/internal/cog/seinatools"
	_ "seina-bot/internal/cog/statusrole"
)

func main() {
	if err := docs.UpdateReadme("README.md.tmpl", "README.md"); err != nil {
		fmt.Fprintln(os.Stderr, "build-readme:", err)
		os.Exit(1)
	}
	fmt.Println("README.md updated")
}
