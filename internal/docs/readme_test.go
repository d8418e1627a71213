package docs

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"seina-bot/internal/cog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

var semverRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestEveryManifestIsComplete(t *testing.T) {
	manifests := cog.All()
	require.Len(t, manifests, 12)

	for _, m := range manifests {
		assert.NotEmpty(t, m.Name, "cog name")
		assert.Regexp(t, semverRe, m.Version, "cog %s version", m.Name)
		assert.NotEmpty(t, m.Description, "cog %s description", m.Name)
		assert.NotEmpty(t, m.Authors, "cog %s authors", m.Name)
	}
}

func TestCogTableListsEveryCog(t *testing.T) {
	table := CogTable()

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "| Name | Status | Description | Authors |", lines[0])

	for _, m := range cog.All() {
		assert.Contains(t, table, "| "+m.Name+" | "+m.Version+" | ")
	}
}

func TestCommandSectionsGroupAndOrder(t *testing.T) {
	sections := CommandSections()

	info := strings.Index(sections, "### 🕯️ Information")
	games := strings.Index(sections, "### 🎲 Games")
	settings := strings.Index(sections, "### ⚙️ Settings")
	require.NotEqual(t, -1, info)
	require.NotEqual(t, -1, games)
	require.NotEqual(t, -1, settings)
	assert.Less(t, info, games)
	assert.Less(t, games, settings)

	assert.Contains(t, sections, "- **/help** — Get a list of available commands")
	assert.Contains(t, sections, "- **/battleroyale** — ")

	// Alphabetical inside a category.
	about := strings.Index(sections, "- **/about**")
	ping := strings.Index(sections, "- **/ping**")
	assert.Less(t, about, ping)
}

func TestUpdateReadmeRendersTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "README.md.tmpl")
	out := filepath.Join(dir, "README.md")

	require.NoError(t, os.WriteFile(tmpl, []byte("# bot\n\n{{.CogTable}}\n{{.CommandSections}}"), 0644))
	require.NoError(t, UpdateReadme(tmpl, out))

	rendered, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(rendered), "| battleroyale | ")
	assert.Contains(t, string(rendered), "- **/cogs** — ")
}

func TestUpdateReadmeMissingTemplate(t *testing.T) {
	err := UpdateReadme(filepath.Join(t.TempDir(), "nope.tmpl"), filepath.Join(t.TempDir(), "README.md"))
	assert.Error(t, err)
}
