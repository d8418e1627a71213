// Package docs renders README.md from the live cog and command registries so
// the catalog table never drifts from the code.
package docs

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"seina-bot/internal/cog"
	"seina-bot/internal/command"
	"seina-bot/internal/config"
	"seina-bot/pkg/cmdkit"
)

// TemplateData is what README.md.tmpl receives.
type TemplateData struct {
	CogTable        string
	CommandSections string
}

// Build collects template data from the registries. Callers import the cog
// packages they want listed before calling this.
func Build() TemplateData {
	return TemplateData{
		CogTable:        CogTable(),
		CommandSections: CommandSections(),
	}
}

// CogTable renders the catalog table, one row per installed cog.
func CogTable() string {
	var buf bytes.Buffer
	buf.WriteString("| Name | Status | Description | Authors |\n")
	buf.WriteString("|---|---|---|---|\n")
	for _, m := range cog.All() {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			m.Name, m.Version, m.Description, strings.Join(m.Authors, ", ")))
	}
	return buf.String()
}

// CommandSections renders the command list grouped by category, ordered by
// config.CategoryWeights.
func CommandSections() string {
	commands := command.AllCommands()

	category := func(c cmdkit.Command) string {
		if meta, ok := command.Meta(c); ok {
			return meta.Category()
		}
		return ""
	}

	sort.SliceStable(commands, func(i, j int) bool {
		wi := config.CategoryWeights[category(commands[i])]
		wj := config.CategoryWeights[category(commands[j])]
		if wi == wj {
			return commands[i].Name() < commands[j].Name()
		}
		return wi < wj
	})

	var buf bytes.Buffer
	currentCategory := ""
	for _, c := range commands {
		if cat := category(c); cat != currentCategory {
			if currentCategory != "" {
				buf.WriteString("\n")
			}
			currentCategory = cat
			buf.WriteString(fmt.Sprintf("### %s\n\n", currentCategory))
		}

		// Context menu commands keep their display name; slash commands get
		// the leading slash.
		display := c.Name()
		if !(strings.ContainsRune(display, ' ') || startsWithUpper(display)) {
			display = "/" + display
		}
		buf.WriteString(fmt.Sprintf("- **%s** — %s\n", display, c.Description()))
	}
	return buf.String()
}

// UpdateReadme renders tmplPath with the registry data and writes outPath.
func UpdateReadme(tmplPath, outPath string) error {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, Build()); err != nil {
		return err
	}
	return os.WriteFile(outPath, out.Bytes(), 0644)
}

func startsWithUpper(s string) bool {
	if s == "" {
		return false
	}
	r := rune(s[0])
	return r >= 'A' && r <= 'Z'
}
