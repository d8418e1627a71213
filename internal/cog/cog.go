// Package cog keeps the manifest of every installed cog. Feature packages
// register themselves from init(), so importing a cog package is all it takes
// to install it; the binary picks its cog set through blank imports.
package cog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Manifest describes one cog for /cogs, /help and the generated README.
type Manifest struct {
	Name        string
	Version     string
	Description string
	Authors     []string
}

var semverRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

var manifests = map[string]Manifest{}

// Register adds a cog manifest. Called from init(); panics on an invalid or
// duplicate manifest because that is a programming error, not a runtime one.
func Register(m Manifest) {
	if strings.TrimSpace(m.Name) == "" {
		panic("cog: manifest with empty name")
	}
	if !semverRe.MatchString(m.Version) {
		panic(fmt.Sprintf("cog %q: version %q is not MAJOR.MINOR.PATCH", m.Name, m.Version))
	}
	if _, dup := manifests[m.Name]; dup {
		panic(fmt.Sprintf("cog %q: registered twice", m.Name))
	}
	manifests[m.Name] = m
}

// All returns every registered manifest sorted by name.
func All() []Manifest {
	list := make([]Manifest, 0, len(manifests))
	for _, m := range manifests {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Get returns the manifest for a cog name.
func Get(name string) (Manifest, bool) {
	m, ok := manifests[name]
	return m, ok
}

// Names returns the sorted cog names.
func Names() []string {
	names := make([]string, 0, len(manifests))
	for n := range manifests {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
