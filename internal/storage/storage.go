// Package storage provides typed access to the bot's datastore: one record
// type per cog, keyed by guild or user.
//
// Key layout: "guild:<guildID>:<section>" where section names the owning cog
// ("antilinks", "statusrole", "battleroyale", ...).
package storage

import (
	"strings"

	"seina-bot/datastore"
)

const historyLimit = 20

type Storage struct {
	ds *datastore.Store
}

// New opens the datastore at filePath with default settings.
func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

// NewWithConfig opens the datastore with custom settings (autosave interval,
// backup count, logger).
func NewWithConfig(cfg *datastore.Config) (*Storage, error) {
	ds, err := datastore.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error { return s.ds.Close() }

// Save forces a flush to disk.
func (s *Storage) Save() error { return s.ds.Save() }

func (s *Storage) Stats() datastore.Stats { return s.ds.Stats() }

func guildKey(guildID, section string) string {
	return "guild:" + guildID + ":" + section
}

// guildsWithSection lists the guild IDs that have a record for section.
func (s *Storage) guildsWithSection(section string) []string {
	var out []string
	for _, k := range s.ds.Keys("guild:") {
		parts := strings.SplitN(k, ":", 3)
		if len(parts) == 3 && parts[2] == section {
			out = append(out, parts[1])
		}
	}
	return out
}
