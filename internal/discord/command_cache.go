package discord

import (
	"encoding/json"
	"os"
	"path/filepath"

	"seina-bot/internal/config"
)

// guildCachePath returns the per-guild command hash cache file, kept next to
// the datastore so restarts skip unchanged registrations.
func guildCachePath(guildID string) string {
	base := "data"
	if cfg, err := config.Get(); err == nil {
		base = filepath.Dir(cfg.StoragePath)
	}
	return filepath.Join(base, "commands", guildID+".json")
}

func loadGuildCommandHashes(guildID string) map[string]string {
	data := make(map[string]string)
	path := guildCachePath(guildID)

	file, err := os.ReadFile(path)
	if err == nil {
		_ = json.Unmarshal(file, &data)
	}
	return data
}

func saveGuildCommandHashes(guildID string, hashes map[string]string) {
	path := guildCachePath(guildID)
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	data, _ := json.MarshalIndent(hashes, "", "  ")
	_ = os.WriteFile(path, data, 0644)
}
