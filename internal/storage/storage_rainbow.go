package storage

import (
	"seina-bot/internal/domain"
)

func (s *Storage) RainbowRole(guildID string) (domain.RainbowRoleConfig, bool, error) {
	var cfg domain.RainbowRoleConfig
	ok, err := s.ds.Get(guildKey(guildID, "rainbowrole"), &cfg)
	return cfg, ok, err
}

func (s *Storage) SetRainbowRole(guildID string, cfg domain.RainbowRoleConfig) error {
	return s.ds.Set(guildKey(guildID, "rainbowrole"), cfg)
}

func (s *Storage) ClearRainbowRole(guildID string) error {
	return s.ds.Delete(guildKey(guildID, "rainbowrole"))
}

// RainbowGuilds lists the guilds with a rainbow role configured, for
// resuming loops after a restart.
func (s *Storage) RainbowGuilds() []string {
	return s.guildsWithSection("rainbowrole")
}
