package storage

import (
	"seina-bot/datastore"
	"seina-bot/internal/domain"
)

func (s *Storage) DisableCog(guildID, cog string) error {
	return datastore.Update(s.ds, guildKey(guildID, "cogs"), func(cur domain.CogsConfig, _ bool) (domain.CogsConfig, error) {
		for _, c := range cur.Disabled {
			if c == cog {
				return cur, nil
			}
		}
		cur.Disabled = append(cur.Disabled, cog)
		return cur, nil
	})
}

func (s *Storage) EnableCog(guildID, cog string) error {
	return datastore.Update(s.ds, guildKey(guildID, "cogs"), func(cur domain.CogsConfig, _ bool) (domain.CogsConfig, error) {
		updated := make([]string, 0, len(cur.Disabled))
		for _, c := range cur.Disabled {
			if c != cog {
				updated = append(updated, c)
			}
		}
		cur.Disabled = updated
		return cur, nil
	})
}

func (s *Storage) IsCogDisabled(guildID, cog string) (bool, error) {
	var cfg domain.CogsConfig
	if _, err := s.ds.Get(guildKey(guildID, "cogs"), &cfg); err != nil {
		return false, err
	}
	for _, c := range cfg.Disabled {
		if c == cog {
			return true, nil
		}
	}
	return false, nil
}

func (s *Storage) DisabledCogs(guildID string) ([]string, error) {
	var cfg domain.CogsConfig
	if _, err := s.ds.Get(guildKey(guildID, "cogs"), &cfg); err != nil {
		return nil, err
	}
	return cfg.Disabled, nil
}
