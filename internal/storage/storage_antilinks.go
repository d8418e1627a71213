package storage

import (
	"seina-bot/datastore"
	"seina-bot/internal/domain"
)

func (s *Storage) AntiLinks(guildID string) (domain.AntiLinksConfig, error) {
	var cfg domain.AntiLinksConfig
	_, err := s.ds.Get(guildKey(guildID, "antilinks"), &cfg)
	return cfg, err
}

func (s *Storage) AddAntiLinksChannel(guildID, channelID string) error {
	return datastore.Update(s.ds, guildKey(guildID, "antilinks"), func(cur domain.AntiLinksConfig, _ bool) (domain.AntiLinksConfig, error) {
		cur.Channels = appendUnique(cur.Channels, channelID)
		return cur, nil
	})
}

func (s *Storage) RemoveAntiLinksChannel(guildID, channelID string) error {
	return datastore.Update(s.ds, guildKey(guildID, "antilinks"), func(cur domain.AntiLinksConfig, _ bool) (domain.AntiLinksConfig, error) {
		cur.Channels = removeString(cur.Channels, channelID)
		return cur, nil
	})
}

func (s *Storage) AddAntiLinksRole(guildID, roleID string) error {
	return datastore.Update(s.ds, guildKey(guildID, "antilinks"), func(cur domain.AntiLinksConfig, _ bool) (domain.AntiLinksConfig, error) {
		cur.AllowedRoles = appendUnique(cur.AllowedRoles, roleID)
		return cur, nil
	})
}

func (s *Storage) RemoveAntiLinksRole(guildID, roleID string) error {
	return datastore.Update(s.ds, guildKey(guildID, "antilinks"), func(cur domain.AntiLinksConfig, _ bool) (domain.AntiLinksConfig, error) {
		cur.AllowedRoles = removeString(cur.AllowedRoles, roleID)
		return cur, nil
	})
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func removeString(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
