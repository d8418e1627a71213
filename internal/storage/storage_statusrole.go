package storage

import (
	"seina-bot/datastore"
	"seina-bot/internal/domain"
)

func (s *Storage) StatusRoles(guildID string) (domain.StatusRoleConfig, error) {
	var cfg domain.StatusRoleConfig
	_, err := s.ds.Get(guildKey(guildID, "statusrole"), &cfg)
	return cfg, err
}

// SetStatusRole adds or replaces the named rule. New stores start enabled.
func (s *Storage) SetStatusRole(guildID string, rule domain.StatusRoleRule) error {
	return datastore.Update(s.ds, guildKey(guildID, "statusrole"), func(cur domain.StatusRoleConfig, existed bool) (domain.StatusRoleConfig, error) {
		if !existed {
			cur.Enabled = true
		}
		for i, r := range cur.Rules {
			if r.Name == rule.Name {
				cur.Rules[i] = rule
				return cur, nil
			}
		}
		cur.Rules = append(cur.Rules, rule)
		return cur, nil
	})
}

// RemoveStatusRole deletes the named rule and reports whether it existed.
func (s *Storage) RemoveStatusRole(guildID, name string) (bool, error) {
	removed := false
	err := datastore.Update(s.ds, guildKey(guildID, "statusrole"), func(cur domain.StatusRoleConfig, _ bool) (domain.StatusRoleConfig, error) {
		updated := make([]domain.StatusRoleRule, 0, len(cur.Rules))
		for _, r := range cur.Rules {
			if r.Name == name {
				removed = true
				continue
			}
			updated = append(updated, r)
		}
		cur.Rules = updated
		return cur, nil
	})
	return removed, err
}

func (s *Storage) SetStatusRoleEnabled(guildID string, enabled bool) error {
	return datastore.Update(s.ds, guildKey(guildID, "statusrole"), func(cur domain.StatusRoleConfig, _ bool) (domain.StatusRoleConfig, error) {
		cur.Enabled = enabled
		return cur, nil
	})
}

// StatusRoleGuilds lists the guilds with at least one status role record,
// for the periodic sweep.
func (s *Storage) StatusRoleGuilds() []string {
	return s.guildsWithSection("statusrole")
}
