package storage

import (
	"time"

	"seina-bot/datastore"
	"seina-bot/internal/domain"
)

func (s *Storage) BattleConfig(guildID string) (domain.BattleConfig, error) {
	var cfg domain.BattleConfig
	_, err := s.ds.Get(guildKey(guildID, "battleconfig"), &cfg)
	return cfg, err
}

// UpdateBattleConfig applies fn to the guild's battle config.
func (s *Storage) UpdateBattleConfig(guildID string, fn func(domain.BattleConfig) domain.BattleConfig) error {
	return datastore.Update(s.ds, guildKey(guildID, "battleconfig"), func(cur domain.BattleConfig, _ bool) (domain.BattleConfig, error) {
		return fn(cur), nil
	})
}

func (s *Storage) BattleStats(guildID, userID string) (domain.BattleStats, error) {
	var rec domain.BattleStatsRecord
	if _, err := s.ds.Get(guildKey(guildID, "battlestats"), &rec); err != nil {
		return domain.BattleStats{}, err
	}
	return rec.Players[userID], nil
}

// AllBattleStats returns every player's stats in the guild, keyed by user ID.
func (s *Storage) AllBattleStats(guildID string) (map[string]domain.BattleStats, error) {
	var rec domain.BattleStatsRecord
	if _, err := s.ds.Get(guildKey(guildID, "battlestats"), &rec); err != nil {
		return nil, err
	}
	if rec.Players == nil {
		return map[string]domain.BattleStats{}, nil
	}
	return rec.Players, nil
}

// RecordBattleResults merges per-player stat deltas into the guild record.
func (s *Storage) RecordBattleResults(guildID string, deltas map[string]domain.BattleStats) error {
	return datastore.Update(s.ds, guildKey(guildID, "battlestats"), func(cur domain.BattleStatsRecord, _ bool) (domain.BattleStatsRecord, error) {
		if cur.Players == nil {
			cur.Players = make(map[string]domain.BattleStats, len(deltas))
		}
		for userID, d := range deltas {
			st := cur.Players[userID]
			st.Games += d.Games
			st.Wins += d.Wins
			st.Kills += d.Kills
			st.Deaths += d.Deaths
			cur.Players[userID] = st
		}
		return cur, nil
	})
}

// BattleCooldownUntil returns when the channel may host its next battle.
// The zero time means no cooldown is active.
func (s *Storage) BattleCooldownUntil(guildID, channelID string) (time.Time, error) {
	var rec domain.BattleCooldowns
	if _, err := s.ds.Get(guildKey(guildID, "battlecooldowns"), &rec); err != nil {
		return time.Time{}, err
	}
	return rec.Channels[channelID], nil
}

func (s *Storage) SetBattleCooldown(guildID, channelID string, until time.Time) error {
	return datastore.Update(s.ds, guildKey(guildID, "battlecooldowns"), func(cur domain.BattleCooldowns, _ bool) (domain.BattleCooldowns, error) {
		if cur.Channels == nil {
			cur.Channels = make(map[string]time.Time, 1)
		}
		cur.Channels[channelID] = until
		return cur, nil
	})
}

func (s *Storage) ClearBattleCooldown(guildID, channelID string) error {
	return datastore.Update(s.ds, guildKey(guildID, "battlecooldowns"), func(cur domain.BattleCooldowns, _ bool) (domain.BattleCooldowns, error) {
		delete(cur.Channels, channelID)
		return cur, nil
	})
}

// PruneBattleCooldowns drops expired entries across all guilds and returns
// how many were removed. Run from the maintenance scheduler.
func (s *Storage) PruneBattleCooldowns(now time.Time) (int, error) {
	pruned := 0
	for _, guildID := range s.guildsWithSection("battlecooldowns") {
		err := datastore.Update(s.ds, guildKey(guildID, "battlecooldowns"), func(cur domain.BattleCooldowns, _ bool) (domain.BattleCooldowns, error) {
			for ch, until := range cur.Channels {
				if now.After(until) {
					delete(cur.Channels, ch)
					pruned++
				}
			}
			return cur, nil
		})
		if err != nil {
			return pruned, err
		}
	}
	return pruned, nil
}

func (s *Storage) Balance(guildID, userID string) (int, error) {
	var rec domain.Balances
	if _, err := s.ds.Get(guildKey(guildID, "balances"), &rec); err != nil {
		return 0, err
	}
	return rec.Users[userID], nil
}

// Deposit credits amount to the user and returns the new balance.
func (s *Storage) Deposit(guildID, userID string, amount int) (int, error) {
	total := 0
	err := datastore.Update(s.ds, guildKey(guildID, "balances"), func(cur domain.Balances, _ bool) (domain.Balances, error) {
		if cur.Users == nil {
			cur.Users = make(map[string]int, 1)
		}
		cur.Users[userID] += amount
		total = cur.Users[userID]
		return cur, nil
	})
	return total, err
}
