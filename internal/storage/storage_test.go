package storage

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seina-bot/datastore"
	"seina-bot/internal/domain"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewWithConfig(&datastore.Config{
		FilePath: filepath.Join(t.TempDir(), "datastore.json"),
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCogToggle(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.DisableCog("1", "battleroyale"))
	require.NoError(t, s.DisableCog("1", "battleroyale")) // idempotent

	disabled, err := s.IsCogDisabled("1", "battleroyale")
	require.NoError(t, err)
	assert.True(t, disabled)

	list, err := s.DisabledCogs("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"battleroyale"}, list)

	require.NoError(t, s.EnableCog("1", "battleroyale"))

	disabled, err = s.IsCogDisabled("1", "battleroyale")
	require.NoError(t, err)
	assert.False(t, disabled)

	list, err = s.DisabledCogs("1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCommandHistoryKeepsNewest(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < historyLimit+5; i++ {
		err := s.AppendCommandHistory("1", domain.CommandHistory{
			UserID:   "42",
			Command:  "cmd-" + strconv.Itoa(i),
			Datetime: time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	entries, err := s.CommandHistory("1")
	require.NoError(t, err)
	require.Len(t, entries, historyLimit)
	assert.Equal(t, "cmd-5", entries[0].Command)
	assert.Equal(t, "cmd-"+strconv.Itoa(historyLimit+4), entries[len(entries)-1].Command)

	entries, err = s.CommandHistory("unknown")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnbanRunsKeepsNewest(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < unbanRunLimit+2; i++ {
		err := s.AppendUnbanRun("1", domain.UnbanRun{
			ModeratorID: strconv.Itoa(i),
			Unbanned:    i,
			Datetime:    time.Date(2026, 2, 1, i, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	runs, err := s.UnbanRuns("1")
	require.NoError(t, err)
	require.Len(t, runs, unbanRunLimit)
	assert.Equal(t, "2", runs[0].ModeratorID)
	assert.Equal(t, unbanRunLimit+1, runs[len(runs)-1].Unbanned)
}

func TestRainbowRoleLifecycle(t *testing.T) {
	s := newTestStorage(t)

	_, ok, err := s.RainbowRole("1")
	require.NoError(t, err)
	assert.False(t, ok)

	in := domain.RainbowRoleConfig{RoleID: "777", Interval: 30, Enabled: true}
	require.NoError(t, s.SetRainbowRole("1", in))

	got, ok, err := s.RainbowRole("1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, got)
	assert.Equal(t, []string{"1"}, s.RainbowGuilds())

	require.NoError(t, s.ClearRainbowRole("1"))

	_, ok, err = s.RainbowRole("1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, s.RainbowGuilds())
}

func TestStatusRoleRules(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SetStatusRole("1", domain.StatusRoleRule{Name: "vanity", RoleID: "10", Pattern: ".gg/seina"}))

	cfg, err := s.StatusRoles("1")
	require.NoError(t, err)
	assert.True(t, cfg.Enabled, "first rule enables the store")
	require.Len(t, cfg.Rules, 1)

	require.NoError(t, s.SetStatusRole("1", domain.StatusRoleRule{Name: "clan", RoleID: "11", Pattern: "[SEI]"}))
	require.NoError(t, s.SetStatusRole("1", domain.StatusRoleRule{Name: "vanity", RoleID: "10", Pattern: ".gg/updated"}))

	cfg, err = s.StatusRoles("1")
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 2, "same name replaces, not appends")
	assert.Equal(t, ".gg/updated", cfg.Rules[0].Pattern)

	removed, err := s.RemoveStatusRole("1", "clan")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.RemoveStatusRole("1", "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, s.SetStatusRoleEnabled("1", false))
	cfg, err = s.StatusRoles("1")
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Len(t, cfg.Rules, 1, "disabling keeps the rules")

	assert.Equal(t, []string{"1"}, s.StatusRoleGuilds())
}

func TestBattleStatsMerge(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.RecordBattleResults("1", map[string]domain.BattleStats{
		"a": {Games: 1, Wins: 1, Kills: 3},
		"b": {Games: 1, Deaths: 1},
	}))
	require.NoError(t, s.RecordBattleResults("1", map[string]domain.BattleStats{
		"a": {Games: 1, Kills: 1, Deaths: 1},
	}))

	st, err := s.BattleStats("1", "a")
	require.NoError(t, err)
	assert.Equal(t, domain.BattleStats{Games: 2, Wins: 1, Kills: 4, Deaths: 1}, st)

	all, err := s.AllBattleStats("1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = s.AllBattleStats("unknown")
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestBattleCooldowns(t *testing.T) {
	s := newTestStorage(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	until, err := s.BattleCooldownUntil("1", "a")
	require.NoError(t, err)
	assert.True(t, until.IsZero())

	require.NoError(t, s.SetBattleCooldown("1", "a", now.Add(-time.Minute)))
	require.NoError(t, s.SetBattleCooldown("1", "b", now.Add(time.Hour)))
	require.NoError(t, s.SetBattleCooldown("2", "c", now.Add(-time.Hour)))

	until, err = s.BattleCooldownUntil("1", "b")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), until)

	pruned, err := s.PruneBattleCooldowns(now)
	require.NoError(t, err)
	assert.Equal(t, 2, pruned)

	until, err = s.BattleCooldownUntil("1", "a")
	require.NoError(t, err)
	assert.True(t, until.IsZero(), "expired cooldown pruned")

	until, err = s.BattleCooldownUntil("1", "b")
	require.NoError(t, err)
	assert.False(t, until.IsZero(), "active cooldown survives")

	require.NoError(t, s.ClearBattleCooldown("1", "b"))
	until, err = s.BattleCooldownUntil("1", "b")
	require.NoError(t, err)
	assert.True(t, until.IsZero())
}

func TestBattleConfigUpdate(t *testing.T) {
	s := newTestStorage(t)

	err := s.UpdateBattleConfig("1", func(cfg domain.BattleConfig) domain.BattleConfig {
		cfg.Prize = 500
		cfg.Emoji = "⚔️"
		return cfg
	})
	require.NoError(t, err)

	err = s.UpdateBattleConfig("1", func(cfg domain.BattleConfig) domain.BattleConfig {
		cfg.Cooldown = 600
		return cfg
	})
	require.NoError(t, err)

	cfg, err := s.BattleConfig("1")
	require.NoError(t, err)
	assert.Equal(t, domain.BattleConfig{Prize: 500, Cooldown: 600, Emoji: "⚔️"}, cfg)
}

func TestBalanceDeposit(t *testing.T) {
	s := newTestStorage(t)

	bal, err := s.Balance("1", "42")
	require.NoError(t, err)
	assert.Zero(t, bal)

	total, err := s.Deposit("1", "42", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, total)

	total, err = s.Deposit("1", "42", 25)
	require.NoError(t, err)
	assert.Equal(t, 75, total)

	bal, err = s.Balance("1", "42")
	require.NoError(t, err)
	assert.Equal(t, 75, bal)
}

func TestPersonalChannelLifecycle(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.PersonalChannelFor("1", "42")
	assert.ErrorIs(t, err, ErrNoPersonalChannel)

	require.NoError(t, s.AssignPersonalChannel("1", "42", "900"))

	pc, err := s.PersonalChannelFor("1", "42")
	require.NoError(t, err)
	assert.Equal(t, "900", pc.ChannelID)
	assert.False(t, pc.Assigned.IsZero())

	owner, ok, err := s.PersonalChannelOwner("1", "900")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", owner)

	_, ok, err = s.PersonalChannelOwner("1", "901")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.AddPersonalFriend("1", "42", "77"))
	require.NoError(t, s.AddPersonalFriend("1", "42", "77")) // idempotent
	require.NoError(t, s.AddPersonalFriend("1", "42", "88"))
	require.NoError(t, s.RemovePersonalFriend("1", "42", "77"))

	pc, err = s.PersonalChannelFor("1", "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"88"}, pc.Friends)

	assert.ErrorIs(t, s.AddPersonalFriend("1", "99", "77"), ErrNoPersonalChannel)

	require.NoError(t, s.UnassignPersonalChannel("1", "42"))
	_, err = s.PersonalChannelFor("1", "42")
	assert.ErrorIs(t, err, ErrNoPersonalChannel)
}

func TestAntiLinksConfig(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.AddAntiLinksChannel("1", "100"))
	require.NoError(t, s.AddAntiLinksChannel("1", "100")) // idempotent
	require.NoError(t, s.AddAntiLinksChannel("1", "200"))
	require.NoError(t, s.AddAntiLinksRole("1", "55"))

	cfg, err := s.AntiLinks("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "200"}, cfg.Channels)
	assert.Equal(t, []string{"55"}, cfg.AllowedRoles)

	require.NoError(t, s.RemoveAntiLinksChannel("1", "100"))
	require.NoError(t, s.RemoveAntiLinksRole("1", "55"))

	cfg, err = s.AntiLinks("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"200"}, cfg.Channels)
	assert.Empty(t, cfg.AllowedRoles)
}

func TestGamesRating(t *testing.T) {
	s := newTestStorage(t)

	rating, err := s.GamesRating("1")
	require.NoError(t, err)
	assert.Empty(t, rating)

	require.NoError(t, s.SetGamesRating("1", "pg13"))

	rating, err = s.GamesRating("1")
	require.NoError(t, err)
	assert.Equal(t, "pg13", rating)
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.json")

	s, err := NewWithConfig(&datastore.Config{FilePath: path, Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.NoError(t, s.SetRainbowRole("1", domain.RainbowRoleConfig{RoleID: "777", Enabled: true}))
	require.NoError(t, s.Close())

	s2, err := NewWithConfig(&datastore.Config{FilePath: path, Logger: zerolog.Nop()})
	require.NoError(t, err)
	defer s2.Close()

	cfg, ok, err := s2.RainbowRole("1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "777", cfg.RoleID)
	assert.Equal(t, 1, s2.Stats().Keys)
	assert.Equal(t, path, s2.Stats().FilePath)
}
