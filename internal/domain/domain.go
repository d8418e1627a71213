// Package domain defines the record types persisted by the storage layer.
package domain

import (
	"time"
)

type CommandHistory struct {
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	GuildName   string    `json:"guild_name"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Command     string    `json:"command"`
	Datetime    time.Time `json:"datetime"`
}

// AntiLinksConfig lists the channels where links are removed and the roles
// exempt from removal.
type AntiLinksConfig struct {
	Channels     []string `json:"channels"`
	AllowedRoles []string `json:"allowed_roles"`
}

// StatusRoleRule grants a role while a member's custom status contains the
// pattern. Name identifies the rule in config commands.
type StatusRoleRule struct {
	Name    string `json:"name"`
	RoleID  string `json:"role_id"`
	Pattern string `json:"pattern"`
}

type StatusRoleConfig struct {
	Enabled bool             `json:"enabled"`
	Rules   []StatusRoleRule `json:"rules"`
}

// PersonalChannel ties a member to the text channel they own.
type PersonalChannel struct {
	ChannelID string    `json:"channel_id"`
	Friends   []string  `json:"friends"` // user IDs with send access
	Assigned  time.Time `json:"assigned"`
}

type PersonalChannelsConfig struct {
	// Channels is keyed by the owning user ID.
	Channels map[string]PersonalChannel `json:"channels"`
}

// RainbowRoleConfig describes the color loop for one guild.
type RainbowRoleConfig struct {
	RoleID   string `json:"role_id"`
	Interval int    `json:"interval_seconds"`
	Enabled  bool   `json:"enabled"`
}

// BattleConfig holds per-guild battle tunables. Zero values fall back to the
// defaults in the battleroyale cog.
type BattleConfig struct {
	Prize    int    `json:"prize"`
	WaitSec  int    `json:"wait_seconds"`
	Cooldown int    `json:"cooldown_seconds"`
	Emoji    string `json:"emoji"`
}

// BattleStats accumulates one player's lifetime results.
type BattleStats struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Kills  int `json:"kills"`
	Deaths int `json:"deaths"`
}

// BattleStatsRecord holds every player's stats in a guild, keyed by user ID.
type BattleStatsRecord struct {
	Players map[string]BattleStats `json:"players"`
}

// BattleCooldowns maps channel ID to the time the next battle may start.
type BattleCooldowns struct {
	Channels map[string]time.Time `json:"channels"`
}

// Balances holds the credit ledger for a guild, keyed by user ID.
type Balances struct {
	Users map[string]int `json:"users"`
}

// GamesConfig pins the content rating used by the conversation games cog in
// one guild.
type GamesConfig struct {
	Rating string `json:"rating"` // "pg", "pg13", "r"
}

// UnbanRun records one mass unban execution for the audit trail.
type UnbanRun struct {
	ModeratorID   string    `json:"moderator_id"`
	ModeratorName string    `json:"moderator_name"`
	ReasonFilter  string    `json:"reason_filter"`
	Unbanned      int       `json:"unbanned"`
	Failed        int       `json:"failed"`
	Datetime      time.Time `json:"datetime"`
}

// CogsConfig lists the cogs disabled in one guild.
type CogsConfig struct {
	Disabled []string `json:"disabled"`
}

// HistoryRecord caps the per-guild command history.
type HistoryRecord struct {
	Entries []CommandHistory `json:"entries"`
}
