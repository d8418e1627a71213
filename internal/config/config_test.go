package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears keys for the test, restoring the originals afterwards.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestNewParsesEnvironment(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")
	t.Setenv("STORAGE_PATH", "/tmp/store.json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AUTOSAVE_INTERVAL", "30s")
	t.Setenv("INIT_SLASH_COMMANDS", "false")
	t.Setenv("GUILD_BLACKLIST", "1,2,3")
	t.Setenv("HTTP_TIMEOUT", "5s")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "token-123", cfg.DiscordToken)
	assert.Equal(t, "/tmp/store.json", cfg.StoragePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.AutoSaveInterval)
	assert.False(t, cfg.InitSlashCommands)
	assert.Equal(t, []string{"1", "2", "3"}, cfg.GuildBlacklist)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")
	unsetenv(t,
		"STORAGE_PATH", "LOG_LEVEL", "LOG_FILE", "LOG_PRETTY",
		"AUTOSAVE_INTERVAL", "BACKUP_COUNT", "INIT_SLASH_COMMANDS",
		"GUILD_BLACKLIST", "HTTP_TIMEOUT", "ANIMALS_BASE_URL",
		"GAMES_BASE_URL", "BATTLE_PROMPTS_PATH", "BATTLE_BACKGROUNDS_DIR",
	)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "data/datastore.json", cfg.StoragePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, 10*time.Second, cfg.AutoSaveInterval)
	assert.Equal(t, 3, cfg.BackupCount)
	assert.True(t, cfg.InitSlashCommands)
	assert.Empty(t, cfg.GuildBlacklist)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://some-random-api.com", cfg.AnimalsBaseURL)
	assert.Equal(t, "https://api.truthordarebot.xyz/v1", cfg.GamesBaseURL)
	assert.Equal(t, "data/backgrounds", cfg.BattleBackgroundsDir)
}

func TestNewRequiresToken(t *testing.T) {
	unsetenv(t, "DISCORD_TOKEN")

	_, err := New()
	assert.Error(t, err)
}
