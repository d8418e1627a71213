// Package config loads bot configuration from environment variables, with
// .env support for local development.
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every tunable of the bot process.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	StoragePath  string `env:"STORAGE_PATH" envDefault:"data/datastore.json"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile   string `env:"LOG_FILE"` // empty disables file output
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	AutoSaveInterval time.Duration `env:"AUTOSAVE_INTERVAL" envDefault:"10s"`
	BackupCount      int           `env:"BACKUP_COUNT" envDefault:"3"`

	// InitSlashCommands controls per-guild command sync on startup. Turning
	// it off speeds up local restarts.
	InitSlashCommands bool `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	// GuildBlacklist lists guild IDs the bot leaves on sight.
	GuildBlacklist []string `env:"GUILD_BLACKLIST" envSeparator:","`

	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	AnimalsBaseURL string        `env:"ANIMALS_BASE_URL" envDefault:"https://some-random-api.com"`
	GamesBaseURL   string        `env:"GAMES_BASE_URL" envDefault:"https://api.truthordarebot.xyz/v1"`

	// BattlePromptsPath points at an optional JSON5 file overriding the
	// built-in battle narration prompts.
	BattlePromptsPath string `env:"BATTLE_PROMPTS_PATH"`
	// BattleBackgroundsDir holds battle scene backgrounds; when empty or the
	// directory has no images, a scene is generated instead.
	BattleBackgroundsDir string `env:"BATTLE_BACKGROUNDS_DIR" envDefault:"data/backgrounds"`
}

// New loads .env when present, then parses the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using system environment")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

var (
	once    sync.Once
	cached  *Config
	onceErr error
)

// Get returns the process-wide config, loading it on first use. Cogs resolve
// their settings through this so init ordering never matters.
func Get() (*Config, error) {
	once.Do(func() {
		cached, onceErr = New()
	})
	return cached, onceErr
}
