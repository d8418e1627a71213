package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"seina-bot/datastore"
	"seina-bot/internal/config"
	"seina-bot/internal/discord"
	"seina-bot/internal/logging"
	"seina-bot/internal/storage"
	"seina-bot/internal/version"

	"github.com/rs/zerolog/log"

	// The imported cog set is what the binary ships. Dropping a line here
	// uninstalls the cog.
	_ "seina-bot/internal/cog/animals"
	_ "seina-bot/internal/cog/antilinks"
	_ "seina-bot/internal/cog/battleroyale"
	_ "seina-bot/internal/cog/chemistry"
	_ "seina-bot/internal/cog/conversationgames"
	_ "seina-bot/internal/cog/core"
	_ "seina-bot/internal/cog/firstmessage"
	_ "seina-bot/internal/cog/massunban"
	_ "seina-bot/internal/cog/personalchannels"
	_ "seina-bot/internal/cog/rainbowrole"
	_ "seina-bot/internal/cog/seinatools"
	_ "seina-bot/internal/cog/statusrole"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		logging.Setup("info", "", false)
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFile, cfg.LogPretty)
	log.Info().Str("version", version.Version).Msg("starting " + version.AppName)

	store, err := storage.NewWithConfig(&datastore.Config{
		FilePath:         cfg.StoragePath,
		AutoSaveInterval: cfg.AutoSaveInterval,
		BackupCount:      cfg.BackupCount,
		Logger:           logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open datastore")
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- discord.StartBot(ctx, cfg, store)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("discord bot error")
		}
		cancel()
	}

	log.Info().Msg("discord bot exited")
}
