package bot

import (
	"time"

	"seina-bot/internal/domain"
	"seina-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// LogCommand records a command execution to storage, resolving channel and
// guild names from state with an API fallback.
func LogCommand(s *discordgo.Session, store *storage.Storage, guildID, channelID, userID, username, commandName string) error {
	channel, err := s.State.Channel(channelID)
	if err != nil {
		channel, err = s.Channel(channelID)
		if err != nil {
			log.Warn().Err(err).Str("channel", channelID).Msg("failed to fetch channel")
		}
	}
	channelName := ""
	if channel != nil {
		channelName = channel.Name
	}

	guild, err := s.State.Guild(guildID)
	if err != nil {
		guild, err = s.Guild(guildID)
		if err != nil {
			log.Warn().Err(err).Str("guild", guildID).Msg("failed to fetch guild")
		}
	}
	guildName := ""
	if guild != nil {
		guildName = guild.Name
	}

	log.Debug().
		Str("guild", guildName).
		Str("channel", channelName).
		Str("user", username).
		Str("command", commandName).
		Msg("command executed")

	return store.AppendCommandHistory(guildID, domain.CommandHistory{
		ChannelID:   channelID,
		ChannelName: channelName,
		GuildName:   guildName,
		UserID:      userID,
		Username:    username,
		Command:     commandName,
		Datetime:    time.Now().UTC(),
	})
}
