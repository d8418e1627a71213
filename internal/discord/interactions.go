package discord

import (
	"context"
	"fmt"
	"strings"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/pkg/cmdkit"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// runCommand pushes a typed event payload through a command's middleware chain.
func runCommand(cmd cmdkit.Command, data interface{}) error {
	return cmd.Run(context.Background(), &cmdkit.Invocation{Data: data})
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleApplicationCommand(s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	}
}

func (b *Bot) handleApplicationCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	cmd, ok := command.GetCommand(data.Name)
	if !ok {
		log.Warn().Str("command", data.Name).Msg("unknown command")
		return
	}

	var payload interface{}
	switch data.CommandType {
	case discordgo.MessageApplicationCommand:
		payload = &command.MessageApplicationCommandContext{
			Session: s,
			Event:   i,
			Storage: b.store,
			Target:  data.Resolved.Messages[data.TargetID],
		}
	case discordgo.UserApplicationCommand:
		payload = &command.UserApplicationCommandContext{
			Session: s,
			Event:   i,
			Storage: b.store,
			Target:  data.Resolved.Users[data.TargetID],
		}
	default:
		payload = &command.SlashInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.store,
		}
	}

	if err := runCommand(cmd, payload); err != nil {
		log.Error().Err(err).Str("command", data.Name).Msg("command failed")
		_ = bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Error running command: %v", err),
		})
	}
}

// handleComponent routes a component click to the command named by the first
// segment of its custom ID ("battleroyale:join:<token>" goes to battleroyale).
func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	name, _, _ := strings.Cut(customID, ":")

	cmd, ok := command.GetCommand(name)
	if !ok {
		log.Warn().Str("custom_id", customID).Msg("no command for component")
		return
	}

	payload := &command.ComponentInteractionContext{Session: s, Event: i, Storage: b.store}
	if err := runCommand(cmd, payload); err != nil {
		log.Error().Err(err).Str("command", name).Str("custom_id", customID).Msg("component handler failed")
		_ = bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Error handling interaction: %v", err),
		})
	}
}
