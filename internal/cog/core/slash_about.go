package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"seina-bot/internal/bot"
	"seina-bot/internal/cog"
	"seina-bot/internal/command"
	"seina-bot/internal/middleware"
	"seina-bot/internal/version"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
	"github.com/dustin/go-humanize"
)

var startedAt = time.Now()

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Discover what this bot is made of" }
func (c *AboutCommand) Cog() string         { return CogName }
func (c *AboutCommand) Category() string    { return "🕯️ Information" }
func (c *AboutCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	embedMsg, file := buildAboutMessage()

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embedMsg},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}
	if file != nil {
		resp.Data.Files = []*discordgo.File{file}
	}
	return session.InteractionRespond(event.Interaction, resp)
}

func buildAboutMessage() (*discordgo.MessageEmbed, *discordgo.File) {
	buildDate := "unknown"
	if version.BuildDate != "" {
		if t, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
			buildDate = t.Format("2006-01-02")
		}
	}
	goVer := strings.TrimPrefix(version.GoVersion(), "go")

	cogs := cog.All()
	names := make([]string, 0, len(cogs))
	for _, m := range cogs {
		names = append(names, m.Name)
	}

	embedMsg := embed.NewEmbed().
		SetColor(bot.EmbedColor).
		SetDescription(fmt.Sprintf("ℹ️ **About %s**\n\n%s", version.AppName, version.AppDescription)).
		AddField("Repository", version.Repository).
		AddField("Release", fmt.Sprintf("%s (Go %s)", buildDate, goVer)).
		AddField("Uptime", fmt.Sprintf("up since %s", humanize.Time(startedAt))).
		AddField(fmt.Sprintf("Cogs (%d)", len(cogs)), "`"+strings.Join(names, "`, `")+"`")

	imagePath := "./assets/about-banner.webp"
	imageName := filepath.Base(imagePath)
	imageFile, err := os.Open(imagePath)
	if err != nil {
		return embedMsg.MessageEmbed, nil
	}
	embedMsg = embedMsg.SetImage("attachment://" + imageName)
	return embedMsg.MessageEmbed, &discordgo.File{Name: imageName, Reader: imageFile}
}

func init() {
	command.RegisterCommand(
		&AboutCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
