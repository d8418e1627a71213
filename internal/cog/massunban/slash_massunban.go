package massunban

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/domain"
	"seina-bot/internal/middleware"
	"seina-bot/internal/storage"
	"seina-bot/pkg/jobmgr"
	"seina-bot/pkg/retrylimit"
	"seina-bot/pkg/util"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const (
	pendingTTL     = 2 * time.Minute
	unbanWorkers   = 4
	progressPeriod = 3 * time.Second
)

// unbanLimiter paces GuildBanDelete calls across workers.
var unbanLimiter = retrylimit.NewAdaptiveLimiter(4, 1, 10, 1, 0.5)

// pendingRun is a confirmation waiting for the requesting moderator's click.
type pendingRun struct {
	GuildID       string
	ModeratorID   string
	ModeratorName string
	Filter        string
	UserIDs       []string
	Created       time.Time
}

var (
	pendingMu sync.Mutex
	pending   = map[string]*pendingRun{}
)

func stashPending(id string, run *pendingRun) {
	pendingMu.Lock()
	defer pendingMu.Unlock()
	for k, p := range pending {
		if time.Since(p.Created) > pendingTTL {
			delete(pending, k)
		}
	}
	pending[id] = run
}

func takePending(id string) *pendingRun {
	pendingMu.Lock()
	defer pendingMu.Unlock()
	run := pending[id]
	delete(pending, id)
	if run != nil && time.Since(run.Created) > pendingTTL {
		return nil
	}
	return run
}

type MassUnbanCommand struct{}

func (c *MassUnbanCommand) Name() string        { return "massunban" }
func (c *MassUnbanCommand) Description() string { return "Unban everyone, or every ban matching a reason" }
func (c *MassUnbanCommand) Cog() string         { return CogName }
func (c *MassUnbanCommand) Category() string    { return "🛡️ Moderation" }
func (c *MassUnbanCommand) UserPermissions() []int64 {
	return []int64{
		discordgo.PermissionBanMembers,
	}
}

func (c *MassUnbanCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Only lift bans whose reason contains this text",
			},
		},
	}
}

func (c *MassUnbanCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event
	guildID := event.GuildID

	if jobmgr.DefaultManager.Running(jobName(guildID)) {
		return bot.RespondEphemeral(session, event, "A mass unban is already running in this server.")
	}

	filter := ""
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "reason" {
			filter = strings.TrimSpace(opt.StringValue())
		}
	}

	// The ban list can span many pages; acknowledge before collecting.
	if err := bot.RespondDeferred(session, event); err != nil {
		return err
	}

	bans, err := collectBans(session, guildID)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("failed to collect ban list")
		return bot.EditResponse(session, event, "Failed to fetch the ban list. Do I have Ban Members permission?")
	}

	ids := filterBans(bans, filter)
	if len(ids) == 0 {
		if filter == "" {
			return bot.EditResponse(session, event, "This server has no bans.")
		}
		return bot.EditResponse(session, event,
			fmt.Sprintf("No ban reasons contain `%s` (%d bans checked).", filter, len(bans)))
	}

	moderator := event.Member.User
	stashPending(event.ID, &pendingRun{
		GuildID:       guildID,
		ModeratorID:   moderator.ID,
		ModeratorName: moderator.Username,
		Filter:        filter,
		UserIDs:       ids,
		Created:       time.Now(),
	})

	scope := "every ban"
	if filter != "" {
		scope = fmt.Sprintf("bans whose reason contains `%s`", filter)
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Mass unban",
		Description: fmt.Sprintf("This will lift **%d** of %d bans (%s).", len(ids), len(bans), scope),
		Color:       bot.EmbedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Only %s can confirm. Expires in %d minutes.", moderator.Username, int(pendingTTL.Minutes())),
		},
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Unban them all",
					Style:    discordgo.DangerButton,
					CustomID: fmt.Sprintf("%s:confirm:%s", c.Name(), event.ID),
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("%s:cancel:%s", c.Name(), event.ID),
				},
			},
		},
	}
	return bot.EditResponseComplex(session, event, embed, components)
}

// Component handles the confirm and cancel buttons.
func (c *MassUnbanCommand) Component(ctx *command.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event

	parts := strings.Split(event.MessageComponentData().CustomID, ":")
	if len(parts) != 3 {
		return nil
	}
	action, token := parts[1], parts[2]

	clicker := ""
	if event.Member != nil && event.Member.User != nil {
		clicker = event.Member.User.ID
	}

	pendingMu.Lock()
	run := pending[token]
	pendingMu.Unlock()
	if run == nil {
		return bot.RespondEphemeral(session, event, "This confirmation has expired.")
	}
	if clicker != run.ModeratorID {
		return bot.RespondEphemeral(session, event, "Only the moderator who started this can decide.")
	}

	run = takePending(token)
	if run == nil {
		return bot.RespondEphemeral(session, event, "This confirmation has expired.")
	}

	if action == "cancel" {
		return bot.UpdateComponentMessage(session, event, &discordgo.MessageEmbed{
			Title:       "Mass unban",
			Description: "Cancelled. Nobody was unbanned.",
			Color:       bot.EmbedColor,
		}, []discordgo.MessageComponent{})
	}

	channelID := event.ChannelID
	messageID := ""
	if event.Message != nil {
		messageID = event.Message.ID
	}

	err := startRun(session, ctx.Storage, run, channelID, messageID)
	if err != nil {
		return bot.RespondEphemeral(session, event, "A mass unban is already running in this server.")
	}

	return bot.UpdateComponentMessage(session, event, &discordgo.MessageEmbed{
		Title:       "Mass unban",
		Description: fmt.Sprintf("Unbanning **%d** users...", len(run.UserIDs)),
		Color:       bot.EmbedColor,
	}, []discordgo.MessageComponent{})
}

func jobName(guildID string) string { return "massunban:" + guildID }

// startRun executes the unbans as a named job, one per guild at a time, with
// periodic progress edits into the confirmation message.
func startRun(s *discordgo.Session, store *storage.Storage, run *pendingRun, channelID, messageID string) error {
	total := len(run.UserIDs)
	start := time.Now()

	return jobmgr.DefaultManager.Start(jobName(run.GuildID), func(ctx context.Context) error {
		var done atomic.Int64

		progressCtx, stopProgress := context.WithCancel(ctx)
		defer stopProgress()
		if messageID != "" {
			go func() {
				ticker := time.NewTicker(progressPeriod)
				defer ticker.Stop()
				for {
					select {
					case <-progressCtx.Done():
						return
					case <-ticker.C:
						_, _ = s.ChannelMessageEditEmbed(channelID, messageID, &discordgo.MessageEmbed{
							Title:       "Mass unban",
							Description: fmt.Sprintf("Unbanning... **%d / %d**", done.Load(), total),
							Color:       bot.EmbedColor,
						})
					}
				}
			}()
		}

		errs := util.ParallelCollect(ctx, run.UserIDs, unbanWorkers, func(ctx context.Context, userID string) error {
			defer done.Add(1)
			err := retrylimit.WithRetryMax(ctx, func() error {
				return bot.WrapRESTError(s.GuildBanDelete(run.GuildID, userID))
			}, unbanLimiter, 5)
			if err != nil {
				log.Warn().Err(err).
					Str("guild", run.GuildID).
					Str("user", userID).
					Msg("unban failed")
			}
			return err
		})
		stopProgress()

		failed := len(errs)
		unbanned := total - failed
		elapsed := time.Since(start).Round(time.Second)

		if err := store.AppendUnbanRun(run.GuildID, domain.UnbanRun{
			ModeratorID:   run.ModeratorID,
			ModeratorName: run.ModeratorName,
			ReasonFilter:  run.Filter,
			Unbanned:      unbanned,
			Failed:        failed,
			Datetime:      time.Now().UTC(),
		}); err != nil {
			log.Error().Err(err).Str("guild", run.GuildID).Msg("failed to record unban run")
		}

		log.Info().
			Str("guild", run.GuildID).
			Str("moderator", run.ModeratorName).
			Int("unbanned", unbanned).
			Int("failed", failed).
			Dur("elapsed", elapsed).
			Msg("mass unban finished")

		if messageID != "" {
			result := fmt.Sprintf("Done. Unbanned **%d** of %d users in %s.", unbanned, total, elapsed)
			if failed > 0 {
				result += fmt.Sprintf("\n%d unbans failed; see the log for details.", failed)
			}
			_, _ = s.ChannelMessageEditEmbed(channelID, messageID, &discordgo.MessageEmbed{
				Title:       "Mass unban",
				Description: result,
				Color:       bot.EmbedColor,
				Footer:      &discordgo.MessageEmbedFooter{Text: "Requested by " + run.ModeratorName},
			})
		}
		return nil
	})
}

func init() {
	command.RegisterCommand(
		&MassUnbanCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
