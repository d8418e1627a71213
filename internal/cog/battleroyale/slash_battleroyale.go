package battleroyale

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"seina-bot/internal/bot"
	"seina-bot/internal/command"
	"seina-bot/internal/domain"
	"seina-bot/internal/middleware"
	"seina-bot/internal/storage"
	"seina-bot/pkg/jobmgr"
	"seina-bot/pkg/util"

	"github.com/bwmarrin/discordgo"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog/log"
)

const (
	minDelay     = 10
	maxDelay     = 20
	defaultDelay = 10

	minAutoPlayers     = 10
	maxAutoPlayers     = 100
	defaultAutoPlayers = 30

	lobbyTitle = "Roman Colosseum Games"
)

var (
	delayMin   = float64(minDelay)
	delayMax   = float64(maxDelay)
	playersMin = float64(minAutoPlayers)
	playersMax = float64(maxAutoPlayers)
)

// lobby collects players for one pending game. The set answers "already
// joined" atomically, the slice keeps join order for the roster.
type lobby struct {
	joined mapset.Set[string]

	mu      sync.Mutex
	players []Player
	closed  bool
}

func newLobby() *lobby {
	return &lobby{joined: mapset.NewSet[string]()}
}

func (l *lobby) join(p Player) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return "This game has already started."
	}
	if len(l.players) >= maxPlayers {
		return fmt.Sprintf("The maximum number of %d players has been reached.", maxPlayers)
	}
	if !l.joined.Add(p.ID) {
		return "You have already joined this game!"
	}
	l.players = append(l.players, p)
	return "You have joined this game!"
}

func (l *lobby) close() []Player {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return l.players
}

var (
	lobbyMu sync.Mutex
	lobbies = map[string]*lobby{}
)

func addLobby(token string, l *lobby) {
	lobbyMu.Lock()
	defer lobbyMu.Unlock()
	lobbies[token] = l
}

func getLobby(token string) *lobby {
	lobbyMu.Lock()
	defer lobbyMu.Unlock()
	return lobbies[token]
}

func dropLobby(token string) {
	lobbyMu.Lock()
	defer lobbyMu.Unlock()
	delete(lobbies, token)
}

func jobName(channelID string) string { return "battleroyale:" + channelID }

type BattleRoyaleCommand struct{}

func (c *BattleRoyaleCommand) Name() string        { return "battleroyale" }
func (c *BattleRoyaleCommand) Description() string { return "Play battle royale games with your friends" }
func (c *BattleRoyaleCommand) Cog() string         { return CogName }
func (c *BattleRoyaleCommand) Category() string    { return "🎲 Games" }
func (c *BattleRoyaleCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *BattleRoyaleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	delayOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "delay",
		Description: fmt.Sprintf("Seconds between battle posts (default %d)", defaultDelay),
		MinValue:    &delayMin,
		MaxValue:    delayMax,
	}
	skipOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "skip",
		Description: "Skip straight to the results",
	}
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "start",
				Description: "Open a join lobby and fight it out",
				Options:     []*discordgo.ApplicationCommandOption{delayOpt, skipOpt},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "auto",
				Description: "Battle with random members from this server",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "players",
						Description: fmt.Sprintf("How many players to draft (default %d)", defaultAutoPlayers),
						MinValue:    &playersMin,
						MaxValue:    playersMax,
					},
					delayOpt,
					skipOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "profile",
				Description: "Show a player's battle royale profile",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "Whose profile to show (defaults to you)",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "leaderboard",
				Description: "Show the top 10 players",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "sort",
						Description: "Ranking order (default wins)",
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "wins", Value: "wins"},
							{Name: "games", Value: "games"},
							{Name: "kills", Value: "kills"},
						},
					},
				},
			},
		},
	}
}

func (c *BattleRoyaleCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	options := context.Event.ApplicationCommandData().Options
	if len(options) == 0 {
		return nil
	}
	sub := options[0]

	switch sub.Name {
	case "start":
		return c.runStart(context, sub.Options)
	case "auto":
		return c.runAuto(context, sub.Options)
	case "profile":
		return c.runProfile(context, sub.Options)
	case "leaderboard":
		return c.runLeaderboard(context, sub.Options)
	}
	return nil
}

func lobbyEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       lobbyTitle,
		Color:       bot.EmbedColor,
		Description: description,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: swordsURL},
	}
}

func joinComponents(token, emoji string, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    emoji + " Join Game",
					Style:    discordgo.PrimaryButton,
					CustomID: "battleroyale:join:" + token,
					Disabled: disabled,
				},
			},
		},
	}
}

// checkCooldown enforces the per-channel cooldown and charges it when clear.
// The cooldown is charged up front and lifted again if the lobby fails, the
// way command buckets behave.
func checkCooldown(store *storage.Storage, guildID, channelID string, cooldownSec int) (string, bool) {
	now := time.Now()
	if until, err := store.BattleCooldownUntil(guildID, channelID); err == nil && until.After(now) {
		return fmt.Sprintf("The arena is still being cleaned. Try again %s.", util.DiscordTimestamp(until, 'R')), false
	}
	if err := store.SetBattleCooldown(guildID, channelID, now.Add(time.Duration(cooldownSec)*time.Second)); err != nil {
		log.Warn().Err(err).Str("guild", guildID).Str("channel", channelID).Msg("battleroyale: cooldown not recorded")
	}
	return "", true
}

func (c *BattleRoyaleCommand) runStart(ctx *command.SlashInteractionContext, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	session := ctx.Session
	event := ctx.Event
	store := ctx.Storage
	guildID, channelID := event.GuildID, event.ChannelID

	delay, skip := defaultDelay, false
	for _, opt := range opts {
		switch opt.Name {
		case "delay":
			delay = int(opt.IntValue())
		case "skip":
			skip = opt.BoolValue()
		}
	}

	if jobmgr.DefaultManager.Running(jobName(channelID)) {
		return bot.RespondEphemeral(session, event, "A battle royale is already running in this channel.")
	}

	cfg, err := store.BattleConfig(guildID)
	if err != nil {
		return err
	}
	cfg = effectiveConfig(cfg)

	if msg, ok := checkCooldown(store, guildID, channelID, cfg.Cooldown); !ok {
		return bot.RespondEphemeral(session, event, msg)
	}

	endTime := time.Now().Add(time.Duration(cfg.WaitSec) * time.Second)
	token := event.ID
	openDesc := fmt.Sprintf(
		"- Starting %s.\n- Click the `Join Game` button to join the Roman Colosseum Games that are about to take place.",
		util.DiscordTimestamp(endTime, 'R'))

	if err := bot.RespondEmbedWithComponents(session, event, lobbyEmbed(openDesc), joinComponents(token, cfg.Emoji, false)); err != nil {
		return err
	}
	addLobby(token, newLobby())

	err = jobmgr.DefaultManager.Start(jobName(channelID), func(jobCtx context.Context) error {
		defer dropLobby(token)

		select {
		case <-jobCtx.Done():
			return jobCtx.Err()
		case <-time.After(time.Until(endTime)):
		}

		players := getLobby(token).close()

		if len(players) < minPlayers {
			closedDesc := fmt.Sprintf("Not enough players to start. (need at least %d, %d found).", minPlayers, len(players))
			if err := bot.EditResponseComplex(session, event, lobbyEmbed(closedDesc), []discordgo.MessageComponent{}); err != nil {
				log.Warn().Err(err).Str("channel", channelID).Msg("battleroyale: lobby close edit failed")
			}
			if err := store.ClearBattleCooldown(guildID, channelID); err != nil {
				log.Warn().Err(err).Str("channel", channelID).Msg("battleroyale: cooldown not cleared")
			}
			return nil
		}

		if err := bot.EditResponseComplex(session, event, lobbyEmbed(openDesc), joinComponents(token, cfg.Emoji, true)); err != nil {
			log.Warn().Err(err).Str("channel", channelID).Msg("battleroyale: lobby close edit failed")
		}
		return runGame(jobCtx, session, store, guildID, channelID, players, delay, skip, cfg.Prize)
	})
	if err != nil {
		dropLobby(token)
		return bot.EditResponseComplex(session, event,
			lobbyEmbed("A battle royale is already running in this channel."), []discordgo.MessageComponent{})
	}
	return nil
}

func (c *BattleRoyaleCommand) runAuto(ctx *command.SlashInteractionContext, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	session := ctx.Session
	event := ctx.Event
	store := ctx.Storage
	guildID, channelID := event.GuildID, event.ChannelID

	count, delay, skip := defaultAutoPlayers, defaultDelay, false
	for _, opt := range opts {
		switch opt.Name {
		case "players":
			count = int(opt.IntValue())
		case "delay":
			delay = int(opt.IntValue())
		case "skip":
			skip = opt.BoolValue()
		}
	}

	if jobmgr.DefaultManager.Running(jobName(channelID)) {
		return bot.RespondEphemeral(session, event, "A battle royale is already running in this channel.")
	}

	cfg, err := store.BattleConfig(guildID)
	if err != nil {
		return err
	}
	cfg = effectiveConfig(cfg)

	if msg, ok := checkCooldown(store, guildID, channelID, cfg.Cooldown); !ok {
		return bot.RespondEphemeral(session, event, msg)
	}

	author := playerFromMember(event.Member)
	players := append(sampleMembers(session, guildID, author.ID, count-1), author)
	if len(players) < minPlayers {
		if err := store.ClearBattleCooldown(guildID, channelID); err != nil {
			log.Warn().Err(err).Str("channel", channelID).Msg("battleroyale: cooldown not cleared")
		}
		return bot.RespondEphemeral(session, event, "Not enough members around for an automated battle.")
	}

	if err := bot.RespondEmbed(session, event, lobbyEmbed("Automated Roman Colosseum Games session starting...")); err != nil {
		return err
	}

	err = jobmgr.DefaultManager.Start(jobName(channelID), func(jobCtx context.Context) error {
		return runGame(jobCtx, session, store, guildID, channelID, players, delay, skip, cfg.Prize)
	})
	if err != nil {
		return bot.EditResponseComplex(session, event,
			lobbyEmbed("A battle royale is already running in this channel."), []discordgo.MessageComponent{})
	}
	return nil
}

// sampleMembers drafts up to n random non-bot members, the author excluded
// since they always fight.
func sampleMembers(s *discordgo.Session, guildID, authorID string, n int) []Player {
	var members []*discordgo.Member
	if guild, err := s.State.Guild(guildID); err == nil && len(guild.Members) > 0 {
		members = guild.Members
	} else if fetched, err := s.GuildMembers(guildID, "", 1000); err == nil {
		members = fetched
	}

	pool := make([]Player, 0, len(members))
	for _, m := range members {
		if m.User == nil || m.User.Bot || m.User.ID == authorID {
			continue
		}
		pool = append(pool, playerFromMember(m))
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

func playerFromMember(m *discordgo.Member) Player {
	if m == nil || m.User == nil {
		return Player{}
	}
	name := m.Nick
	if name == "" {
		name = m.User.GlobalName
	}
	if name == "" {
		name = m.User.Username
	}
	return Player{ID: m.User.ID, Name: name, AvatarURL: m.AvatarURL("512")}
}

// Component handles the lobby join button.
func (c *BattleRoyaleCommand) Component(ctx *command.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event

	parts := strings.Split(event.MessageComponentData().CustomID, ":")
	if len(parts) != 3 || parts[1] != "join" {
		return nil
	}
	lb := getLobby(parts[2])
	if lb == nil {
		return bot.RespondEphemeral(session, event, "This game has already started.")
	}
	if event.Member == nil || event.Member.User == nil {
		return nil
	}
	return bot.RespondEphemeral(session, event, lb.join(playerFromMember(event.Member)))
}

func (c *BattleRoyaleCommand) runProfile(ctx *command.SlashInteractionContext, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	session := ctx.Session
	event := ctx.Event
	guildID := event.GuildID

	user := event.Member.User
	for _, opt := range opts {
		if opt.Name == "user" {
			user = opt.UserValue(session)
		}
	}

	stats, err := ctx.Storage.BattleStats(guildID, user.ID)
	if err != nil {
		return err
	}
	balance, err := ctx.Storage.Balance(guildID, user.ID)
	if err != nil {
		return err
	}

	name := user.GlobalName
	if name == "" {
		name = user.Username
	}
	card := fmt.Sprintf("```prolog\nGames   : %d\nWins    : %d\nKills   : %d\nDeaths  : %d\nBalance : %d\n```",
		stats.Games, stats.Wins, stats.Kills, stats.Deaths, balance)
	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Title:       name + "'s Profile",
		Description: card,
		Color:       bot.EmbedColor,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("256")},
	})
}

func (c *BattleRoyaleCommand) runLeaderboard(ctx *command.SlashInteractionContext, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	session := ctx.Session
	event := ctx.Event
	guildID := event.GuildID

	sortBy := "wins"
	for _, opt := range opts {
		if opt.Name == "sort" {
			sortBy = opt.StringValue()
		}
	}

	all, err := ctx.Storage.AllBattleStats(guildID)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return bot.Respond(session, event, "No one has played yet.")
	}

	type entry struct {
		userID string
		stats  domain.BattleStats
	}
	entries := make([]entry, 0, len(all))
	for userID, stats := range all {
		entries = append(entries, entry{userID: userID, stats: stats})
	}
	key := func(st domain.BattleStats) int {
		switch sortBy {
		case "games":
			return st.Games
		case "kills":
			return st.Kills
		}
		return st.Wins
	}
	sort.Slice(entries, func(i, j int) bool {
		if key(entries[i].stats) != key(entries[j].stats) {
			return key(entries[i].stats) > key(entries[j].stats)
		}
		return entries[i].userID < entries[j].userID
	})

	var table strings.Builder
	fmt.Fprintf(&table, "%-3s %-18s %5s %6s %6s %7s\n", "#", "User", "Wins", "Games", "Kills", "Deaths")
	rank := 0
	for _, e := range entries {
		if rank >= 10 {
			break
		}
		name := memberName(session, guildID, e.userID)
		if name == "" {
			continue
		}
		rank++
		fmt.Fprintf(&table, "%-3d %-18s %5d %6d %6d %7d\n",
			rank, util.Truncate(name, 18), e.stats.Wins, e.stats.Games, e.stats.Kills, e.stats.Deaths)
	}

	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Title:       "BattleRoyale Leaderboard",
		Description: "```\n" + table.String() + "```",
		Color:       bot.EmbedColor,
	})
}

// memberName resolves a display name from state, then the API. Empty means
// the member is gone and the row gets skipped.
func memberName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.State.Member(guildID, userID)
	if err != nil {
		member, err = s.GuildMember(guildID, userID)
	}
	if err != nil || member == nil || member.User == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

func init() {
	command.RegisterCommand(
		&BattleRoyaleCommand{},
		middleware.WithCogAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
	bot.AddMaintenanceTask(bot.MaintenanceTask{
		Name:     "battleroyale-cooldown-prune",
		Interval: 10 * time.Minute,
		Run: func(s *discordgo.Session, store *storage.Storage) {
			pruned, err := store.PruneBattleCooldowns(time.Now())
			if err != nil {
				log.Warn().Err(err).Msg("battleroyale: cooldown prune failed")
				return
			}
			if pruned > 0 {
				log.Debug().Int("pruned", pruned).Msg("battleroyale: expired cooldowns pruned")
			}
		},
	})
}
