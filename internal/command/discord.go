package command

import (
	"context"

	"seina-bot/internal/storage"
	"seina-bot/pkg/cmdkit"

	"github.com/bwmarrin/discordgo"
)

// Discord-specific contexts (what the runtime passes when executing).

type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Args    []string
	Storage *storage.Storage
}

type ComponentInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
}

type MessageApplicationCommandContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Target  *discordgo.Message
}

type UserApplicationCommandContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Target  *discordgo.User
}

type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Storage *storage.Storage
}

type PresenceContext struct {
	Session *discordgo.Session
	Event   *discordgo.PresenceUpdate
	Storage *storage.Storage
}

type ChannelDeleteContext struct {
	Session *discordgo.Session
	Event   *discordgo.ChannelDelete
	Storage *storage.Storage
}

// Providers — how a command surfaces in Discord (slash, context menu).

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type ContextMenuProvider interface {
	ContextDefinition() *discordgo.ApplicationCommand
}

type ComponentInteractionHandler interface {
	Component(*ComponentInteractionContext) error
}

// Watchers — commands that also observe gateway events outside interactions.

type MessageWatcher interface {
	WatchMessage(*MessageContext) error
}

type PresenceWatcher interface {
	WatchPresence(*PresenceContext) error
}

type ChannelDeleteWatcher interface {
	WatchChannelDelete(*ChannelDeleteContext) error
}

// DiscordMeta is exposed by the Discord adapter so middleware can read Cog/Category/Permissions
// without depending on the concrete Discord command type.
type DiscordMeta interface {
	Cog() string
	Category() string
	UserPermissions() []int64
}

// DiscordCommand is what individual Discord commands implement (Run takes interface{} for Discord contexts).
type DiscordCommand interface {
	Name() string
	Description() string
	Cog() string
	Category() string
	UserPermissions() []int64
	Run(ctx interface{}) error
}

// DiscordAdapter adapts a DiscordCommand to cmdkit.Command so it can live in the universal
// registry. It also implements SlashProvider, ContextMenuProvider, ComponentInteractionHandler,
// the watcher interfaces, and DiscordMeta by delegating to the inner command.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string             { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string      { return a.Cmd.Description() }
func (a *DiscordAdapter) Cog() string              { return a.Cmd.Cog() }
func (a *DiscordAdapter) Category() string         { return a.Cmd.Category() }
func (a *DiscordAdapter) UserPermissions() []int64 { return a.Cmd.UserPermissions() }

// Run dispatches on the payload type so component clicks and gateway watch
// events flow through the same middleware chain as interactions. Commands
// that don't implement the matching interface ignore the event.
func (a *DiscordAdapter) Run(ctx context.Context, inv *cmdkit.Invocation) error {
	switch v := inv.Data.(type) {
	case *ComponentInteractionContext:
		if h, ok := a.Cmd.(ComponentInteractionHandler); ok {
			return h.Component(v)
		}
		return nil
	case *MessageContext:
		if w, ok := a.Cmd.(MessageWatcher); ok {
			return w.WatchMessage(v)
		}
		return nil
	case *PresenceContext:
		if w, ok := a.Cmd.(PresenceWatcher); ok {
			return w.WatchPresence(v)
		}
		return nil
	case *ChannelDeleteContext:
		if w, ok := a.Cmd.(ChannelDeleteWatcher); ok {
			return w.WatchChannelDelete(v)
		}
		return nil
	}
	return a.Cmd.Run(inv.Data)
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func (a *DiscordAdapter) ContextDefinition() *discordgo.ApplicationCommand {
	if cp, ok := a.Cmd.(ContextMenuProvider); ok {
		return cp.ContextDefinition()
	}
	return nil
}

func (a *DiscordAdapter) Component(ctx *ComponentInteractionContext) error {
	if ch, ok := a.Cmd.(ComponentInteractionHandler); ok {
		return ch.Component(ctx)
	}
	return nil
}

func (a *DiscordAdapter) WatchMessage(ctx *MessageContext) error {
	if w, ok := a.Cmd.(MessageWatcher); ok {
		return w.WatchMessage(ctx)
	}
	return nil
}

func (a *DiscordAdapter) WatchPresence(ctx *PresenceContext) error {
	if w, ok := a.Cmd.(PresenceWatcher); ok {
		return w.WatchPresence(ctx)
	}
	return nil
}

func (a *DiscordAdapter) WatchChannelDelete(ctx *ChannelDeleteContext) error {
	if w, ok := a.Cmd.(ChannelDeleteWatcher); ok {
		return w.WatchChannelDelete(ctx)
	}
	return nil
}

// RegisterCommand registers a Discord command with the universal registry and applies middlewares.
func RegisterCommand(discordCmd DiscordCommand, mws ...cmdkit.Middleware) {
	c := cmdkit.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...)
	cmdkit.DefaultRegistry.Register(c)
}

// AllCommands returns every registered command, sorted by name.
func AllCommands() []cmdkit.Command {
	return cmdkit.DefaultRegistry.GetAll()
}

// GetCommand looks a command up by name.
func GetCommand(name string) (cmdkit.Command, bool) {
	c := cmdkit.DefaultRegistry.Get(name)
	return c, c != nil
}

// Meta unwraps middleware and returns the command's Discord metadata.
func Meta(c cmdkit.Command) (DiscordMeta, bool) {
	m, ok := cmdkit.Root(c).(DiscordMeta)
	return m, ok
}
