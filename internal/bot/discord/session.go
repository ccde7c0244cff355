// Package discord adapts the Discord gateway and REST API to the bot's
// connector contracts.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/midnight-community/gatekeeper/internal/bot/connector"
)

// interactionTimeout bounds handling of one inbound interaction. Discord
// treats interactions without a timely response as failed on its side; this
// only stops runaway handlers from piling up.
const interactionTimeout = 10 * time.Second

// DispatchFunc routes one inbound event to its step handler.
type DispatchFunc func(ctx context.Context, ev connector.Event) (connector.Prompt, error)

// Bot owns the Discord session for one guild and implements
// connector.Directory over it.
type Bot struct {
	session  *discordgo.Session
	guildID  string
	dispatch DispatchFunc
	logf     func(format string, args ...any)

	baseCtx context.Context
}

// New creates a closed Discord session for the guild. The dispatch function
// is invoked for every recognized interaction once the session is open.
func New(token string, guildID string, dispatch DispatchFunc) (*Bot, error) {
	token = strings.TrimSpace(token)
	guildID = strings.TrimSpace(guildID)
	if token == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if guildID == "" {
		return nil, fmt.Errorf("guild id is required")
	}
	if dispatch == nil {
		return nil, fmt.Errorf("dispatch function is required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		session:  session,
		guildID:  guildID,
		dispatch: dispatch,
		logf:     log.Printf,
		baseCtx:  context.Background(),
	}
	session.AddHandler(bot.onInteractionCreate)
	return bot, nil
}

// Open connects to the gateway. ctx outlives the call and bounds all
// interaction handling started by this session.
func (b *Bot) Open(ctx context.Context) error {
	if b == nil || b.session == nil {
		return fmt.Errorf("session is not configured")
	}
	if ctx != nil {
		b.baseCtx = ctx
	}
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

// Close disconnects from the gateway.
func (b *Bot) Close() error {
	if b == nil || b.session == nil {
		return nil
	}
	return b.session.Close()
}

// RoleByName resolves a guild role by exact name match.
func (b *Bot) RoleByName(ctx context.Context, name string) (connector.Role, error) {
	if err := ctx.Err(); err != nil {
		return connector.Role{}, err
	}
	guildRoles, err := b.session.GuildRoles(b.guildID)
	if err != nil {
		return connector.Role{}, classifyErr(fmt.Errorf("list guild roles: %w", err))
	}
	for _, role := range guildRoles {
		if role.Name == name {
			return connector.Role{ID: role.ID, Name: role.Name}, nil
		}
	}
	return connector.Role{}, connector.ErrRoleNotFound
}

// ChannelByName resolves a guild channel by exact name match.
func (b *Bot) ChannelByName(ctx context.Context, name string) (connector.Channel, error) {
	if err := ctx.Err(); err != nil {
		return connector.Channel{}, err
	}
	channels, err := b.session.GuildChannels(b.guildID)
	if err != nil {
		return connector.Channel{}, classifyErr(fmt.Errorf("list guild channels: %w", err))
	}
	for _, channel := range channels {
		if channel.Name == name {
			return connector.Channel{ID: channel.ID, Name: channel.Name}, nil
		}
	}
	return connector.Channel{}, connector.ErrChannelNotFound
}

// MemberHasRole reports whether the guild member already holds the role.
func (b *Bot) MemberHasRole(ctx context.Context, userID string, roleID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	member, err := b.session.GuildMember(b.guildID, userID)
	if err != nil {
		return false, classifyErr(fmt.Errorf("fetch guild member: %w", err))
	}
	for _, held := range member.Roles {
		if held == roleID {
			return true, nil
		}
	}
	return false, nil
}

// GrantRoles adds every role to the guild member. Discord's API adds roles
// one at a time; the batch stops at the first failure.
func (b *Bot) GrantRoles(ctx context.Context, userID string, roleIDs []string) error {
	for _, roleID := range roleIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.session.GuildMemberRoleAdd(b.guildID, userID, roleID); err != nil {
			return classifyErr(fmt.Errorf("add role %s: %w", roleID, err))
		}
	}
	return nil
}

// PostInvitation posts the public standing invitation into the channel.
func (b *Bot) PostInvitation(ctx context.Context, channelID string, prompt connector.Prompt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return fmt.Errorf("channel id is required")
	}

	send := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{promptEmbed(prompt)},
	}
	if row, ok := buttonRow(prompt.Buttons); ok {
		send.Components = []discordgo.MessageComponent{row}
	}
	if _, err := b.session.ChannelMessageSendComplex(channelID, send); err != nil {
		return classifyErr(fmt.Errorf("post invitation: %w", err))
	}
	return nil
}

// classifyErr maps Discord REST failures onto connector sentinel errors.
func classifyErr(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", connector.ErrPermissionDenied, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", connector.ErrRoleNotFound, err)
		}
	}
	return err
}

var _ connector.Directory = (*Bot)(nil)
