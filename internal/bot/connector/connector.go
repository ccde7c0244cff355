// Package connector defines the boundary between the bot's domain logic and
// the chat platform. The platform remains authoritative for membership,
// role existence, and interaction rendering; domain packages consume only
// these contracts.
package connector

import (
	"context"
	"errors"
)

// ErrRoleNotFound indicates no guild role matches a requested name.
var ErrRoleNotFound = errors.New("guild role not found")

// ErrChannelNotFound indicates no guild channel matches a requested name.
var ErrChannelNotFound = errors.New("guild channel not found")

// ErrPermissionDenied indicates the bot lacks rights for a grant call.
var ErrPermissionDenied = errors.New("permission denied by platform")

// Role identifies one guild permission role.
type Role struct {
	ID   string
	Name string
}

// Channel identifies one guild channel.
type Channel struct {
	ID   string
	Name string
}

// Mention returns the platform's inline reference for the channel.
func (c Channel) Mention() string {
	return "<#" + c.ID + ">"
}

// Directory resolves live guild roles, channels, and membership state, and
// requests role grants.
type Directory interface {
	RoleByName(ctx context.Context, name string) (Role, error)
	ChannelByName(ctx context.Context, name string) (Channel, error)
	MemberHasRole(ctx context.Context, userID string, roleID string) (bool, error)
	// GrantRoles requests one batched grant of all role IDs to the member.
	// Grants are never retried or reversed by the caller.
	GrantRoles(ctx context.Context, userID string, roleIDs []string) error
}

// Event is one inbound interaction, tagged with the opaque step it
// continues.
type Event struct {
	Step   string
	UserID string
	// Values carries chooser submissions.
	Values []string
	// Fields carries modal form inputs keyed by field ID.
	Fields map[string]string
}

// PromptKind selects how the platform renders a step response.
type PromptKind int

const (
	// PromptNone produces no response; used for silently ignored events.
	PromptNone PromptKind = iota
	// PromptMessage renders a plain message.
	PromptMessage
	// PromptSelect renders a message with a value chooser.
	PromptSelect
	// PromptModal renders a form with free-text fields.
	PromptModal
)

// Option is one selectable chooser entry.
type Option struct {
	Label string
	Value string
}

// TextField is one free-text input on a modal form.
type TextField struct {
	ID          string
	Label       string
	Placeholder string
	MaxLength   int
}

// Button advances the flow to another step when pressed.
type Button struct {
	Label     string
	Step      string
	Secondary bool
}

// Prompt is one platform-agnostic step response. Wizard prompts are always
// rendered caller-only; the invitation posted at startup is public.
type Prompt struct {
	Kind  PromptKind
	Title string
	Body  string
	// Step tags the chooser or modal submission this prompt collects.
	Step string
	// MaxValues bounds multi-select choosers; zero means single-select.
	MaxValues int
	Options   []Option
	Fields    []TextField
	Buttons   []Button
	Footer    string
}
