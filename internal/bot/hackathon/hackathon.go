// Package hackathon implements the ad-hoc hackathon role grant flow. It is
// a single round trip independent of the onboarding wizard and never
// touches the profile store. Unlike the post-onboarding reconciler, grant
// failures here are reported to the member directly, since this flow
// responds synchronously before any other message is sent.
package hackathon

import (
	"context"
	"errors"
	"log"

	"github.com/midnight-community/gatekeeper/internal/bot/catalog"
	"github.com/midnight-community/gatekeeper/internal/bot/connector"
	"github.com/midnight-community/gatekeeper/internal/bot/dispatch"
	"github.com/midnight-community/gatekeeper/internal/bot/render"
)

// Step tags for the hackathon flow.
const (
	StepRequest = "get_hackathon_role"
	StepSelect  = "hackathon_role_select"
)

// Service grants hackathon roles on request.
type Service struct {
	dir      connector.Directory
	renderer *render.Renderer
	logf     func(format string, args ...any)
}

// New creates the hackathon grant service.
func New(dir connector.Directory, renderer *render.Renderer) *Service {
	return &Service{dir: dir, renderer: renderer, logf: log.Printf}
}

// RegisterRoutes binds the hackathon steps to the dispatch table.
func (s *Service) RegisterRoutes(table *dispatch.Table) {
	table.Register(StepRequest, s.handleRequest)
	table.Register(StepSelect, s.handleSelect)
}

func (s *Service) handleRequest(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	options := make([]connector.Option, 0, len(catalog.HackathonGrants))
	for _, grant := range catalog.HackathonGrants {
		options = append(options, connector.Option{Label: grant.Label, Value: grant.RoleName})
	}
	return connector.Prompt{
		Kind:    connector.PromptSelect,
		Title:   s.renderer.Text("hackathon.title"),
		Body:    s.renderer.Text("hackathon.body"),
		Step:    StepSelect,
		Options: options,
	}, nil
}

func (s *Service) handleSelect(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	if len(ev.Values) != 1 {
		return s.notice("hackathon.unknown"), nil
	}
	grant, ok := catalog.HackathonGrantByRole(ev.Values[0])
	if !ok {
		return s.notice("hackathon.unknown"), nil
	}

	role, err := s.dir.RoleByName(ctx, grant.RoleName)
	if err != nil {
		if errors.Is(err, connector.ErrRoleNotFound) {
			s.logf("hackathon role %q not found in the guild", grant.RoleName)
			return s.notice("hackathon.missing_role", grant.RoleName), nil
		}
		s.logf("resolve hackathon role %q: %v", grant.RoleName, err)
		return s.notice("hackathon.failed"), nil
	}

	held, err := s.dir.MemberHasRole(ctx, ev.UserID, role.ID)
	if err != nil {
		s.logf("check hackathon role %q for user %s: %v", role.Name, ev.UserID, err)
		return s.notice("hackathon.failed"), nil
	}
	if held {
		return s.notice("hackathon.already", role.Name), nil
	}

	if err := s.dir.GrantRoles(ctx, ev.UserID, []string{role.ID}); err != nil {
		if errors.Is(err, connector.ErrPermissionDenied) {
			s.logf("missing permission to grant hackathon role %q", role.Name)
			return s.notice("hackathon.denied"), nil
		}
		s.logf("grant hackathon role %q to user %s: %v", role.Name, ev.UserID, err)
		return s.notice("hackathon.failed"), nil
	}
	s.logf("granted hackathon role %q to user %s", role.Name, ev.UserID)

	if grant.ChannelName == "" {
		return s.notice("hackathon.granted", role.Name), nil
	}
	channel, err := s.dir.ChannelByName(ctx, grant.ChannelName)
	if err != nil {
		return s.notice("hackathon.granted.nochannel", role.Name), nil
	}
	return s.notice("hackathon.granted.channel", role.Name, channel.Mention()), nil
}

func (s *Service) notice(key string, args ...any) connector.Prompt {
	return connector.Prompt{
		Kind: connector.PromptMessage,
		Body: s.renderer.Text(key, args...),
	}
}
