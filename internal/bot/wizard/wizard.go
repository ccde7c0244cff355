// Package wizard implements the onboarding step state machine: each inbound
// step event validates its payload, writes to the profile store, and emits
// the next prompt. Steps are re-entrant; a failed validation never mutates
// state, and the member may retry the same step.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/midnight-community/gatekeeper/internal/bot/catalog"
	"github.com/midnight-community/gatekeeper/internal/bot/connector"
	"github.com/midnight-community/gatekeeper/internal/bot/dispatch"
	"github.com/midnight-community/gatekeeper/internal/bot/render"
	"github.com/midnight-community/gatekeeper/internal/bot/roles"
	"github.com/midnight-community/gatekeeper/internal/bot/storage"
)

// Step tags carried by interaction custom IDs. Chooser-presentation steps
// ("Next" buttons) and value-submission steps are both routed through the
// dispatch table.
const (
	StepStartSetup      = "start_setup"
	StepPrimarySelect   = "primary_role_select"
	StepShowSubRoles    = "select_sub_roles"
	StepSubRoleSelect   = "sub_role_select"
	StepShowEcosystems  = "select_ecosystems"
	StepEcosystemSelect = "ecosystem_select"
	StepShowProfileForm = "provide_profiles"
	StepProfileLinks    = "profile_links_modal"
	StepShowTerms       = "agree_terms"
	StepShowAgreement   = "show_agreement_modal"
	StepAgreementSubmit = "agreement_modal"
)

// Modal field IDs.
const (
	FieldGitHub    = "github"
	FieldTwitter   = "twitter"
	FieldAgreement = "agreement"
)

// agreementText is the required confirmation, compared case-insensitively
// after trimming.
const agreementText = "i agree"

// Granter runs role reconciliation for a completed profile.
type Granter interface {
	Reconcile(ctx context.Context, profile storage.Profile) (roles.Outcome, error)
}

// Wizard drives the onboarding flow over an injected store and granter.
type Wizard struct {
	store    storage.ProfileStore
	granter  Granter
	renderer *render.Renderer
}

// New creates the onboarding wizard.
func New(store storage.ProfileStore, granter Granter, renderer *render.Renderer) *Wizard {
	return &Wizard{store: store, granter: granter, renderer: renderer}
}

// RegisterRoutes binds every wizard step to the dispatch table.
func (w *Wizard) RegisterRoutes(table *dispatch.Table) {
	table.Register(StepStartSetup, w.handleStartSetup)
	table.Register(StepPrimarySelect, w.handlePrimarySelect)
	table.Register(StepShowSubRoles, w.handleShowSubRoles)
	table.Register(StepSubRoleSelect, w.handleSubRoleSelect)
	table.Register(StepShowEcosystems, w.handleShowEcosystems)
	table.Register(StepEcosystemSelect, w.handleEcosystemSelect)
	table.Register(StepShowProfileForm, w.handleShowProfileForm)
	table.Register(StepProfileLinks, w.handleProfileLinks)
	table.Register(StepShowTerms, w.handleShowTerms)
	table.Register(StepShowAgreement, w.handleShowAgreement)
	table.Register(StepAgreementSubmit, w.handleAgreementSubmit)
}

func (w *Wizard) handleStartSetup(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	options := make([]connector.Option, 0, len(catalog.PrimaryRoles))
	for _, role := range catalog.PrimaryRoles {
		options = append(options, connector.Option{
			Label: catalog.PrimaryRoleLabel(role),
			Value: role,
		})
	}
	return connector.Prompt{
		Kind:    connector.PromptSelect,
		Title:   w.renderer.Text("step.primary.title"),
		Body:    w.renderer.Text("step.primary.body"),
		Step:    StepPrimarySelect,
		Options: options,
	}, nil
}

func (w *Wizard) handlePrimarySelect(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	if len(ev.Values) != 1 || !catalog.ValidPrimaryRole(ev.Values[0]) {
		return w.rejection("step.invalid_selection"), nil
	}
	primaryRole := ev.Values[0]
	if err := w.store.UpsertPrimaryRole(ctx, ev.UserID, primaryRole); err != nil {
		return connector.Prompt{}, fmt.Errorf("store primary role: %w", err)
	}
	return connector.Prompt{
		Kind:  connector.PromptMessage,
		Title: w.renderer.Text("step.primary.selected.title"),
		Body:  w.renderer.Text("step.primary.selected.body", primaryRole),
		Buttons: []connector.Button{
			{Label: w.renderer.Text("step.next"), Step: StepShowSubRoles},
		},
	}, nil
}

func (w *Wizard) handleShowSubRoles(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	return connector.Prompt{
		Kind:      connector.PromptSelect,
		Title:     w.renderer.Text("step.subroles.title"),
		Body:      w.renderer.Text("step.subroles.body"),
		Step:      StepSubRoleSelect,
		MaxValues: len(catalog.SubRoles),
		Options:   valueOptions(catalog.SubRoles),
	}, nil
}

func (w *Wizard) handleSubRoleSelect(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	if !catalog.ValidSubRoles(ev.Values) {
		return w.rejection("step.invalid_selection"), nil
	}
	if err := w.store.SetSubRoles(ctx, ev.UserID, ev.Values); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return w.rejection("step.profile_missing"), nil
		}
		return connector.Prompt{}, fmt.Errorf("store sub-roles: %w", err)
	}
	return connector.Prompt{
		Kind:  connector.PromptMessage,
		Title: w.renderer.Text("step.subroles.selected.title"),
		Body:  w.renderer.Text("step.subroles.selected.body", strings.Join(ev.Values, ", ")),
		Buttons: []connector.Button{
			{Label: w.renderer.Text("step.next"), Step: StepShowEcosystems},
		},
	}, nil
}

func (w *Wizard) handleShowEcosystems(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	return connector.Prompt{
		Kind:      connector.PromptSelect,
		Title:     w.renderer.Text("step.ecosystems.title"),
		Body:      w.renderer.Text("step.ecosystems.body"),
		Step:      StepEcosystemSelect,
		MaxValues: len(catalog.Ecosystems),
		Options:   valueOptions(catalog.Ecosystems),
	}, nil
}

func (w *Wizard) handleEcosystemSelect(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	if !catalog.ValidEcosystems(ev.Values) {
		return w.rejection("step.invalid_selection"), nil
	}
	if err := w.store.SetEcosystems(ctx, ev.UserID, ev.Values); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return w.rejection("step.profile_missing"), nil
		}
		return connector.Prompt{}, fmt.Errorf("store ecosystems: %w", err)
	}
	return connector.Prompt{
		Kind:  connector.PromptMessage,
		Title: w.renderer.Text("step.ecosystems.selected.title"),
		Body:  w.renderer.Text("step.ecosystems.selected.body", strings.Join(ev.Values, ", ")),
		Buttons: []connector.Button{
			{Label: w.renderer.Text("step.next"), Step: StepShowProfileForm},
		},
	}, nil
}

func (w *Wizard) handleShowProfileForm(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	return connector.Prompt{
		Kind:  connector.PromptModal,
		Title: w.renderer.Text("step.links.modal.title"),
		Step:  StepProfileLinks,
		Fields: []connector.TextField{
			{
				ID:          FieldGitHub,
				Label:       w.renderer.Text("step.links.github.label"),
				Placeholder: w.renderer.Text("step.links.github.placeholder"),
			},
			{
				ID:          FieldTwitter,
				Label:       w.renderer.Text("step.links.twitter.label"),
				Placeholder: w.renderer.Text("step.links.twitter.placeholder"),
			},
		},
	}, nil
}

func (w *Wizard) handleProfileLinks(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	github := strings.TrimSpace(ev.Fields[FieldGitHub])
	twitter := strings.TrimSpace(ev.Fields[FieldTwitter])
	if github == "" || twitter == "" {
		return w.rejection("step.links.missing"), nil
	}
	if err := w.store.SetProfileLinks(ctx, ev.UserID, github, twitter); err != nil {
		switch {
		case errors.Is(err, storage.ErrLinkInUse):
			return w.rejection("step.links.conflict"), nil
		case errors.Is(err, storage.ErrNotFound):
			return w.rejection("step.profile_missing"), nil
		}
		return connector.Prompt{}, fmt.Errorf("store profile links: %w", err)
	}
	return connector.Prompt{
		Kind:  connector.PromptMessage,
		Title: w.renderer.Text("step.links.saved.title"),
		Body:  w.renderer.Text("step.links.saved.body"),
		Buttons: []connector.Button{
			{Label: w.renderer.Text("step.next"), Step: StepShowTerms},
		},
	}, nil
}

func (w *Wizard) handleShowTerms(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	return connector.Prompt{
		Kind:  connector.PromptMessage,
		Title: w.renderer.Text("step.terms.title"),
		Body:  w.renderer.Text("step.terms.body"),
		Buttons: []connector.Button{
			{Label: w.renderer.Text("step.next"), Step: StepShowAgreement},
		},
	}, nil
}

func (w *Wizard) handleShowAgreement(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	return connector.Prompt{
		Kind:  connector.PromptModal,
		Title: w.renderer.Text("step.agreement.modal.title"),
		Step:  StepAgreementSubmit,
		Fields: []connector.TextField{
			{
				ID:          FieldAgreement,
				Label:       w.renderer.Text("step.agreement.label"),
				Placeholder: w.renderer.Text("step.agreement.placeholder"),
				MaxLength:   20,
			},
		},
	}, nil
}

// handleAgreementSubmit is the terminal step: it persists the agreement,
// runs role reconciliation, and reports the combined outcome so the member's
// completion message reflects what actually happened in the guild.
func (w *Wizard) handleAgreementSubmit(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
	typed := strings.ToLower(strings.TrimSpace(ev.Fields[FieldAgreement]))
	if typed != agreementText {
		return w.rejection("step.agreement.rejected"), nil
	}

	if err := w.store.SetAgreed(ctx, ev.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return w.rejection("step.profile_missing"), nil
		}
		return connector.Prompt{}, fmt.Errorf("store agreement: %w", err)
	}

	profile, err := w.store.GetProfile(ctx, ev.UserID)
	if err != nil {
		return connector.Prompt{}, fmt.Errorf("load profile for reconciliation: %w", err)
	}

	body := w.completionBody(ctx, profile)
	return connector.Prompt{
		Kind:  connector.PromptMessage,
		Title: w.renderer.Text("step.complete.title"),
		Body:  body,
	}, nil
}

func (w *Wizard) completionBody(ctx context.Context, profile storage.Profile) string {
	if w.granter == nil {
		return w.renderer.Text("step.complete.failed")
	}
	outcome, err := w.granter.Reconcile(ctx, profile)
	if err != nil {
		return w.renderer.Text("step.complete.failed")
	}
	if len(outcome.Granted) == 0 {
		return w.renderer.Text("step.complete.none")
	}
	names := make([]string, 0, len(outcome.Granted))
	for _, role := range outcome.Granted {
		names = append(names, role.Name)
	}
	return w.renderer.Text("step.complete.granted", strings.Join(names, ", "))
}

func (w *Wizard) rejection(key string) connector.Prompt {
	return connector.Prompt{
		Kind: connector.PromptMessage,
		Body: w.renderer.Text(key),
	}
}

func valueOptions(values []string) []connector.Option {
	options := make([]connector.Option, 0, len(values))
	for _, value := range values {
		options = append(options, connector.Option{Label: value, Value: value})
	}
	return options
}
