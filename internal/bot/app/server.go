// Package app wires the gatekeeper runtime: profile storage, the Discord
// session, the onboarding wizard, role reconciliation, and the hackathon
// flow, behind a single dispatch table.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/midnight-community/gatekeeper/internal/bot/connector"
	"github.com/midnight-community/gatekeeper/internal/bot/discord"
	"github.com/midnight-community/gatekeeper/internal/bot/dispatch"
	"github.com/midnight-community/gatekeeper/internal/bot/hackathon"
	"github.com/midnight-community/gatekeeper/internal/bot/render"
	"github.com/midnight-community/gatekeeper/internal/bot/roles"
	sqlitestore "github.com/midnight-community/gatekeeper/internal/bot/storage/sqlite"
	"github.com/midnight-community/gatekeeper/internal/bot/wizard"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultDBPath = "developer_profiles.db"

// RuntimeConfig controls gatekeeper startup and dependency wiring.
type RuntimeConfig struct {
	Token     string
	GuildID   string
	ChannelID string
	DBPath    string
}

// Run starts the bot runtime until context cancellation.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return fmt.Errorf("bot token is required")
	}
	if strings.TrimSpace(cfg.GuildID) == "" {
		return fmt.Errorf("guild id is required")
	}
	if strings.TrimSpace(cfg.ChannelID) == "" {
		return fmt.Errorf("channel id is required")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = defaultDBPath
	}

	store, err := sqlitestore.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open profile store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close profile store: %v", closeErr)
		}
	}()

	table := dispatch.New()
	bot, err := discord.New(cfg.Token, cfg.GuildID, tracedDispatch(table))
	if err != nil {
		return fmt.Errorf("create discord bot: %w", err)
	}

	renderer := render.New()
	reconciler := roles.NewReconciler(bot)
	wizard.New(store, reconciler, renderer).RegisterRoutes(table)
	hackathon.New(bot, renderer).RegisterRoutes(table)

	if err := bot.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if closeErr := bot.Close(); closeErr != nil {
			log.Printf("close discord session: %v", closeErr)
		}
	}()
	log.Printf("gateway connected, %d steps registered", len(table.Steps()))

	if err := bot.PostInvitation(ctx, cfg.ChannelID, invitationPrompt(renderer)); err != nil {
		// A missing or inaccessible channel disables onboarding entirely;
		// treat it as fatal rather than running a bot nobody can reach.
		return fmt.Errorf("post invitation to channel %s: %w", cfg.ChannelID, err)
	}
	log.Printf("invitation posted to channel %s", cfg.ChannelID)

	<-ctx.Done()
	return nil
}

// invitationPrompt builds the public standing invitation with the two entry
// buttons.
func invitationPrompt(renderer *render.Renderer) connector.Prompt {
	return connector.Prompt{
		Kind:   connector.PromptMessage,
		Title:  renderer.Text("invite.title"),
		Body:   renderer.Text("invite.body"),
		Footer: renderer.Text("invite.footer"),
		Buttons: []connector.Button{
			{Label: renderer.Text("invite.button.start"), Step: wizard.StepStartSetup},
			{Label: renderer.Text("invite.button.hackathon"), Step: hackathon.StepRequest, Secondary: true},
		},
	}
}

// tracedDispatch wraps the dispatch table with one span per interaction and
// the boundary policy for unknown steps: log and ignore.
func tracedDispatch(table *dispatch.Table) discord.DispatchFunc {
	tracer := otel.Tracer("gatekeeper/dispatch")
	return func(ctx context.Context, ev connector.Event) (connector.Prompt, error) {
		ctx, span := tracer.Start(ctx, "interaction.dispatch",
			trace.WithAttributes(
				attribute.String("step", ev.Step),
				attribute.String("user_id", ev.UserID),
			),
		)
		defer span.End()

		prompt, err := table.Dispatch(ctx, ev)
		if err != nil {
			if errors.Is(err, dispatch.ErrUnknownStep) {
				log.Printf("ignoring interaction with unknown step %q", ev.Step)
				span.SetAttributes(attribute.Bool("step.unknown", true))
				return connector.Prompt{}, nil
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "dispatch failed")
			return connector.Prompt{}, err
		}
		return prompt, nil
	}
}
