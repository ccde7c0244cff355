package app

import (
	"context"
	"strings"
	"testing"

	"github.com/midnight-community/gatekeeper/internal/bot/connector"
	"github.com/midnight-community/gatekeeper/internal/bot/dispatch"
	"github.com/midnight-community/gatekeeper/internal/bot/render"
)

func TestRunRejectsIncompleteConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  RuntimeConfig
		want string
	}{
		{"missing token", RuntimeConfig{GuildID: "g", ChannelID: "c"}, "bot token"},
		{"missing guild", RuntimeConfig{Token: "t", ChannelID: "c"}, "guild id"},
		{"missing channel", RuntimeConfig{Token: "t", GuildID: "g"}, "channel id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Run(context.Background(), tc.cfg)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestInvitationPromptCarriesBothEntryPoints(t *testing.T) {
	prompt := invitationPrompt(render.New())
	if prompt.Title == "" || prompt.Body == "" {
		t.Fatal("invitation needs a title and body")
	}
	if len(prompt.Buttons) != 2 {
		t.Fatalf("buttons = %d, want 2", len(prompt.Buttons))
	}
	if prompt.Buttons[0].Step != "start_setup" {
		t.Fatalf("first button step = %q, want start_setup", prompt.Buttons[0].Step)
	}
	if prompt.Buttons[1].Step != "get_hackathon_role" || !prompt.Buttons[1].Secondary {
		t.Fatalf("second button = %+v, want secondary get_hackathon_role", prompt.Buttons[1])
	}
}

func TestTracedDispatchSwallowsUnknownSteps(t *testing.T) {
	table := dispatch.New()
	table.Register("known", func(_ context.Context, _ connector.Event) (connector.Prompt, error) {
		return connector.Prompt{Body: "ok"}, nil
	})
	fn := tracedDispatch(table)

	prompt, err := fn(context.Background(), connector.Event{Step: "mystery", UserID: "user-1"})
	if err != nil {
		t.Fatalf("unknown steps must be swallowed, got %v", err)
	}
	if prompt.Kind != connector.PromptNone {
		t.Fatalf("prompt = %+v, want none", prompt)
	}

	prompt, err = fn(context.Background(), connector.Event{Step: "known", UserID: "user-1"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if prompt.Body != "ok" {
		t.Fatalf("prompt body = %q, want ok", prompt.Body)
	}
}
