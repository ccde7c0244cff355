// Package profilelookup implements a moderator CLI for inspecting stored
// onboarding profiles, primarily to identify who holds a disputed GitHub or
// X link.
package profilelookup

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/midnight-community/gatekeeper/internal/bot/storage"
	sqlitestore "github.com/midnight-community/gatekeeper/internal/bot/storage/sqlite"
)

// Config holds profile lookup configuration.
type Config struct {
	DBPath string
	UserID string
	Link   string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{DBPath: "developer_profiles.db"}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the profile SQLite database")
	fs.StringVar(&cfg.UserID, "user", "", "Look up the profile for a user ID")
	fs.StringVar(&cfg.Link, "link", "", "Look up the profile holding a GitHub or X link")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run resolves the requested profile and writes it to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	userID := strings.TrimSpace(cfg.UserID)
	link := strings.TrimSpace(cfg.Link)
	if (userID == "") == (link == "") {
		return errors.New("exactly one of -user or -link is required")
	}

	store, err := sqlitestore.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open profile store: %w", err)
	}
	defer store.Close()

	var profile storage.Profile
	if userID != "" {
		profile, err = store.GetProfile(ctx, userID)
	} else {
		profile, err = store.FindProfileByLink(ctx, link)
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errors.New("no matching profile")
		}
		return fmt.Errorf("look up profile: %w", err)
	}

	return writeProfile(out, profile)
}

func writeProfile(out io.Writer, profile storage.Profile) error {
	agreed := "no"
	if profile.AgreedToTerms {
		agreed = "yes"
	}
	_, err := fmt.Fprintf(out,
		"user_id:      %s\nprimary_role: %s\nsub_roles:    %s\necosystems:   %s\ngithub:       %s\ntwitter:      %s\nagreed:       %s\n",
		profile.UserID,
		profile.PrimaryRole,
		strings.Join(profile.SubRoles, ", "),
		strings.Join(profile.Ecosystems, ", "),
		profile.GitHub,
		profile.Twitter,
		agreed,
	)
	return err
}
