package profilelookup

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	sqlitestore "github.com/midnight-community/gatekeeper/internal/bot/storage/sqlite"
)

func seedProfile(t *testing.T, dbPath string) {
	t.Helper()
	store, err := sqlitestore.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	ctx := context.Background()
	if err := store.UpsertPrimaryRole(ctx, "user-1", "Block Producer"); err != nil {
		t.Fatalf("seed primary role: %v", err)
	}
	if err := store.SetProfileLinks(ctx, "user-1", "https://github.com/one", "https://x.com/one"); err != nil {
		t.Fatalf("seed links: %v", err)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("profile-lookup", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-user", "user-1"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "developer_profiles.db" {
		t.Fatalf("db path = %q, want default", cfg.DBPath)
	}
	if cfg.UserID != "user-1" {
		t.Fatalf("user = %q", cfg.UserID)
	}
}

func TestRunRequiresExactlyOneSelector(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), Config{DBPath: "x.db"}, &out); err == nil {
		t.Fatal("expected an error without selectors")
	}
	cfg := Config{DBPath: "x.db", UserID: "user-1", Link: "https://github.com/one"}
	if err := Run(context.Background(), cfg, &out); err == nil {
		t.Fatal("expected an error with both selectors")
	}
}

func TestRunLooksUpByUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "profiles.db")
	seedProfile(t, dbPath)

	var out bytes.Buffer
	if err := Run(context.Background(), Config{DBPath: dbPath, UserID: "user-1"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Block Producer") {
		t.Fatalf("output missing profile data: %q", out.String())
	}
}

func TestRunLooksUpByLink(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "profiles.db")
	seedProfile(t, dbPath)

	var out bytes.Buffer
	cfg := Config{DBPath: dbPath, Link: "https://x.com/one"}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "user-1") {
		t.Fatalf("output missing user id: %q", out.String())
	}
}

func TestRunReportsMissingProfile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "profiles.db")
	seedProfile(t, dbPath)

	var out bytes.Buffer
	err := Run(context.Background(), Config{DBPath: dbPath, UserID: "nobody"}, &out)
	if err == nil || !strings.Contains(err.Error(), "no matching profile") {
		t.Fatalf("err = %v, want no matching profile", err)
	}
}
