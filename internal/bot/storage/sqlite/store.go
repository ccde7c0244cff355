// Package sqlite provides a SQLite-backed profile storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/midnight-community/gatekeeper/internal/bot/storage"
	"github.com/midnight-community/gatekeeper/internal/bot/storage/sqlite/migrations"
	sqlitemigrate "github.com/midnight-community/gatekeeper/internal/platform/storage/sqlitemigrate"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// listSeparator joins list-valued columns; order is not significant.
const listSeparator = ", "

// Store persists onboarding profiles in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite profile store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// UpsertPrimaryRole creates the profile row or updates only its primary
// role. Sub-roles, ecosystems, links, and the agreement flag written by
// later steps survive a repeated step-1 submission.
func (s *Store) UpsertPrimaryRole(ctx context.Context, userID string, primaryRole string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	primaryRole = strings.TrimSpace(primaryRole)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if primaryRole == "" {
		return fmt.Errorf("primary role is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO developers (user_id, primary_role)
		 VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET primary_role = excluded.primary_role`,
		userID,
		primaryRole,
	)
	if err != nil {
		return fmt.Errorf("upsert primary role: %w", err)
	}
	return nil
}

// SetSubRoles replaces the stored sub-role list for an existing profile.
func (s *Store) SetSubRoles(ctx context.Context, userID string, subRoles []string) error {
	return s.setList(ctx, "sub_roles", userID, subRoles)
}

// SetEcosystems replaces the stored ecosystem list for an existing profile.
func (s *Store) SetEcosystems(ctx context.Context, userID string, ecosystems []string) error {
	return s.setList(ctx, "ecosystems", userID, ecosystems)
}

func (s *Store) setList(ctx context.Context, column string, userID string, values []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		"UPDATE developers SET "+column+" = ? WHERE user_id = ?",
		joinList(values),
		userID,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", column, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set %s: %w", column, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SetProfileLinks stores both external profile links. The github and
// twitter columns carry unique indexes, so a link already bound to another
// profile fails at the constraint and is reported as ErrLinkInUse with no
// mutation; the guarantee is the schema's, not a check-then-write.
func (s *Store) SetProfileLinks(ctx context.Context, userID string, github string, twitter string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	github = strings.TrimSpace(github)
	twitter = strings.TrimSpace(twitter)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if github == "" {
		return fmt.Errorf("github link is required")
	}
	if twitter == "" {
		return fmt.Errorf("twitter link is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE developers SET github = ?, twitter = ? WHERE user_id = ?`,
		github,
		twitter,
		userID,
	)
	if err != nil {
		if isLinkUniqueViolation(err) {
			return storage.ErrLinkInUse
		}
		return fmt.Errorf("set profile links: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set profile links: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SetAgreed marks an existing profile as having accepted the terms.
func (s *Store) SetAgreed(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE developers SET agreed_to_terms = 1 WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("set agreed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set agreed: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetProfile returns one profile by user ID.
func (s *Store) GetProfile(ctx context.Context, userID string) (storage.Profile, error) {
	if err := ctx.Err(); err != nil {
		return storage.Profile{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Profile{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.Profile{}, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT user_id, primary_role, sub_roles, github, twitter, agreed_to_terms, ecosystems
		   FROM developers
		  WHERE user_id = ?`,
		userID,
	)
	return scanProfile(row)
}

// FindProfileByLink returns the profile bound to a github or twitter link.
func (s *Store) FindProfileByLink(ctx context.Context, link string) (storage.Profile, error) {
	if err := ctx.Err(); err != nil {
		return storage.Profile{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Profile{}, fmt.Errorf("storage is not configured")
	}
	link = strings.TrimSpace(link)
	if link == "" {
		return storage.Profile{}, fmt.Errorf("link is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT user_id, primary_role, sub_roles, github, twitter, agreed_to_terms, ecosystems
		   FROM developers
		  WHERE github = ? OR twitter = ?`,
		link,
		link,
	)
	return scanProfile(row)
}

func scanProfile(row *sql.Row) (storage.Profile, error) {
	var profile storage.Profile
	var primaryRole sql.NullString
	var subRoles sql.NullString
	var github sql.NullString
	var twitter sql.NullString
	var agreed int64
	var ecosystems sql.NullString
	err := row.Scan(
		&profile.UserID,
		&primaryRole,
		&subRoles,
		&github,
		&twitter,
		&agreed,
		&ecosystems,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Profile{}, storage.ErrNotFound
		}
		return storage.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	profile.PrimaryRole = primaryRole.String
	profile.SubRoles = splitList(subRoles)
	profile.GitHub = github.String
	profile.Twitter = twitter.String
	profile.AgreedToTerms = agreed != 0
	profile.Ecosystems = splitList(ecosystems)
	return profile, nil
}

func joinList(values []string) sql.NullString {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			cleaned = append(cleaned, value)
		}
	}
	if len(cleaned) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.Join(cleaned, listSeparator), Valid: true}
}

func splitList(value sql.NullString) []string {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return nil
	}
	return strings.Split(value.String, listSeparator)
}

func isLinkUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		(strings.Contains(message, "developers.github") || strings.Contains(message, "developers.twitter"))
}

var _ storage.ProfileStore = (*Store)(nil)
