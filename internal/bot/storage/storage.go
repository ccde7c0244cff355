// Package storage defines persistence contracts for onboarding profiles.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested profile record is missing.
var ErrNotFound = errors.New("profile not found")

// ErrLinkInUse indicates a github or twitter link is already bound to
// another profile.
var ErrLinkInUse = errors.New("profile link already in use")

// Profile stores one onboarding record per guild member.
type Profile struct {
	UserID        string
	PrimaryRole   string
	SubRoles      []string
	Ecosystems    []string
	GitHub        string
	Twitter       string
	AgreedToTerms bool
}

// ProfileStore persists onboarding profile records. Every write is durable
// before the call returns.
type ProfileStore interface {
	// UpsertPrimaryRole creates the profile row on first submission and
	// updates only the primary role on re-submission; values written by
	// later steps are preserved.
	UpsertPrimaryRole(ctx context.Context, userID string, primaryRole string) error
	SetSubRoles(ctx context.Context, userID string, subRoles []string) error
	SetEcosystems(ctx context.Context, userID string, ecosystems []string) error
	// SetProfileLinks stores both links, returning ErrLinkInUse when either
	// is already bound to a different profile. Uniqueness is enforced by the
	// store itself, not by a pre-check.
	SetProfileLinks(ctx context.Context, userID string, github string, twitter string) error
	SetAgreed(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (Profile, error)
	FindProfileByLink(ctx context.Context, link string) (Profile, error)
}
