// Package roles computes and requests the guild role grants implied by a
// completed onboarding profile.
package roles

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/midnight-community/gatekeeper/internal/bot/connector"
	"github.com/midnight-community/gatekeeper/internal/bot/storage"
)

// Outcome reports what one reconciliation resolved and granted.
type Outcome struct {
	// Granted lists the roles included in the grant call, in profile order.
	Granted []connector.Role
	// Missing lists profile values with no matching guild role. Misses are
	// non-fatal; the resolved roles are still granted.
	Missing []string
}

// Reconciler resolves profile values against the live guild role directory
// and requests a single batched grant.
type Reconciler struct {
	dir  connector.Directory
	logf func(format string, args ...any)
}

// NewReconciler creates a reconciler over the guild directory.
func NewReconciler(dir connector.Directory) *Reconciler {
	return &Reconciler{dir: dir, logf: log.Printf}
}

// Reconcile resolves the profile's primary role, sub-roles, and ecosystems
// by exact name match and grants the resolved set in one call. An empty
// resolved set makes no grant call. Grants are attempted at most once; a
// denied or failed grant is returned to the caller, never retried.
func (r *Reconciler) Reconcile(ctx context.Context, profile storage.Profile) (Outcome, error) {
	if r == nil || r.dir == nil {
		return Outcome{}, fmt.Errorf("role directory is not configured")
	}

	names := make([]string, 0, 1+len(profile.SubRoles)+len(profile.Ecosystems))
	if profile.PrimaryRole != "" {
		names = append(names, profile.PrimaryRole)
	}
	names = append(names, profile.SubRoles...)
	names = append(names, profile.Ecosystems...)

	var outcome Outcome
	for _, name := range names {
		role, err := r.dir.RoleByName(ctx, name)
		if err != nil {
			if errors.Is(err, connector.ErrRoleNotFound) {
				r.logf("role %q not found in the guild, skipping", name)
				outcome.Missing = append(outcome.Missing, name)
				continue
			}
			return Outcome{}, fmt.Errorf("resolve role %q: %w", name, err)
		}
		outcome.Granted = append(outcome.Granted, role)
	}

	if len(outcome.Granted) == 0 {
		r.logf("no roles resolved for user %s, skipping grant", profile.UserID)
		return outcome, nil
	}

	roleIDs := make([]string, 0, len(outcome.Granted))
	for _, role := range outcome.Granted {
		roleIDs = append(roleIDs, role.ID)
	}
	if err := r.dir.GrantRoles(ctx, profile.UserID, roleIDs); err != nil {
		return Outcome{}, fmt.Errorf("grant roles: %w", err)
	}
	return outcome, nil
}
