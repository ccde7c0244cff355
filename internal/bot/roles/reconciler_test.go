package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/midnight-community/gatekeeper/internal/bot/connector"
	"github.com/midnight-community/gatekeeper/internal/bot/storage"
)

type fakeDirectory struct {
	roles      map[string]connector.Role
	grantErr   error
	grantCalls [][]string
	grantUsers []string
}

func (f *fakeDirectory) RoleByName(_ context.Context, name string) (connector.Role, error) {
	role, ok := f.roles[name]
	if !ok {
		return connector.Role{}, connector.ErrRoleNotFound
	}
	return role, nil
}

func (f *fakeDirectory) ChannelByName(_ context.Context, name string) (connector.Channel, error) {
	return connector.Channel{}, connector.ErrChannelNotFound
}

func (f *fakeDirectory) MemberHasRole(_ context.Context, userID string, roleID string) (bool, error) {
	return false, nil
}

func (f *fakeDirectory) GrantRoles(_ context.Context, userID string, roleIDs []string) error {
	f.grantUsers = append(f.grantUsers, userID)
	f.grantCalls = append(f.grantCalls, roleIDs)
	return f.grantErr
}

func testProfile() storage.Profile {
	return storage.Profile{
		UserID:      "user-1",
		PrimaryRole: "Block Producer",
		SubRoles:    []string{"Backend Developer"},
		Ecosystems:  []string{"Cardano", "Solana"},
	}
}

func directoryWith(names ...string) *fakeDirectory {
	dir := &fakeDirectory{roles: make(map[string]connector.Role)}
	for i, name := range names {
		dir.roles[name] = connector.Role{ID: string(rune('a' + i)), Name: name}
	}
	return dir
}

func TestReconcileGrantsAllResolvedRolesInOneCall(t *testing.T) {
	dir := directoryWith("Block Producer", "Backend Developer", "Cardano", "Solana")
	outcome, err := NewReconciler(dir).Reconcile(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(outcome.Granted) != 4 {
		t.Fatalf("granted %d roles, want 4", len(outcome.Granted))
	}
	if len(outcome.Missing) != 0 {
		t.Fatalf("missing = %v, want none", outcome.Missing)
	}
	if len(dir.grantCalls) != 1 {
		t.Fatalf("grant calls = %d, want a single batched call", len(dir.grantCalls))
	}
	if len(dir.grantCalls[0]) != 4 {
		t.Fatalf("batched %d role IDs, want 4", len(dir.grantCalls[0]))
	}
	if dir.grantUsers[0] != "user-1" {
		t.Fatalf("granted to %q, want user-1", dir.grantUsers[0])
	}
}

func TestReconcileSkipsUnresolvedRolesWithoutFailing(t *testing.T) {
	dir := directoryWith("Block Producer", "Cardano", "Solana")
	outcome, err := NewReconciler(dir).Reconcile(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(outcome.Granted) != 3 {
		t.Fatalf("granted %d roles, want 3", len(outcome.Granted))
	}
	if len(outcome.Missing) != 1 || outcome.Missing[0] != "Backend Developer" {
		t.Fatalf("missing = %v, want [Backend Developer]", outcome.Missing)
	}
	if len(dir.grantCalls) != 1 || len(dir.grantCalls[0]) != 3 {
		t.Fatalf("grant calls = %v, want one call with 3 IDs", dir.grantCalls)
	}
}

func TestReconcileEmptyResolvedSetMakesNoGrantCall(t *testing.T) {
	dir := directoryWith()
	rec := NewReconciler(dir)
	rec.logf = func(string, ...any) {}

	outcome, err := rec.Reconcile(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(outcome.Granted) != 0 {
		t.Fatalf("granted = %v, want none", outcome.Granted)
	}
	if len(dir.grantCalls) != 0 {
		t.Fatal("no grant call expected when nothing resolved")
	}
}

func TestReconcileReturnsGrantErrorWithoutRetry(t *testing.T) {
	dir := directoryWith("Block Producer", "Backend Developer", "Cardano", "Solana")
	dir.grantErr = connector.ErrPermissionDenied

	_, err := NewReconciler(dir).Reconcile(context.Background(), testProfile())
	if !errors.Is(err, connector.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if len(dir.grantCalls) != 1 {
		t.Fatalf("grant calls = %d, want exactly 1", len(dir.grantCalls))
	}
}
