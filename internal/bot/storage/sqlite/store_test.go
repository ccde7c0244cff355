package sqlite

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/midnight-community/gatekeeper/internal/bot/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir() + "/profiles.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUpsertPrimaryRoleCreatesAndUpdates(t *testing.T) {
	store := openTestStore(t)

	if err := store.UpsertPrimaryRole(context.Background(), "user-1", "Beginner"); err != nil {
		t.Fatalf("upsert primary role: %v", err)
	}
	profile, err := store.GetProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.PrimaryRole != "Beginner" {
		t.Fatalf("primary_role = %q, want Beginner", profile.PrimaryRole)
	}

	if err := store.UpsertPrimaryRole(context.Background(), "user-1", "Dapp Developer"); err != nil {
		t.Fatalf("re-upsert primary role: %v", err)
	}
	profile, err = store.GetProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get profile after update: %v", err)
	}
	if profile.PrimaryRole != "Dapp Developer" {
		t.Fatalf("primary_role = %q, want Dapp Developer", profile.PrimaryRole)
	}
}

// Repeating step 1 must not clobber values written by later steps.
func TestUpsertPrimaryRolePreservesLaterFields(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.UpsertPrimaryRole(ctx, "user-1", "Block Producer"); err != nil {
		t.Fatalf("upsert primary role: %v", err)
	}
	if err := store.SetSubRoles(ctx, "user-1", []string{"DevOps Engineer", "Backend Developer"}); err != nil {
		t.Fatalf("set sub roles: %v", err)
	}
	if err := store.SetEcosystems(ctx, "user-1", []string{"Cardano", "Solana"}); err != nil {
		t.Fatalf("set ecosystems: %v", err)
	}
	if err := store.SetProfileLinks(ctx, "user-1", "https://github.com/one", "https://x.com/one"); err != nil {
		t.Fatalf("set profile links: %v", err)
	}
	if err := store.SetAgreed(ctx, "user-1"); err != nil {
		t.Fatalf("set agreed: %v", err)
	}

	if err := store.UpsertPrimaryRole(ctx, "user-1", "Contributor"); err != nil {
		t.Fatalf("repeat primary role: %v", err)
	}

	profile, err := store.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.PrimaryRole != "Contributor" {
		t.Fatalf("primary_role = %q, want Contributor", profile.PrimaryRole)
	}
	assertSetEqual(t, profile.SubRoles, []string{"Backend Developer", "DevOps Engineer"})
	assertSetEqual(t, profile.Ecosystems, []string{"Cardano", "Solana"})
	if profile.GitHub != "https://github.com/one" {
		t.Fatalf("github = %q, want preserved link", profile.GitHub)
	}
	if profile.Twitter != "https://x.com/one" {
		t.Fatalf("twitter = %q, want preserved link", profile.Twitter)
	}
	if !profile.AgreedToTerms {
		t.Fatal("agreed_to_terms flag should survive a repeated step-1 submission")
	}
}

func TestSetListFieldsRequireExistingProfile(t *testing.T) {
	store := openTestStore(t)

	err := store.SetSubRoles(context.Background(), "ghost", []string{"Backend Developer"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("set sub roles without profile: got %v, want ErrNotFound", err)
	}
	err = store.SetEcosystems(context.Background(), "ghost", []string{"Cardano"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("set ecosystems without profile: got %v, want ErrNotFound", err)
	}
	err = store.SetProfileLinks(context.Background(), "ghost", "https://github.com/g", "https://x.com/g")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("set links without profile: got %v, want ErrNotFound", err)
	}
	err = store.SetAgreed(context.Background(), "ghost")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("set agreed without profile: got %v, want ErrNotFound", err)
	}
}

func TestSetListFieldsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.UpsertPrimaryRole(ctx, "user-1", "Beginner"); err != nil {
		t.Fatalf("upsert primary role: %v", err)
	}
	if err := store.SetSubRoles(ctx, "user-1", []string{"Frontend Developer"}); err != nil {
		t.Fatalf("set sub roles: %v", err)
	}
	if err := store.SetSubRoles(ctx, "user-1", nil); err != nil {
		t.Fatalf("clear sub roles: %v", err)
	}

	profile, err := store.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if len(profile.SubRoles) != 0 {
		t.Fatalf("sub_roles = %v, want empty after clearing", profile.SubRoles)
	}
}

func TestSetProfileLinksConflictLeavesBothProfilesUnchanged(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.UpsertPrimaryRole(ctx, "user-1", "Contributor"); err != nil {
		t.Fatalf("upsert user-1: %v", err)
	}
	if err := store.SetProfileLinks(ctx, "user-1", "https://github.com/one", "https://x.com/one"); err != nil {
		t.Fatalf("set user-1 links: %v", err)
	}
	if err := store.UpsertPrimaryRole(ctx, "user-2", "Beginner"); err != nil {
		t.Fatalf("upsert user-2: %v", err)
	}

	err := store.SetProfileLinks(ctx, "user-2", "https://github.com/one", "https://x.com/two")
	if !errors.Is(err, storage.ErrLinkInUse) {
		t.Fatalf("duplicate github link: got %v, want ErrLinkInUse", err)
	}
	err = store.SetProfileLinks(ctx, "user-2", "https://github.com/two", "https://x.com/one")
	if !errors.Is(err, storage.ErrLinkInUse) {
		t.Fatalf("duplicate twitter link: got %v, want ErrLinkInUse", err)
	}

	first, err := store.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("get user-1: %v", err)
	}
	if first.GitHub != "https://github.com/one" || first.Twitter != "https://x.com/one" {
		t.Fatalf("user-1 links changed: %q %q", first.GitHub, first.Twitter)
	}
	second, err := store.GetProfile(ctx, "user-2")
	if err != nil {
		t.Fatalf("get user-2: %v", err)
	}
	if second.GitHub != "" || second.Twitter != "" {
		t.Fatalf("user-2 links should stay unset after conflicts: %q %q", second.GitHub, second.Twitter)
	}
}

func TestSetProfileLinksIdempotentForSameUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.UpsertPrimaryRole(ctx, "user-1", "Contributor"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.SetProfileLinks(ctx, "user-1", "https://github.com/one", "https://x.com/one"); err != nil {
		t.Fatalf("set links: %v", err)
	}
	// Resubmitting the same step with the same values must not conflict
	// against the member's own row.
	if err := store.SetProfileLinks(ctx, "user-1", "https://github.com/one", "https://x.com/one"); err != nil {
		t.Fatalf("resubmit links: %v", err)
	}
}

func TestFindProfileByLinkMatchesEitherColumn(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.UpsertPrimaryRole(ctx, "user-1", "Contributor"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.SetProfileLinks(ctx, "user-1", "https://github.com/one", "https://x.com/one"); err != nil {
		t.Fatalf("set links: %v", err)
	}

	byGitHub, err := store.FindProfileByLink(ctx, "https://github.com/one")
	if err != nil {
		t.Fatalf("find by github: %v", err)
	}
	if byGitHub.UserID != "user-1" {
		t.Fatalf("find by github user = %q, want user-1", byGitHub.UserID)
	}
	byTwitter, err := store.FindProfileByLink(ctx, "https://x.com/one")
	if err != nil {
		t.Fatalf("find by twitter: %v", err)
	}
	if byTwitter.UserID != "user-1" {
		t.Fatalf("find by twitter user = %q, want user-1", byTwitter.UserID)
	}

	if _, err := store.FindProfileByLink(ctx, "https://github.com/none"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("find missing link: got %v, want ErrNotFound", err)
	}
}

func TestGetProfileMissing(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.GetProfile(context.Background(), "ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing profile: got %v, want ErrNotFound", err)
	}
}

func assertSetEqual(t *testing.T, got []string, want []string) {
	t.Helper()
	gotSorted := append([]string(nil), got...)
	wantSorted := append([]string(nil), want...)
	sort.Strings(gotSorted)
	sort.Strings(wantSorted)
	if len(gotSorted) != len(wantSorted) {
		t.Fatalf("set = %v, want %v", got, want)
	}
	for i := range gotSorted {
		if gotSorted[i] != wantSorted[i] {
			t.Fatalf("set = %v, want %v", got, want)
		}
	}
}
