package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alliancehub/backend/internal/adapter/postgres/testhelper"
	"github.com/alliancehub/backend/internal/adapter/postgres/user"
	"github.com/alliancehub/backend/internal/domain"
)

func newRepo(t *testing.T) (*user.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return user.New(pool), pool
}

func assertIsDomainError(t *testing.T, err, want error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %v, got nil", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected error %v, got %v", want, err)
	}
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	suffix := uuid.New().String()[:8]
	got, err := repo.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        "officer-" + suffix + "@example.com",
		Nickname:     "officer-" + suffix,
		Name:         "Officer",
		Timezone:     "Europe/Berlin",
		Role:         domain.UserRoleMember,
		PasswordHash: "$2a$12$hash",
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone mismatch: got %q", got.Timezone)
	}
	if got.Role != domain.UserRoleMember {
		t.Errorf("Role mismatch: got %s", got.Role)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestRepo_Create_DuplicateNickname(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	existing := testhelper.SeedUser(t, pool)

	_, err := repo.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        "other-" + uuid.New().String()[:8] + "@example.com",
		Nickname:     existing.Nickname,
		Role:         domain.UserRoleMember,
		PasswordHash: "$2a$12$hash",
	})
	assertIsDomainError(t, err, domain.ErrAlreadyExists)
}

func TestRepo_GetByEmail(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedUser(t, pool)

	got, err := repo.GetByEmail(ctx, seeded.Email)
	if err != nil {
		t.Fatalf("GetByEmail: unexpected error: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, seeded.ID)
	}
	if got.PasswordHash != seeded.PasswordHash {
		t.Error("PasswordHash should round-trip")
	}
}

func TestRepo_GetByNickname_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByNickname(context.Background(), "no-such-member-"+uuid.New().String()[:8])
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_UpdateTimezone(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedUser(t, pool)

	got, err := repo.UpdateTimezone(ctx, seeded.ID, "Asia/Tokyo")
	if err != nil {
		t.Fatalf("UpdateTimezone: unexpected error: %v", err)
	}
	if got.Timezone != "Asia/Tokyo" {
		t.Errorf("Timezone mismatch: got %q", got.Timezone)
	}
}

func TestRepo_List_SortedByNickname(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	testhelper.SeedUser(t, pool)
	testhelper.SeedUser(t, pool)

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(users) < 2 {
		t.Fatalf("expected at least 2 users, got %d", len(users))
	}
	for i := 1; i < len(users); i++ {
		if users[i-1].Nickname > users[i].Nickname {
			t.Fatalf("roster not sorted: %q before %q", users[i-1].Nickname, users[i].Nickname)
		}
	}
}
