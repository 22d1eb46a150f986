package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/alliancehub/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a MEMBER user with generated email and nickname.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUser(t, pool, domain.UserRoleMember)
}

// SeedAdmin creates an ADMIN user with generated email and nickname.
func SeedAdmin(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUser(t, pool, domain.UserRoleAdmin)
}

func seedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "member-" + suffix + "@example.com",
		Nickname:     "member-" + suffix,
		Name:         "Member " + suffix,
		Timezone:     "UTC",
		Role:         role,
		PasswordHash: "$2a$12$test-hash-" + suffix,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, nickname, name, timezone, role, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Email, user.Nickname, user.Name, user.Timezone, string(user.Role), user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedAdminWithPassword creates an ADMIN user whose password hash matches
// the given plaintext, so the user can log in through the HTTP API.
func SeedAdminWithPassword(t *testing.T, pool *pgxpool.Pool, password string) domain.User {
	t.Helper()

	// MinCost keeps the hash cheap; the login path accepts any cost.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("testhelper: hash password: %v", err)
	}

	user := seedUser(t, pool, domain.UserRoleAdmin)
	if _, err := pool.Exec(context.Background(),
		`UPDATE users SET password_hash = $2 WHERE id = $1`, user.ID, string(hash),
	); err != nil {
		t.Fatalf("testhelper: set password hash: %v", err)
	}
	user.PasswordHash = string(hash)
	return user
}

// SeedEvent creates an event owned by the given user.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, createdBy uuid.UUID) domain.Event {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	event := domain.Event{
		ID:          uuid.New(),
		Title:       "Event " + suffix,
		Description: "Seeded event",
		Day:         domain.Wednesday,
		TimeOfDay:   "20:00",
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO events (id, title, description, day_of_week, time_of_day, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.Title, event.Description, string(event.Day), event.TimeOfDay, event.CreatedBy, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent insert event: %v", err)
	}

	return event
}

// SeedTimePoll creates a TIME poll with slots in the given authoring order.
func SeedTimePoll(t *testing.T, pool *pgxpool.Pool, createdBy uuid.UUID, slotCount int) (domain.Poll, []domain.TimeSlot) {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	poll := domain.Poll{
		ID:          uuid.New(),
		Type:        domain.PollTypeTime,
		Title:       "Time poll " + suffix,
		Description: "Seeded time poll",
		CreatedBy:   createdBy,
		CreatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO polls (id, type, title, description, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		poll.ID, string(poll.Type), poll.Title, poll.Description, poll.CreatedBy, poll.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTimePoll insert poll: %v", err)
	}

	days := domain.DaysOfWeek()
	slots := make([]domain.TimeSlot, slotCount)
	for i := range slots {
		slots[i] = domain.TimeSlot{
			ID:        uuid.New(),
			PollID:    poll.ID,
			Day:       days[i%len(days)],
			TimeOfDay: "19:30",
			Position:  i,
		}

		_, err := pool.Exec(ctx,
			`INSERT INTO time_slots (id, poll_id, day_of_week, time_of_day, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			slots[i].ID, slots[i].PollID, string(slots[i].Day), slots[i].TimeOfDay, slots[i].Position,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedTimePoll insert slot[%d]: %v", i, err)
		}
	}

	return poll, slots
}

// SeedInvite creates an unused invitation token expiring in 30 days.
func SeedInvite(t *testing.T, pool *pgxpool.Pool, createdBy uuid.UUID) domain.InvitationToken {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	token := domain.InvitationToken{
		Token:         uuid.New(),
		AdminNickname: "invitee-" + uniqueSuffix(),
		CreatedBy:     createdBy,
		ExpiresAt:     now.Add(30 * 24 * time.Hour),
		CreatedAt:     now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO invitation_tokens (token, admin_nickname, created_by, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		token.Token, token.AdminNickname, token.CreatedBy, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedInvite insert token: %v", err)
	}

	return token
}
