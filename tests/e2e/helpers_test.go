//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/alliancehub/backend/internal/adapter/postgres"
	announcementrepo "github.com/alliancehub/backend/internal/adapter/postgres/announcement"
	eventrepo "github.com/alliancehub/backend/internal/adapter/postgres/event"
	inviterepo "github.com/alliancehub/backend/internal/adapter/postgres/invite"
	pollrepo "github.com/alliancehub/backend/internal/adapter/postgres/poll"
	sessionrepo "github.com/alliancehub/backend/internal/adapter/postgres/session"
	"github.com/alliancehub/backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/alliancehub/backend/internal/adapter/postgres/user"
	"github.com/alliancehub/backend/internal/config"
	"github.com/alliancehub/backend/internal/domain"
	announcementsvc "github.com/alliancehub/backend/internal/service/announcement"
	authsvc "github.com/alliancehub/backend/internal/service/auth"
	eventsvc "github.com/alliancehub/backend/internal/service/event"
	invitesvc "github.com/alliancehub/backend/internal/service/invite"
	pollsvc "github.com/alliancehub/backend/internal/service/poll"
	usersvc "github.com/alliancehub/backend/internal/service/user"
	"github.com/alliancehub/backend/internal/transport/middleware"
	"github.com/alliancehub/backend/internal/transport/rest"
)

// referenceZone is the zone all event and slot times are authored in.
const referenceZone = "Europe/London"

// testServer is the full HTTP stack on top of the shared test database.
type testServer struct {
	*httptest.Server
	Pool *pgxpool.Pool
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Session: config.SessionConfig{
			CookieName: "session",
			TTL:        time.Hour,
			// The httptest server speaks plain HTTP; a Secure cookie
			// would never come back from the client jar.
			CookieSecure:     false,
			PasswordHashCost: 4,
		},
		Schedule: config.ScheduleConfig{ReferenceZone: referenceZone},
		Invite:   config.InviteConfig{TTL: time.Hour},
		CORS:     config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowedHeaders: "Content-Type"},
		Limits:   config.LimitsConfig{AuthPerMinute: 1000, APIPerMinute: 10000},
	}

	txm := postgres.NewTxManager(pool)
	users := userrepo.New(pool)
	sessions := sessionrepo.New(pool)
	events := eventrepo.New(pool)
	polls := pollrepo.New(pool)
	announcements := announcementrepo.New(pool)
	invites := inviterepo.New(pool)

	auth := authsvc.NewService(logger, users, sessions, invites, txm, cfg.Session.TTL, cfg.Session.PasswordHashCost)

	handlers := rest.Handlers{
		Auth:         rest.NewAuthHandler(auth, cfg.Session, logger),
		Event:        rest.NewEventHandler(eventsvc.NewService(logger, events, cfg.Schedule.ReferenceZone), logger),
		Poll:         rest.NewPollHandler(pollsvc.NewService(logger, polls, txm, cfg.Schedule.ReferenceZone), logger),
		Announcement: rest.NewAnnouncementHandler(announcementsvc.NewService(logger, announcements), logger),
		Invite:       rest.NewInviteHandler(invitesvc.NewService(logger, invites, cfg.Invite.TTL), logger),
		User:         rest.NewUserHandler(usersvc.NewService(logger, users), logger),
		Health:       rest.NewHealthHandler(pool, "e2e"),
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	srv := httptest.NewServer(rest.NewRouter(cfg, logger, auth, handlers, limiter))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, Pool: pool}
}

// newClient returns an HTTP client with its own cookie jar, i.e. one
// browser-like identity.
func (ts *testServer) newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// doJSON sends a JSON request and decodes the JSON response body (if any).
func (ts *testServer) doJSON(t *testing.T, client *http.Client, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

// doJSONList is doJSON for endpoints that return a JSON array.
func (ts *testServer) doJSONList(t *testing.T, client *http.Client, method, path string, body any) (int, []map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded []map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

const adminPassword = "correct-horse-battery"

// loginAdmin seeds an admin with a known password and logs them in on a
// fresh client.
func (ts *testServer) loginAdmin(t *testing.T) (*http.Client, domain.User) {
	t.Helper()

	admin := testhelper.SeedAdminWithPassword(t, ts.Pool, adminPassword)
	client := ts.newClient(t)

	status, _ := ts.doJSON(t, client, http.MethodPost, "/auth/login", map[string]string{
		"email":    admin.Email,
		"password": adminPassword,
	})
	require.Equal(t, http.StatusOK, status, "admin login")

	return client, admin
}

// signupMember mints an invite as the admin and signs up a brand new
// member on a fresh client.
func (ts *testServer) signupMember(t *testing.T, adminClient *http.Client, timezone string) (*http.Client, string) {
	t.Helper()

	status, created := ts.doJSON(t, adminClient, http.MethodPost, "/invites", map[string]string{
		"adminNickname": "recruit-" + uuid.NewString()[:8],
	})
	require.Equal(t, http.StatusCreated, status, "mint invite")

	nickname := "member-" + uuid.NewString()[:8]
	client := ts.newClient(t)
	status, _ = ts.doJSON(t, client, http.MethodPost, "/auth/signup", map[string]string{
		"inviteToken": created["token"].(string),
		"email":       nickname + "@example.com",
		"password":    "hunter2hunter2",
		"nickname":    nickname,
		"timezone":    timezone,
	})
	require.Equal(t, http.StatusCreated, status, "signup")

	return client, nickname
}
