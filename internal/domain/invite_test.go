package domain

import (
	"testing"
	"time"
)

func TestInvitationToken_IsRedeemable(t *testing.T) {
	t.Parallel()

	now := time.Now()

	fresh := InvitationToken{ExpiresAt: now.Add(time.Hour)}
	if !fresh.IsRedeemable(now) {
		t.Error("unused, unexpired token should be redeemable")
	}

	used := InvitationToken{ExpiresAt: now.Add(time.Hour), Used: true}
	if used.IsRedeemable(now) {
		t.Error("used token must not be redeemable")
	}

	expired := InvitationToken{ExpiresAt: now.Add(-time.Minute)}
	if expired.IsRedeemable(now) {
		t.Error("expired token must not be redeemable")
	}
}

func TestSession_NeedsRenewal(t *testing.T) {
	t.Parallel()

	now := time.Now()
	ttl := 30 * 24 * time.Hour

	young := Session{ExpiresAt: now.Add(ttl)}
	if young.NeedsRenewal(now, ttl) {
		t.Error("fresh session should not need renewal")
	}

	old := Session{ExpiresAt: now.Add(ttl/2 - time.Hour)}
	if !old.NeedsRenewal(now, ttl) {
		t.Error("session past half life should need renewal")
	}
}
