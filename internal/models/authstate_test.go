package models

import "testing"

func TestCanTransitionAuth(t *testing.T) {
	allowed := [][2]string{
		{AuthLoading, AuthAuthenticated},
		{AuthLoading, AuthUnauthenticated},
		{AuthLoading, AuthPendingVerification},
		{AuthAuthenticated, AuthUnauthenticated},
		{AuthPendingVerification, AuthAuthenticated},
		{AuthPendingVerification, AuthUnauthenticated},
		{AuthUnauthenticated, AuthAuthenticated},
		{AuthUnauthenticated, AuthPendingVerification},
		{AuthAuthenticated, AuthAuthenticated},
	}
	for _, tr := range allowed {
		if !CanTransitionAuth(tr[0], tr[1]) {
			t.Fatalf("expected %s -> %s allowed", tr[0], tr[1])
		}
	}

	denied := [][2]string{
		{AuthAuthenticated, AuthLoading},
		{AuthAuthenticated, AuthPendingVerification},
		{AuthUnauthenticated, AuthLoading},
		{"bogus", AuthAuthenticated},
	}
	for _, tr := range denied {
		if CanTransitionAuth(tr[0], tr[1]) {
			t.Fatalf("expected %s -> %s denied", tr[0], tr[1])
		}
	}
}

func TestAuthStateFor(t *testing.T) {
	if got := AuthStateFor(nil); got != AuthUnauthenticated {
		t.Fatalf("nil account: got %s", got)
	}

	selfSignup := &PortalAccount{CreatedVia: CreatedViaSelfSignup}
	if got := AuthStateFor(selfSignup); got != AuthPendingVerification {
		t.Fatalf("unverified self-signup: got %s", got)
	}

	selfSignup.EmailVerified = true
	if got := AuthStateFor(selfSignup); got != AuthAuthenticated {
		t.Fatalf("verified self-signup: got %s", got)
	}

	invited := &PortalAccount{CreatedVia: CreatedViaInvite}
	if got := AuthStateFor(invited); got != AuthAuthenticated {
		t.Fatalf("invited account: got %s", got)
	}
}
