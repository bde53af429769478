package models

// Portal session states. The old portal tracked three independent booleans
// (loading, isAuthenticated, customer != nil) that could drift; this is a
// single typed state instead.
const (
	AuthLoading             = "loading"
	AuthAuthenticated       = "authenticated"
	AuthUnauthenticated     = "unauthenticated"
	AuthPendingVerification = "pending_verification"
)

var authTransitions = map[string]map[string]struct{}{
	AuthLoading: {
		AuthAuthenticated:       {},
		AuthUnauthenticated:     {},
		AuthPendingVerification: {},
	},
	AuthAuthenticated: {
		AuthUnauthenticated: {},
	},
	AuthPendingVerification: {
		AuthAuthenticated:   {},
		AuthUnauthenticated: {},
	},
	AuthUnauthenticated: {
		AuthAuthenticated:       {},
		AuthPendingVerification: {},
	},
}

// CanTransitionAuth reports whether a portal session may move between the
// two states. Same-state transitions are allowed (auth event replays).
func CanTransitionAuth(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := authTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// AuthStateFor resolves the state for a loaded account. Unverified
// self-signup accounts are pending verification rather than silently kept
// authenticated through sign-out events.
func AuthStateFor(account *PortalAccount) string {
	if account == nil {
		return AuthUnauthenticated
	}
	if account.CreatedVia == CreatedViaSelfSignup && !account.EmailVerified {
		return AuthPendingVerification
	}
	return AuthAuthenticated
}
