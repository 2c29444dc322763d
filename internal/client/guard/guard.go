// Package guard decides whether a view may be entered with the current
// session. Presence of a token is all that is checked; the server finds
// out whether it is still valid on the first call the view makes.
package guard

import "context"

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// TokenChecker reports whether a session token is stored.
type TokenChecker interface {
	HasToken(ctx context.Context) bool
}

// Decision is the outcome of a guard. When Allow is false the caller must
// navigate to Redirect instead of the requested view.
type Decision struct {
	Allow    bool
	Redirect string
	// From is the location that was requested when redirecting to login.
	From string
}

// Guard evaluates a navigation to location.
type Guard func(ctx context.Context, location string) Decision

// RequireAuth admits only users with a session. Others are sent to the
// login view with the requested location preserved in From.
func RequireAuth(tokens TokenChecker) Guard {
	return func(ctx context.Context, location string) Decision {
		if tokens.HasToken(ctx) {
			return Decision{Allow: true}
		}
		return Decision{Redirect: LoginPath, From: location}
	}
}

// RequireAnonymous admits only users without a session. Signed-in users are
// sent home.
func RequireAnonymous(tokens TokenChecker) Guard {
	return func(ctx context.Context, _ string) Decision {
		if tokens.HasToken(ctx) {
			return Decision{Redirect: HomePath}
		}
		return Decision{Allow: true}
	}
}

// Public admits everybody.
func Public(context.Context, string) Decision {
	return Decision{Allow: true}
}
