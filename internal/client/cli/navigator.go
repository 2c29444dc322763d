package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/lostfound/internal/client/guard"
)

// maxRedirects bounds guard chains such as register -> login -> home.
const maxRedirects = 4

type navigator struct {
	requireAuth guard.Guard
	anonymous   guard.Guard
	location    string
}

func newNavigator(tokens guard.TokenChecker) *navigator {
	return &navigator{
		requireAuth: guard.RequireAuth(tokens),
		anonymous:   guard.RequireAnonymous(tokens),
		location:    guard.HomePath,
	}
}

// guardFor picks the guard protecting path.
func (n *navigator) guardFor(path string) guard.Guard {
	switch {
	case path == guard.LoginPath, path == "/register":
		return n.anonymous
	case isConfirmationPath(path):
		return n.requireAuth
	default:
		return guard.Public
	}
}

// navigate follows guard redirects and enters the first view that allows
// entry. It returns that view.
func (n *navigator) navigate(ctx context.Context, path string) string {
	for i := 0; i < maxRedirects; i++ {
		d := n.guardFor(path)(ctx, path)
		if d.Allow {
			break
		}
		path = d.Redirect
	}
	n.location = path
	return path
}

// isConfirmationPath matches "/<id>/confirmation".
func isConfirmationPath(path string) bool {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	return len(parts) == 2 && parts[0] != "" && parts[1] == "confirmation"
}

func (a *App) navigate(ctx context.Context, path string) string {
	loc := a.nav.navigate(ctx, path)
	if loc != path {
		a.log.Debug(ctx, "navigation redirected", "from", path, "to", loc)
	}
	return loc
}
