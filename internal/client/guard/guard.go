// Package guard gates navigation. Deciding is a pure function of the target's
// metadata and the current session state; the only side effect it may cause is
// a session initialize to cover restart races.
package guard

import (
	"context"

	"github.com/frostedstar/mbticli/internal/client/api"
)

// Route is the navigation target's metadata.
type Route struct {
	Name          string
	RequiresAuth  bool
	RequiresAdmin bool
}

// Session is the slice of session state the guard consults.
// *session.Manager satisfies it.
type Session interface {
	IsLoggedIn() bool
	Role() api.Role
	Initialize(ctx context.Context)
}

// Decision says whether to proceed, and where to send the user otherwise.
type Decision struct {
	Allowed    bool
	RedirectTo string
	Reason     string
}

// FallbackRoute is where denied navigations land.
const FallbackRoute = "questionnaires"

// Guard decides navigations against a Session.
type Guard struct {
	session Session
}

func New(session Session) *Guard {
	return &Guard{session: session}
}

// Decide evaluates a navigation. When the target needs auth and the session
// looks logged out, it initializes the session first: after a restart the
// evidence may be persisted but not yet loaded.
func (g *Guard) Decide(ctx context.Context, route Route) Decision {
	needsSession := route.RequiresAuth || route.RequiresAdmin

	if needsSession && !g.session.IsLoggedIn() {
		g.session.Initialize(ctx)
	}

	if needsSession && !g.session.IsLoggedIn() {
		return Decision{RedirectTo: FallbackRoute, Reason: "login required"}
	}

	if route.RequiresAdmin && g.session.Role() != api.RoleAdmin {
		return Decision{RedirectTo: FallbackRoute, Reason: "admin privileges required"}
	}

	return Decision{Allowed: true}
}
