// Package cli is the interactive terminal client. It owns no business state
// itself: every command goes through the session manager or a domain store.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	_ "modernc.org/sqlite"

	"github.com/frostedstar/mbticli/internal/client/api"
	"github.com/frostedstar/mbticli/internal/client/config"
	"github.com/frostedstar/mbticli/internal/client/guard"
	"github.com/frostedstar/mbticli/internal/client/session"
	"github.com/frostedstar/mbticli/internal/client/storage"
	"github.com/frostedstar/mbticli/internal/client/stores/questionnaires"
	"github.com/frostedstar/mbticli/internal/client/stores/tests"
	"github.com/frostedstar/mbticli/internal/client/uistate"
	"github.com/frostedstar/mbticli/internal/logging"
)

// App wires the client components together and carries them through the REPL.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	api     *api.Client
	session *session.Manager
	ui      *uistate.Store
	guard   *guard.Guard
	qs      *questionnaires.Store
	ts      *tests.Store
	reader  *bufio.Reader
}

// NewApp is the composition root: storage, API client, stores, and the 401
// hook that links the transport back to session and UI state.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	db, err := storage.Open(ctx, c.StateDBPath)
	if err != nil {
		log.Error(ctx, "failed to open state database", "path", c.StateDBPath, "error", err)
		return nil, err
	}
	kv := storage.NewSQLite(db)

	tokens := api.TokenProviderFunc(func() string {
		v, err := kv.Get(context.Background(), storage.KeyToken)
		if err != nil {
			log.Error(context.Background(), "failed to read token", "error", err)
			return ""
		}
		return string(v)
	})

	client := api.New(c.ServerURL, tokens, log.With("component", "api"))
	client.SetTimeout(c.RequestTimeout)

	sess := session.NewManager(client, kv, log.With("component", "session"))
	ui := uistate.NewStore(ctx, kv, log.With("component", "uistate"))

	// On 401 the transport only signals; invalidation and the re-login
	// prompt happen here, outside the HTTP layer.
	client.OnUnauthorized = func() {
		bg := context.Background()
		sess.Invalidate(bg)
		ui.OpenLogin(bg)
	}

	return &App{
		config:  c,
		log:     log,
		db:      db,
		api:     client,
		session: sess,
		ui:      ui,
		guard:   guard.New(sess),
		qs:      questionnaires.NewStore(client, log.With("component", "questionnaires")),
		ts:      tests.NewStore(client, log.With("component", "tests")),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run initializes the session and enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Initialize(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// Close releases the state database.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

func (a *App) isAdmin() bool {
	return a.session.Role() == api.RoleAdmin
}

// loginPromptPending reports whether a 401 left the re-login prompt raised.
func (a *App) loginPromptPending() bool {
	return a.ui.LoginDialogOpen()
}

// status builds the prompt decoration, e.g. "(alice ADMIN)".
func (a *App) status() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	s := u.Username
	if u.Role == api.RoleAdmin {
		s += " " + string(u.Role)
	}
	return "(" + s + ")"
}

// allowed runs the guard for a route and reports the denial to the user.
func (a *App) allowed(ctx context.Context, route guard.Route) bool {
	d := a.guard.Decide(ctx, route)
	if !d.Allowed {
		printlnFn("Access denied: " + d.Reason + " (see '" + d.RedirectTo + "')")
	}
	return d.Allowed
}
