package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostedstar/mbticli/internal/client/api"
	"github.com/frostedstar/mbticli/internal/client/guard"
	"github.com/frostedstar/mbticli/internal/client/session"
	"github.com/frostedstar/mbticli/internal/client/storage"
	"github.com/frostedstar/mbticli/internal/client/stores/questionnaires"
	"github.com/frostedstar/mbticli/internal/client/stores/tests"
	"github.com/frostedstar/mbticli/internal/client/uistate"
)

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func envelope(v any) map[string]any {
	return map[string]any{"success": true, "data": v}
}

// newTestApp wires an App against an httptest server, with in-memory state
// storage instead of SQLite.
func newTestApp(t *testing.T, handler http.Handler, lines ...string) (*App, *storage.Memory) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	kv := storage.NewMemory()
	tokens := api.TokenProviderFunc(func() string {
		v, _ := kv.Get(context.Background(), storage.KeyToken)
		return string(v)
	})
	client := api.New(srv.URL, tokens, nil)

	sess := session.NewManager(client, kv, nil)
	ui := uistate.NewStore(context.Background(), kv, nil)

	client.OnUnauthorized = func() {
		sess.Invalidate(context.Background())
		ui.OpenLogin(context.Background())
	}

	return &App{
		api:     client,
		session: sess,
		ui:      ui,
		guard:   guard.New(sess),
		qs:      questionnaires.NewStore(client, nil),
		ts:      tests.NewStore(client, nil),
		reader:  readerFromLines(lines...),
	}, kv
}

func TestAppLogin_EstablishesSession(t *testing.T) {
	silencePrint(t)

	oldRead := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("hunter2"), nil }
	t.Cleanup(func() { readPassword = oldRead })

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-abc", "userId": 7, "username": "alice", "roles": []string{"USER"},
		})
	})
	mux.HandleFunc("GET /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(envelope(map[string]any{
			"userId": 7, "username": "alice", "email": "a@b.c", "role": "USER",
		}))
	})
	serverLogouts := 0
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		serverLogouts++
		_ = json.NewEncoder(w).Encode(envelope(nil))
	})

	app, kv := newTestApp(t, mux, "alice")

	require.NoError(t, app.Login(context.Background()))

	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "(alice)", app.status())

	tok, err := kv.Get(context.Background(), storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", string(tok))

	require.NoError(t, app.Logout(context.Background()))

	assert.False(t, app.isLoggedIn())
	assert.Equal(t, 1, serverLogouts)
	tok, err = kv.Get(context.Background(), storage.KeyToken)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestAppStatus_AdminDecoration(t *testing.T) {
	app, kv := newTestApp(t, http.NewServeMux())

	assert.Equal(t, "", app.status())

	u, err := json.Marshal(api.User{UserID: 1, Username: "root", Role: api.RoleAdmin})
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), storage.KeyUserInfo, u))
	require.NoError(t, kv.Set(context.Background(), storage.KeyToken, []byte("opaque-token")))
	require.True(t, app.session.CheckLoginStatus(context.Background()))

	assert.Equal(t, "(root ADMIN)", app.status())
}

func TestAppWhoami_NotLoggedIn(t *testing.T) {
	silencePrint(t)

	app, _ := newTestApp(t, http.NewServeMux())
	require.NoError(t, app.Whoami(context.Background()))
	assert.False(t, app.isLoggedIn())
}

func TestAppAdminCommand_DeniedForAnonymous(t *testing.T) {
	silencePrint(t)

	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	app, _ := newTestApp(t, mux)

	require.NoError(t, app.Users(context.Background()))
	assert.False(t, called, "guard should stop the request before the transport")
}

func TestAppList_AdminSeesUnpublished(t *testing.T) {
	origPrint := printlnFn
	var printed []string
	printlnFn = func(args ...any) (int, error) {
		for _, a := range args {
			if s, ok := a.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/questionnaires", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(envelope(map[string]any{
			"content": []map[string]any{
				{"questionnaireId": 1, "title": "Live", "isPublished": true},
				{"questionnaireId": 2, "title": "Draft", "isPublished": false},
			},
			"last": true,
		}))
	})

	app, kv := newTestApp(t, mux)

	u, err := json.Marshal(api.User{UserID: 1, Username: "root", Role: api.RoleAdmin})
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), storage.KeyUserInfo, u))
	require.NoError(t, kv.Set(context.Background(), storage.KeyToken, []byte("opaque-token")))
	require.True(t, app.session.CheckLoginStatus(context.Background()))

	require.NoError(t, app.List(context.Background()))

	joined := strings.Join(printed, "\n")
	assert.Contains(t, joined, "Draft")
	assert.Contains(t, joined, "unpublished")
	assert.Contains(t, joined, "Live")
}

func TestAppUnauthorized_RaisesLoginPrompt(t *testing.T) {
	silencePrint(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/test/results", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	app, kv := newTestApp(t, mux)

	// Plant a live-looking session so the guard lets the command through.
	require.NoError(t, kv.Set(context.Background(), storage.KeyToken, []byte("opaque-token")))
	require.True(t, app.session.CheckLoginStatus(context.Background()))

	_ = app.Results(context.Background())

	assert.False(t, app.isLoggedIn())
	assert.True(t, app.loginPromptPending())
}
