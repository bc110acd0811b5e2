// Package session owns the authoritative in-memory record of who is logged
// in, synchronized with the persisted session evidence (the bearer token).
//
// Logical state machine: LoggedOut → (login success) → LoggedIn → (logout |
// 401 invalidation | evidence mismatch) → LoggedOut. There is no persisted
// intermediate state beyond a transient busy flag.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frostedstar/mbticli/internal/client/api"
	"github.com/frostedstar/mbticli/internal/client/storage"
	"github.com/frostedstar/mbticli/internal/logging"
)

// Client is the slice of the API surface the session manager needs.
// *api.Client satisfies it; tests provide fakes.
type Client interface {
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	Register(ctx context.Context, username, password, email string) (*api.User, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, email string) (*api.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	CheckUsername(ctx context.Context, username string) (bool, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
}

// Manager reconciles the in-memory login state with the evidence in storage.
// All mutation goes through named operations; there is no ambient global.
type Manager struct {
	client Client
	kv     storage.KV
	log    logging.Logger

	mu       sync.RWMutex
	user     *api.User
	loggedIn bool
	busy     bool
}

func NewManager(client Client, kv storage.KV, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{client: client, kv: kv, log: log}
}

// Initialize is the single startup entry point: reconcile persisted evidence,
// then refresh the profile when a session survives.
func (m *Manager) Initialize(ctx context.Context) {
	if m.CheckLoginStatus(ctx) {
		m.FetchUserProfile(ctx)
	}
}

// Login authenticates, persists the token, seeds the user snapshot from the
// login payload and refreshes it from the profile endpoint. A nil error means
// the session is established.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.setBusy(true)
	defer m.setBusy(false)

	res, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.log.Warn(ctx, "login failed", "username", username, "error", err)
		return err
	}

	if err := m.kv.Set(ctx, storage.KeyToken, []byte(res.Token)); err != nil {
		// Without persisted evidence the session would not survive a
		// restart and checkLoginStatus would report a mismatch, so this
		// counts as a failed login despite the successful HTTP call.
		m.log.Error(ctx, "failed to persist token", "error", err)
		return err
	}

	seed := &api.User{UserID: res.UserID, Username: res.Username, Role: primaryRole(res.Roles)}
	m.setUser(ctx, seed, true)

	m.FetchUserProfile(ctx)

	m.log.Info(ctx, "logged in", "username", username)
	return nil
}

// Register creates an account. It does not log the user in.
func (m *Manager) Register(ctx context.Context, username, password, email string) error {
	m.setBusy(true)
	defer m.setBusy(false)

	if _, err := m.client.Register(ctx, username, password, email); err != nil {
		m.log.Warn(ctx, "registration failed", "username", username, "error", err)
		return err
	}
	m.log.Info(ctx, "registered", "username", username)
	return nil
}

// Logout notifies the server best-effort, then unconditionally clears local
// state. Calling it while logged out is a no-op and never fails.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.RLock()
	wasLoggedIn := m.loggedIn
	m.mu.RUnlock()

	if wasLoggedIn {
		if err := m.client.Logout(ctx); err != nil {
			m.log.Warn(ctx, "server logout failed, clearing local state anyway", "error", err)
		}
	}
	m.clearLocal(ctx)
}

// Invalidate drops the session without telling the server. Wired to the HTTP
// client's 401 hook.
func (m *Manager) Invalidate(ctx context.Context) {
	m.log.Warn(ctx, "session invalidated")
	m.clearLocal(ctx)
}

// FetchUserProfile refreshes the cached user snapshot. A no-op while logged
// out; an authorization failure logs the user out.
func (m *Manager) FetchUserProfile(ctx context.Context) {
	if !m.IsLoggedIn() {
		return
	}

	u, err := m.client.GetProfile(ctx)
	if err != nil {
		m.log.Warn(ctx, "profile refresh failed", "error", err)
		if errors.Is(err, api.ErrUnauthorized) {
			m.Logout(ctx)
		}
		return
	}
	if u == nil {
		return
	}
	m.setUser(ctx, u, true)
}

// CheckLoginStatus reconciles memory with persisted evidence: logged in iff a
// token is stored and not expired. A user snapshot without a token is stale
// and gets cleared (self-heal).
func (m *Manager) CheckLoginStatus(ctx context.Context) bool {
	tok, err := m.kv.Get(ctx, storage.KeyToken)
	if err != nil {
		m.log.Error(ctx, "failed to read token", "error", err)
	}

	if len(tok) == 0 || tokenExpired(string(tok)) {
		if len(tok) > 0 {
			m.log.Info(ctx, "stored token expired, clearing")
		}
		m.clearLocal(ctx)
		return false
	}

	m.mu.Lock()
	m.loggedIn = true
	if m.user == nil {
		if raw, err := m.kv.Get(ctx, storage.KeyUserInfo); err == nil && len(raw) > 0 {
			var u api.User
			if json.Unmarshal(raw, &u) == nil {
				m.user = &u
			}
		}
	}
	m.mu.Unlock()
	return true
}

// UpdateProfile changes the email and refreshes the snapshot on success.
func (m *Manager) UpdateProfile(ctx context.Context, email string) error {
	m.setBusy(true)
	defer m.setBusy(false)

	u, err := m.client.UpdateProfile(ctx, email)
	if err != nil {
		m.log.Warn(ctx, "profile update failed", "error", err)
		return err
	}
	m.setUser(ctx, u, true)
	return nil
}

// ChangePassword swaps the password. The session stays valid.
func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	m.setBusy(true)
	defer m.setBusy(false)
	return m.client.ChangePassword(ctx, oldPassword, newPassword)
}

// CheckUsernameExists probes whether a username is taken. Fails open: any
// transport error reads as "does not exist". This is a form-validation
// affordance, not a security control.
func (m *Manager) CheckUsernameExists(ctx context.Context, username string) bool {
	exists, err := m.client.CheckUsername(ctx, username)
	if err != nil {
		m.log.Warn(ctx, "username check failed, assuming free", "error", err)
		return false
	}
	return exists
}

// CheckEmailExists probes whether an email is registered. Fails open like
// CheckUsernameExists.
func (m *Manager) CheckEmailExists(ctx context.Context, email string) bool {
	exists, err := m.client.CheckEmail(ctx, email)
	if err != nil {
		m.log.Warn(ctx, "email check failed, assuming free", "error", err)
		return false
	}
	return exists
}

// IsLoggedIn reports the in-memory login flag.
func (m *Manager) IsLoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loggedIn
}

// User returns a copy of the cached snapshot, or nil while logged out.
func (m *Manager) User() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Role returns the cached user's role, or "" when unknown.
func (m *Manager) Role() api.Role {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return ""
	}
	return m.user.Role
}

// Busy reports whether a login/register/update call is in flight. It is a
// UI hint, not a lock.
func (m *Manager) Busy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.busy
}

func (m *Manager) setBusy(b bool) {
	m.mu.Lock()
	m.busy = b
	m.mu.Unlock()
}

func (m *Manager) setUser(ctx context.Context, u *api.User, persist bool) {
	m.mu.Lock()
	m.user = u
	m.loggedIn = u != nil
	m.mu.Unlock()

	if persist && u != nil {
		if raw, err := json.Marshal(u); err == nil {
			if err := m.kv.Set(ctx, storage.KeyUserInfo, raw); err != nil {
				m.log.Error(ctx, "failed to persist user snapshot", "error", err)
			}
		}
	}
}

func (m *Manager) clearLocal(ctx context.Context) {
	if err := m.kv.Delete(ctx, storage.KeyToken); err != nil {
		m.log.Error(ctx, "failed to clear token", "error", err)
	}
	if err := m.kv.Delete(ctx, storage.KeyUserInfo); err != nil {
		m.log.Error(ctx, "failed to clear user snapshot", "error", err)
	}

	m.mu.Lock()
	m.user = nil
	m.loggedIn = false
	m.mu.Unlock()
}

// tokenExpired inspects the exp claim of a JWT without verifying the
// signature; verification is the server's job. Opaque tokens that do not
// parse as JWTs are assumed live.
func tokenExpired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

func primaryRole(roles []string) api.Role {
	for _, r := range roles {
		if api.Role(r) == api.RoleAdmin {
			return api.RoleAdmin
		}
	}
	return api.RoleUser
}
