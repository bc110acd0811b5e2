package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostedstar/mbticli/internal/client/api"
	"github.com/frostedstar/mbticli/internal/client/storage"
)

// fakeClient implements Client for manager tests.
type fakeClient struct {
	LoginRet *api.LoginResult
	LoginErr error

	RegisterRet *api.User
	RegisterErr error

	LogoutErr   error
	LogoutCalls int

	ProfileRet *api.User
	ProfileErr error

	UpdateRet *api.User
	UpdateErr error

	ChangePasswordErr error

	CheckUsernameRet bool
	CheckUsernameErr error
	CheckEmailRet    bool
	CheckEmailErr    error
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*api.LoginResult, error) {
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, username, password, email string) (*api.User, error) {
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) GetProfile(ctx context.Context) (*api.User, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, email string) (*api.User, error) {
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return f.ChangePasswordErr
}

func (f *fakeClient) CheckUsername(ctx context.Context, username string) (bool, error) {
	return f.CheckUsernameRet, f.CheckUsernameErr
}

func (f *fakeClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	return f.CheckEmailRet, f.CheckEmailErr
}

func newManager(t *testing.T, c *fakeClient) (*Manager, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	return NewManager(c, kv, nil), kv
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestLoginThenLogout(t *testing.T) {
	ctx := context.Background()
	c := &fakeClient{
		LoginRet:   &api.LoginResult{Token: "abc", UserID: 1, Username: "alice", Roles: []string{"USER"}},
		ProfileRet: &api.User{UserID: 1, Username: "alice", Email: "a@example.com", Role: api.RoleUser},
	}
	m, kv := newManager(t, c)

	require.NoError(t, m.Login(ctx, "alice", "pw"))
	assert.True(t, m.IsLoggedIn())
	require.NotNil(t, m.User())
	assert.Equal(t, "alice", m.User().Username)

	tok, err := kv.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), tok)

	m.Logout(ctx)
	assert.False(t, m.IsLoggedIn())
	assert.Nil(t, m.User())
	assert.Equal(t, 1, c.LogoutCalls)

	tok, err = kv.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestLogout_IdempotentWhenLoggedOut(t *testing.T) {
	ctx := context.Background()
	c := &fakeClient{}
	m, _ := newManager(t, c)

	m.Logout(ctx)
	m.Logout(ctx)

	assert.False(t, m.IsLoggedIn())
	assert.Nil(t, m.User())
	// no server notification for a session that never existed
	assert.Equal(t, 0, c.LogoutCalls)
}

func TestLogout_ServerFailureStillClearsLocalState(t *testing.T) {
	ctx := context.Background()
	c := &fakeClient{
		LoginRet:  &api.LoginResult{Token: "abc", UserID: 1, Username: "alice"},
		LogoutErr: errors.New("boom"),
	}
	m, _ := newManager(t, c)
	require.NoError(t, m.Login(ctx, "alice", "pw"))

	m.Logout(ctx)
	assert.False(t, m.IsLoggedIn())
	assert.Nil(t, m.User())
}

func TestLogin_FailurePropagates(t *testing.T) {
	ctx := context.Background()
	c := &fakeClient{LoginErr: &api.BusinessError{Message: "wrong password"}}
	m, _ := newManager(t, c)

	err := m.Login(ctx, "alice", "bad")
	require.Error(t, err)
	assert.False(t, m.IsLoggedIn())
}

func TestCheckLoginStatus_SnapshotWithoutTokenSelfHeals(t *testing.T) {
	ctx := context.Background()
	m, kv := newManager(t, &fakeClient{})

	// stale snapshot, no session evidence
	require.NoError(t, kv.Set(ctx, storage.KeyUserInfo, []byte(`{"userId":1,"username":"alice"}`)))

	assert.False(t, m.CheckLoginStatus(ctx))
	assert.False(t, m.IsLoggedIn())

	raw, err := kv.Get(ctx, storage.KeyUserInfo)
	require.NoError(t, err)
	assert.Nil(t, raw, "stale snapshot must be cleared")
}

func TestCheckLoginStatus_ExpiredTokenClearsEvidence(t *testing.T) {
	ctx := context.Background()
	m, kv := newManager(t, &fakeClient{})

	require.NoError(t, kv.Set(ctx, storage.KeyToken, []byte(signedToken(t, time.Now().Add(-time.Hour)))))
	require.NoError(t, kv.Set(ctx, storage.KeyUserInfo, []byte(`{"userId":1}`)))

	assert.False(t, m.CheckLoginStatus(ctx))

	tok, err := kv.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestCheckLoginStatus_ValidTokenRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	m, kv := newManager(t, &fakeClient{})

	require.NoError(t, kv.Set(ctx, storage.KeyToken, []byte(signedToken(t, time.Now().Add(time.Hour)))))
	require.NoError(t, kv.Set(ctx, storage.KeyUserInfo, []byte(`{"userId":1,"username":"alice","role":"ADMIN"}`)))

	assert.True(t, m.CheckLoginStatus(ctx))
	assert.True(t, m.IsLoggedIn())
	require.NotNil(t, m.User())
	assert.Equal(t, api.RoleAdmin, m.Role())
}

func TestCheckLoginStatus_OpaqueTokenIsAccepted(t *testing.T) {
	ctx := context.Background()
	m, kv := newManager(t, &fakeClient{})

	require.NoError(t, kv.Set(ctx, storage.KeyToken, []byte("not-a-jwt")))

	assert.True(t, m.CheckLoginStatus(ctx))
}

func TestFetchUserProfile_UnauthorizedLogsOut(t *testing.T) {
	ctx := context.Background()
	c := &fakeClient{
		LoginRet:   &api.LoginResult{Token: "abc", UserID: 1, Username: "alice"},
		ProfileErr: &api.HTTPError{Status: 401},
	}
	m, _ := newManager(t, c)
	require.NoError(t, m.Login(ctx, "alice", "pw"))

	m.FetchUserProfile(ctx)
	assert.False(t, m.IsLoggedIn())
	assert.Nil(t, m.User())
}

func TestFetchUserProfile_NoopWhenLoggedOut(t *testing.T) {
	c := &fakeClient{ProfileErr: errors.New("must not be called")}
	m, _ := newManager(t, c)

	m.FetchUserProfile(context.Background())
	assert.False(t, m.IsLoggedIn())
}

func TestUpdateProfile_RefreshesSnapshot(t *testing.T) {
	ctx := context.Background()
	c := &fakeClient{
		LoginRet:   &api.LoginResult{Token: "abc", UserID: 1, Username: "alice"},
		ProfileRet: &api.User{UserID: 1, Username: "alice", Email: "old@example.com"},
		UpdateRet:  &api.User{UserID: 1, Username: "alice", Email: "new@example.com"},
	}
	m, _ := newManager(t, c)
	require.NoError(t, m.Login(ctx, "alice", "pw"))

	require.NoError(t, m.UpdateProfile(ctx, "new@example.com"))
	assert.Equal(t, "new@example.com", m.User().Email)
}

func TestExistenceChecks_FailOpen(t *testing.T) {
	ctx := context.Background()
	c := &fakeClient{
		CheckUsernameErr: &api.TransportError{Err: errors.New("refused")},
		CheckEmailErr:    &api.TransportError{Err: errors.New("refused")},
	}
	m, _ := newManager(t, c)

	assert.False(t, m.CheckUsernameExists(ctx, "bob"))
	assert.False(t, m.CheckEmailExists(ctx, "bob@example.com"))

	c.CheckUsernameErr, c.CheckUsernameRet = nil, true
	assert.True(t, m.CheckUsernameExists(ctx, "bob"))
}

func TestInitialize_RestoresSessionAndProfile(t *testing.T) {
	ctx := context.Background()
	c := &fakeClient{ProfileRet: &api.User{UserID: 1, Username: "alice", Role: api.RoleUser}}
	m, kv := newManager(t, c)

	require.NoError(t, kv.Set(ctx, storage.KeyToken, []byte(signedToken(t, time.Now().Add(time.Hour)))))

	m.Initialize(ctx)
	assert.True(t, m.IsLoggedIn())
	require.NotNil(t, m.User())
	assert.Equal(t, "alice", m.User().Username)
}

func TestInvalidate_DropsSessionWithoutServerCall(t *testing.T) {
	ctx := context.Background()
	c := &fakeClient{LoginRet: &api.LoginResult{Token: "abc", UserID: 1, Username: "alice"}}
	m, kv := newManager(t, c)
	require.NoError(t, m.Login(ctx, "alice", "pw"))

	m.Invalidate(ctx)
	assert.False(t, m.IsLoggedIn())
	assert.Equal(t, 0, c.LogoutCalls)

	tok, err := kv.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.Nil(t, tok)
}
