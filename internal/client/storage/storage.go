// Package storage is the small persistence port behind the session and
// UI-trigger state: a key/value store the rest of the client never bypasses.
// Backends: in-memory (tests) and SQLite (the real client).
package storage

import "context"

// KV is the persistence port. Get returns (nil, nil) for a missing key so
// callers can treat absence as "logged out" without error plumbing. SetMany
// writes all pairs or none; the UI flags rely on that to stay consistent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Keys used by the session and UI layers. Kept here so the two stores cannot
// silently diverge on spelling.
const (
	KeyToken          = "token"
	KeyUserInfo       = "userInfo"
	KeyLoginDialog    = "loginDialogOpen"
	KeyRegisterDialog = "registerDialogOpen"
)
