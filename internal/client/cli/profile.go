package cli

import (
	"context"
	"os"

	"github.com/frostedstar/mbticli/internal/client/guard"
)

var profileRoute = guard.Route{Name: "profile", RequiresAuth: true}

// UpdateEmail changes the account email address.
func (a *App) UpdateEmail(ctx context.Context) error {
	if !a.allowed(ctx, profileRoute) {
		return nil
	}

	email, err := GetSimpleText(a.reader, "Enter new email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.UpdateProfile(ctx, email); err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}

	printlnFn("Email updated")
	return nil
}

// ChangePassword changes the account password. The server keeps the session
// valid, so no re-login is required afterwards.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.allowed(ctx, profileRoute) {
		return nil
	}

	oldPw, err := GetPassword(os.Stdout, "Current password")
	if err != nil {
		return err
	}
	defer wipeBytes(oldPw)
	newPw, err := GetPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	defer wipeBytes(newPw)

	if err := a.session.ChangePassword(ctx, string(oldPw), string(newPw)); err != nil {
		printlnFn("Password change failed:", err.Error())
		return err
	}

	printlnFn("Password changed")
	return nil
}
