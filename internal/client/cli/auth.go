package cli

import (
	"context"
	"fmt"
	"os"
)

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	if err := a.session.Login(ctx, username, string(password)); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.ui.CloseLogin(ctx)
	printlnFn("Logged in as " + username)
	return nil
}

// Register creates an account. Existence checks run first so the user learns
// about a taken username before typing a password.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	if a.session.CheckUsernameExists(ctx, username) {
		printlnFn("Username is already taken")
		return nil
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if a.session.CheckEmailExists(ctx, email) {
		printlnFn("Email is already registered")
		return nil
	}

	password, err := GetPassword(os.Stdout, "Choose a password")
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	if err := a.session.Register(ctx, username, string(password), email); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	a.ui.CloseRegister(ctx)
	printlnFn("Account created, use 'login' to sign in")
	return nil
}

// Logout signs out and clears the local session. Stores holding per-user data
// are reset so the next account does not see the previous one's results.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.ts.Reset()
	a.qs.Reset()
	printlnFn("Logged out")
	return nil
}

// Whoami shows the cached profile, refreshing it from the server first.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	a.session.FetchUserProfile(ctx)

	u := a.session.User()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}

	printlnFn(fmt.Sprintf("id: %d", u.UserID))
	printlnFn("username: " + u.Username)
	printlnFn("email: " + u.Email)
	printlnFn("role: " + string(u.Role))
	if u.CreatedAt != "" {
		printlnFn("registered: " + u.CreatedAt)
	}
	printlnFn(fmt.Sprintf("tests taken: %d", u.AnswerCount))
	return nil
}
