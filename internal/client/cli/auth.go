package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ovasilenko/breedbook/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, an email and a password and creates a new
// account. Registration does not sign the user in.
//
// The email is probed first so the user learns about a taken address before
// typing a password. The password byte slice is securely wiped before
// returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	taken, err := a.sessions.CheckEmail(ctx, email)
	if err != nil {
		a.log.Warn(ctx, "email check failed", "error", err)
	} else if taken {
		printlnFn("That email is already registered, try logging in instead.")
		return nil
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.sessions.Register(ctx, name, email, string(password)); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Account created, you can log in now.")
	return nil
}

// Login prompts for credentials and authenticates. On success the session
// manager persists the record, so the next start restores it without a new
// login. The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.sessions.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", sess.Name))
	return nil
}

// Logout terminates the current session and removes the stored record.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	return nil
}

// Profile shows the signed-in user. The route guard revalidates a stored
// credential when no live session exists.
func (a *App) Profile(ctx context.Context) error {
	return a.guarded(ctx, "/profile", func(ctx context.Context) error {
		sess, _ := a.sessions.Current()
		printlnFn(fmt.Sprintf("%s <%s>, registered %s", sess.Name, sess.Email, sess.CreatedAt.Format("2006-01-02")))
		return nil
	})
}
