package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/divyadrishti/internal/client/client"
	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
	"github.com/dmitrijs2005/divyadrishti/internal/client/services"
	"github.com/dmitrijs2005/divyadrishti/internal/common"
)

// test seams
var (
	getSimpleText    = GetSimpleText
	getPassword      = GetPassword
	getTextOrDefault = GetTextOrDefault

	promptOut io.Writer = os.Stdout
)

func (a *App) Signup(ctx context.Context) error {
	var req client.SignupRequest
	var err error

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter username", &req.Username},
		{"Enter your name", &req.Name},
		{"Enter date of birth (YYYY-MM-DD)", &req.DOB},
		{"Enter time of birth (HH:MM)", &req.Time},
		{"Enter place of birth", &req.Place},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, promptOut); err != nil {
			printlnFn("Error:", err)
			return err
		}
	}

	password, err := getPassword(promptOut)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	sess, err := a.authService.Signup(ctx, req)
	if err != nil {
		printlnFn("Signup unsuccessful:", authMessage(err))
		return err
	}
	a.signedIn(sess)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", promptOut)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	password, err := getPassword(promptOut)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.authService.Login(ctx, userName, string(password))
	if err != nil {
		var af *services.AuthFailedError
		if errors.As(err, &af) && af.Reason == services.ReasonNoLocalMatch {
			a.setMode(ModeDisabled)
		}
		printlnFn("Login unsuccessful:", authMessage(err))
		return err
	}
	a.signedIn(sess)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.chat = nil
	if err := a.authService.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err)
		return err
	}
	printlnFn("Logged out")
	return nil
}

// DeleteAccount asks for confirmation and removes the signed-in account.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Are you sure? This cannot be undone. Type 'yes' to confirm", promptOut)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if answer != "yes" {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.authService.DeleteAccount(ctx); err != nil {
		printlnFn("Failed to delete account:", err)
		return err
	}
	a.chat = nil
	printlnFn("Account deleted")
	return nil
}

// restore picks up the session saved by a previous run.
func (a *App) restore(ctx context.Context) {
	sess, err := a.authService.Restore(ctx)
	if err != nil {
		a.logger().Warn(ctx, "failed to restore session", "err", err)
		return
	}
	if sess == nil {
		return
	}
	a.signedIn(sess)
}

func (a *App) signedIn(sess *models.Session) {
	a.chat = nil
	if sess.IsLocal() {
		a.setMode(ModeOffline)
		printlnFn(fmt.Sprintf("Welcome, %s (offline account on this device)", displayName(sess.User)))
		return
	}
	a.setMode(ModeOnline)
	printlnFn(fmt.Sprintf("Welcome, %s", displayName(sess.User)))
}

func displayName(p models.Profile) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

func authMessage(err error) string {
	var af *services.AuthFailedError
	if errors.As(err, &af) && af.Err != nil {
		return af.Err.Error()
	}
	return err.Error()
}
