package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/lostfound/internal/client/guard"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
	"github.com/dmitrijs2005/lostfound/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errAlreadyLoggedIn = errors.New("already logged in")

// enterAnonymous moves to an anonymous-only view. It reports false when the
// guard sent the user elsewhere.
func (a *App) enterAnonymous(ctx context.Context, path string) bool {
	if loc := a.navigate(ctx, path); loc != path {
		a.notify(services.Notice{Level: services.LevelInfo, Title: "Kamu sudah login."})
		return false
	}
	return true
}

// Login prompts for credentials and signs in. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	if !a.enterAnonymous(ctx, guard.LoginPath) {
		return errAlreadyLoggedIn
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.auth.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	return a.apply(ctx, res, err)
}

// Register prompts for a new account. A successful registration lands on
// the login view, or home when the backend already returned a token.
func (a *App) Register(ctx context.Context) error {
	if !a.enterAnonymous(ctx, "/register") {
		return errAlreadyLoggedIn
	}

	var r models.Registration
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"NPM", &r.NPM},
		{"Nama lengkap", &r.FullName},
		{"Email", &r.Email},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	r.Password = string(password)

	if r.StudyProgram, err = getSimpleText(a.reader, "Program studi", a.out); err != nil {
		return err
	}
	if r.Phone, err = getSimpleText(a.reader, "No HP", a.out); err != nil {
		return err
	}

	res, err := a.auth.Register(ctx, r)
	return a.apply(ctx, res, err)
}

func (a *App) Logout(ctx context.Context) error {
	res, err := a.auth.Logout(ctx)
	return a.apply(ctx, res, err)
}

// WhoAmI prints the identity read from the stored token.
func (a *App) WhoAmI(ctx context.Context) error {
	claims, err := a.auth.Claims(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Belum login.")
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", claims.Name, claims.Email)
	if claims.NPM != "" {
		fmt.Fprintf(a.out, "NPM:  %s\n", claims.NPM)
	}
	role := claims.Role
	if role == "" {
		role = "-"
	}
	fmt.Fprintf(a.out, "Role: %s\n", role)
	if since := a.auth.Since(ctx); !since.IsZero() {
		fmt.Fprintf(a.out, "Login: %s\n", humanize.Time(since))
	}
	return nil
}

func (a *App) notify(n services.Notice) {
	renderNotice(a.out, n)
}

// apply shows the outcome of an action and follows its navigation.
func (a *App) apply(ctx context.Context, res services.Result, err error) error {
	if renderValidation(a.out, err) {
		return err
	}
	a.notify(res.Notice)
	if res.Navigate != "" {
		a.navigate(ctx, res.Navigate)
	}
	if err != nil && res.Notice.IsZero() {
		fmt.Fprintln(a.out, "error:", err)
	}
	return err
}
