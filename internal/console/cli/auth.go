package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/console/render"
	"github.com/dmitrijs2005/wmsconsole/internal/console/viewscope"
)

// Login prompts for credentials and signs in. On success the token and the
// user record are stored and the console moves to the home view.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	scope, closeScope := a.mount(ctx)
	defer closeScope()

	form := models.SignInForm{Email: email, Password: string(password)}
	var user models.User
	err = viewscope.Run(scope, func(ctx context.Context) (models.User, error) {
		return a.authService.SignIn(ctx, form)
	}, func(u models.User) { user = u })
	if err != nil {
		return err
	}

	if _, err := a.session.Check(ctx); err != nil {
		return err
	}
	a.Navigate(HomeView)
	a.log.Info(ctx, "signed in", "user_id", user.ID)
	fmt.Fprintf(a.out, "Welcome, %s!\n", user.FullName())
	return nil
}

// Register creates an account. It does not sign in.
func (a *App) Register(ctx context.Context) error {
	var form models.RegisterForm
	var err error

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &form.Firstname},
		{"Last name", &form.Lastname},
		{"INN", &form.INN},
		{"Email", &form.Email},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	form.Password = string(password)

	scope, closeScope := a.mount(ctx)
	defer closeScope()

	err = viewscope.Run(scope, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.authService.Register(ctx, form)
	}, func(struct{}) {})
	if err != nil {
		return err
	}

	a.println("Account created, you can sign in now")
	return nil
}

// Logout tells the backend and clears the session. The local session is
// cleared even when the backend call fails.
func (a *App) Logout(ctx context.Context) error {
	if _, ok := a.session.CurrentUser(); ok {
		scope, closeScope := a.mount(ctx)
		if err := a.authService.SignOut(scope.Context()); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Warn(ctx, "backend sign-out failed", "error", err)
		}
		closeScope()
	}

	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.println("Signed out")
	return nil
}

// WhoAmI shows the cached user record.
func (a *App) WhoAmI(ctx context.Context) error {
	return a.protected(ctx, "/whoami", func(*viewscope.Scope) error {
		u, ok := a.session.CurrentUser()
		if !ok {
			return errRedirected
		}
		return render.Render(a.out, a.format, render.Record(userHeaders, userValues(u), u))
	})
}
