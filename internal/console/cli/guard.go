package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/client"
	"github.com/dmitrijs2005/wmsconsole/internal/console/session"
	"github.com/dmitrijs2005/wmsconsole/internal/console/viewscope"
	"github.com/dmitrijs2005/wmsconsole/internal/validation"
)

// errRedirected is returned by protected when the user was sent to login.
var errRedirected = errors.New("sign in required")

// notifyInterrupt is a test seam for signal.NotifyContext.
var notifyInterrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// mount opens a scope for one view. Ctrl-C cancels the scope while it is
// open; the returned func closes it.
func (a *App) mount(ctx context.Context) (*viewscope.Scope, func()) {
	sigCtx, stop := notifyInterrupt(ctx)
	scope := viewscope.New(sigCtx)
	return scope, func() {
		scope.Cancel()
		stop()
	}
}

// protected mounts a view that needs a signed-in user. The session is
// checked first and fn only runs when the guard lets it through.
func (a *App) protected(ctx context.Context, view string, fn func(s *viewscope.Scope) error) error {
	state, err := a.session.Check(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to read credentials", "error", err)
	}

	switch session.Guard(state) {
	case session.Placeholder:
		a.println("Loading...")
		return nil
	case session.RedirectLogin:
		a.Navigate(common.LoginView)
		return errRedirected
	}

	a.Navigate(view)
	scope, closeScope := a.mount(ctx)
	defer closeScope()
	return fn(scope)
}

// fail prints err the way the user should see it.
func (a *App) fail(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var verrs validation.Errors
	switch {
	case errors.Is(err, errRedirected):
		a.println("Please sign in first (type 'login')")
	case errors.Is(err, context.Canceled):
		a.println("Cancelled")
	case errors.As(err, &verrs):
		a.println("Please fix the following:")
		for _, field := range slices.Sorted(maps.Keys(verrs)) {
			fmt.Fprintf(a.out, "  %s: %s\n", field, verrs[field])
		}
	case errors.Is(err, common.ErrorInvalidID), errors.Is(err, validation.ErrValidation):
		a.println(err.Error())
	default:
		a.log.Debug(ctx, "command failed", "error", err)
		a.println(client.UserMessage(err))
	}
}
