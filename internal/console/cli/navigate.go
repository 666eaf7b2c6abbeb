package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/wmsconsole/internal/console/render"
	"github.com/dmitrijs2005/wmsconsole/internal/console/viewscope"
)

var errNoList = errors.New("open a list first, e.g. 'orders'")

// withCurrent runs fn on the list shown last and prints it again.
func (a *App) withCurrent(ctx context.Context, fn func(v pagedView)) error {
	return a.protected(ctx, a.currentView(), func(*viewscope.Scope) error {
		a.mu.Lock()
		v := a.current
		a.mu.Unlock()
		if v == nil {
			return errNoList
		}
		fn(v)
		return a.printList(v)
	})
}

// Search filters the current list. Without a term the filter is cleared.
func (a *App) Search(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")
	return a.withCurrent(ctx, func(v pagedView) { v.Search(term) })
}

// Page switches the current list to page n, counting from 1.
func (a *App) Page(ctx context.Context, args []string) error {
	n, err := positiveArg(args, "page <n>")
	if err != nil {
		return err
	}
	return a.withCurrent(ctx, func(v pagedView) { v.SetPage(n - 1) })
}

func (a *App) Rows(ctx context.Context, args []string) error {
	n, err := positiveArg(args, "rows <n>")
	if err != nil {
		return err
	}
	return a.withCurrent(ctx, func(v pagedView) { v.SetRowsPerPage(n) })
}

// SetFormat changes how the following commands print their results.
func (a *App) SetFormat(args []string) error {
	if len(args) == 0 {
		a.println("Output format:", string(a.format))
		return nil
	}
	f, err := render.ParseFormat(args[0])
	if err != nil {
		return err
	}
	a.format = f
	a.println("Output format:", string(f))
	return nil
}

func positiveArg(args []string, usage string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("usage: " + usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, errors.New("usage: " + usage + ", n must be a positive number")
	}
	return n, nil
}
