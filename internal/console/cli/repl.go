package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/wmsconsole/internal/console/session"
)

const (
	helpSignedOut = "Available commands: login, register, format, exit"
	helpSignedIn  = `Available commands:
  whoami, logout, dashboard
  orders [start end], order <id>, order-update <id>, order-delete <id>
  assembly [start end], completed
  reports, report <id>
  employees, employee-add, employee-edit <id>, employee-delete <id>, block <id>, unblock <id>
  passwd [id], profile, profile-edit, avatar-upload <path> [id], avatar-delete [id]
  search <term>, page <n>, rows <n>, format <table|json|yaml|csv>, exit`
)

func (a *App) getStatus(ctx context.Context) string {
	if _, err := a.session.Check(ctx); err != nil {
		a.log.Warn(ctx, "failed to read credentials", "error", err)
	}
	if u, ok := a.session.CurrentUser(); ok {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return "(guest)"
}

// Root runs the read-eval-print loop until exit, EOF or ctx is done.
// Command errors are printed and the loop goes on.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to the warehouse console (type 'help' for commands)")
	if u, ok := a.restore(ctx); ok {
		fmt.Fprintf(a.out, "Signed in as %s\n", u)
	}

	for ctx.Err() == nil {
		fmt.Fprintf(a.out, "wms %s> ", a.getStatus(ctx))
		line, err := readLine(a.reader)
		if err != nil {
			a.println()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if !a.dispatch(ctx, parts[0], parts[1:]) {
			return
		}
	}
}

// restore resolves a session left over from a previous run.
func (a *App) restore(ctx context.Context) (string, bool) {
	state, err := a.session.Check(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to read credentials", "error", err)
	}
	if state != session.Authenticated {
		return "", false
	}
	a.Navigate(HomeView)
	u, _ := a.session.CurrentUser()
	return u.Email, true
}

// dispatch runs one command. It returns false when the console should quit.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	var err error

	switch cmd {
	case "help":
		if a.session.State() == session.Authenticated {
			a.println(helpSignedIn)
		} else {
			a.println(helpSignedOut)
		}

	case "login":
		err = a.Login(ctx)
	case "register":
		err = a.Register(ctx)
	case "logout":
		err = a.Logout(ctx)
	case "whoami":
		err = a.WhoAmI(ctx)
	case "dashboard":
		err = a.Dashboard(ctx)

	case "orders":
		err = a.ListOrders(ctx, args)
	case "order":
		err = a.ShowOrder(ctx, args)
	case "order-update":
		err = a.UpdateOrder(ctx, args)
	case "order-delete":
		err = a.DeleteOrder(ctx, args)
	case "assembly":
		err = a.ListAssembly(ctx, args)
	case "completed":
		err = a.ListCompleted(ctx)

	case "reports":
		err = a.ListReports(ctx)
	case "report":
		err = a.PrepareReport(ctx, args)

	case "employees":
		err = a.ListEmployees(ctx)
	case "employee-add":
		err = a.AddEmployee(ctx)
	case "employee-edit":
		err = a.EditEmployee(ctx, args)
	case "employee-delete":
		err = a.DeleteEmployee(ctx, args)
	case "block":
		err = a.SetBlocked(ctx, args, true)
	case "unblock":
		err = a.SetBlocked(ctx, args, false)
	case "passwd":
		err = a.ChangePassword(ctx, args)

	case "profile":
		err = a.ShowProfile(ctx)
	case "profile-edit":
		err = a.EditProfile(ctx)
	case "avatar-upload":
		err = a.UploadAvatar(ctx, args)
	case "avatar-delete":
		err = a.DeleteAvatar(ctx, args)

	case "search":
		err = a.Search(ctx, args)
	case "page":
		err = a.Page(ctx, args)
	case "rows":
		err = a.Rows(ctx, args)
	case "format":
		err = a.SetFormat(args)

	case "exit", "quit":
		a.println("Bye!")
		return false

	default:
		a.println("Unknown command:", cmd)
	}

	a.fail(ctx, err)
	return true
}
