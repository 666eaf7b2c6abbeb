package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/console/viewscope"
)

func (a *App) ListEmployees(ctx context.Context) error {
	return a.protected(ctx, "/employees", func(s *viewscope.Scope) error {
		return showList(a, s, a.employeesView, a.employeeService.List)
	})
}

// employeeForm prompts for every field of form, keeping current values on
// an empty answer.
func (a *App) employeeForm(form *models.EmployeeForm) error {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Email", &form.Email},
		{"First name", &form.Firstname},
		{"Last name", &form.Lastname},
		{"Phone", &form.Phone},
		{"INN", &form.INN},
	}
	for _, f := range fields {
		v, err := GetDefaultText(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

func (a *App) AddEmployee(ctx context.Context) error {
	return a.protected(ctx, "/employees/new", func(s *viewscope.Scope) error {
		var form models.EmployeeForm
		if err := a.employeeForm(&form); err != nil {
			return err
		}

		var created models.User
		err := viewscope.Run(s, func(ctx context.Context) (models.User, error) {
			return a.employeeService.Add(ctx, form)
		}, func(u models.User) { created = u })
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Employee %s added with id %d\n", created.Email, created.ID)
		return nil
	})
}

func (a *App) EditEmployee(ctx context.Context, args []string) error {
	id, err := idArg(args, "employee-edit <id>")
	if err != nil {
		return err
	}
	return a.protected(ctx, "/employees/"+args[0], func(s *viewscope.Scope) error {
		u, err := lookup(a, s, a.employeesView, a.employeeService.List, func(u models.User) bool { return u.ID == id })
		if err != nil {
			return fmt.Errorf("employee %d: %w", id, err)
		}
		form := models.EmployeeFormFrom(u)
		if err := a.employeeForm(&form); err != nil {
			return err
		}

		err = viewscope.Run(s, func(ctx context.Context) (models.User, error) {
			return a.employeeService.Update(ctx, id, form)
		}, func(models.User) {})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Employee %d updated\n", id)
		return nil
	})
}

func (a *App) DeleteEmployee(ctx context.Context, args []string) error {
	id, err := idArg(args, "employee-delete <id>")
	if err != nil {
		return err
	}
	return a.protected(ctx, "/employees/"+args[0]+"/delete", func(s *viewscope.Scope) error {
		ok, err := Confirm(a.reader, fmt.Sprintf("Delete employee %d?", id), a.out)
		if err != nil || !ok {
			return err
		}
		err = viewscope.Run(s, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, a.employeeService.Delete(ctx, id)
		}, func(struct{}) {})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Employee %d deleted\n", id)
		return nil
	})
}

// SetBlocked blocks or unblocks an employee.
func (a *App) SetBlocked(ctx context.Context, args []string, blocked bool) error {
	usage := "unblock <id>"
	if blocked {
		usage = "block <id>"
	}
	id, err := idArg(args, usage)
	if err != nil {
		return err
	}
	return a.protected(ctx, "/employees/"+args[0]+"/block", func(s *viewscope.Scope) error {
		err := viewscope.Run(s, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, a.employeeService.SetBlocked(ctx, id, blocked)
		}, func(struct{}) {})
		if err != nil {
			return err
		}
		if blocked {
			fmt.Fprintf(a.out, "Employee %d blocked\n", id)
		} else {
			fmt.Fprintf(a.out, "Employee %d unblocked\n", id)
		}
		return nil
	})
}

// ChangePassword changes the password of the signed-in user, or of the
// employee with the given id.
func (a *App) ChangePassword(ctx context.Context, args []string) error {
	return a.protected(ctx, "/password", func(s *viewscope.Scope) error {
		id, err := a.targetUser(args)
		if err != nil {
			return err
		}

		password, err := getPassword(a.reader, "New password", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)
		confirm, err := getPassword(a.reader, "Repeat password", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(confirm)

		form := models.PasswordForm{ID: id, NewPassword: string(password), ConfirmPassword: string(confirm)}
		err = viewscope.Run(s, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, a.passwordService.Change(ctx, form)
		}, func(struct{}) {})
		if err != nil {
			return err
		}
		a.println("Password changed")
		return nil
	})
}

// targetUser is args[0] when given, the signed-in user otherwise.
func (a *App) targetUser(args []string) (int64, error) {
	if len(args) > 0 {
		return common.ParseID(args[0])
	}
	u, ok := a.session.CurrentUser()
	if !ok {
		return 0, errRedirected
	}
	return u.ID, nil
}
