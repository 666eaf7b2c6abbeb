package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/client"
	"github.com/dmitrijs2005/wmsconsole/internal/console/messages"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/validation"
)

// EmployeeService manages user accounts. The backend restricts it to
// administrators and answers 403 otherwise.
type EmployeeService interface {
	List(ctx context.Context) ([]models.User, error)
	Add(ctx context.Context, form models.EmployeeForm) (models.User, error)
	Update(ctx context.Context, id int64, form models.EmployeeForm) (models.User, error)
	Delete(ctx context.Context, id int64) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
}

type employeeService struct {
	gw client.Gateway
}

func NewEmployeeService(gw client.Gateway) EmployeeService {
	return &employeeService{gw: gw}
}

func checkID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("user id %d: %w", id, common.ErrorInvalidID)
	}
	return nil
}

func (s *employeeService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.gw.Do(ctx, client.Request{Method: http.MethodGet, Path: "/users", Op: messages.LoadEmployees}, &users)
	return users, err
}

func (s *employeeService) Add(ctx context.Context, form models.EmployeeForm) (models.User, error) {
	if err := validation.Struct(form); err != nil {
		return models.User{}, err
	}
	var u models.User
	err := s.gw.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/users",
		Body:   form,
		Op:     messages.AddEmployee,
	}, &u)
	return u, err
}

func (s *employeeService) Update(ctx context.Context, id int64, form models.EmployeeForm) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	if err := validation.Struct(form); err != nil {
		return models.User{}, err
	}
	var u models.User
	err := s.gw.Do(ctx, client.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/users/%d", id),
		Body:   form,
		Op:     messages.UpdateEmployee,
	}, &u)
	return u, err
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.gw.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/users/%d/delete", id),
		Op:     messages.DeleteEmployee,
	}, nil)
}

func (s *employeeService) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.gw.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/users/%d/block", id),
		Body:   models.BlockRequest{Blocked: blocked},
		Op:     messages.BlockEmployee,
	}, nil)
}

// PasswordService changes a password, either the user's own or, for an
// administrator, an employee's. Both go through the same endpoint.
type PasswordService interface {
	Change(ctx context.Context, form models.PasswordForm) error
}

type passwordService struct {
	gw client.Gateway
}

func NewPasswordService(gw client.Gateway) PasswordService {
	return &passwordService{gw: gw}
}

func (s *passwordService) Change(ctx context.Context, form models.PasswordForm) error {
	if err := validation.Struct(form); err != nil {
		return err
	}
	return s.gw.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/user/update/pass",
		Body:   form,
		Op:     messages.ChangePassword,
	}, nil)
}
