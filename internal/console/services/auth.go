// Package services contains the console's domain operations. Each one
// validates its input locally and then makes a single round trip through the
// gateway; nothing here retries or caches server state.
package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/wmsconsole/internal/console/client"
	"github.com/dmitrijs2005/wmsconsole/internal/console/credentials"
	"github.com/dmitrijs2005/wmsconsole/internal/console/messages"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/validation"
)

// ErrNoToken means the backend accepted the credentials but sent no token.
var ErrNoToken = errors.New("sign-in response carries no token")

// AuthService signs users in and out.
//
// Contract:
//   - SignIn: validate, authenticate, persist token and user record.
//   - Register: validate and create an account; does not sign in.
//   - SignOut: best-effort notice to the backend; the caller clears the
//     session regardless of the result.
type AuthService interface {
	SignIn(ctx context.Context, form models.SignInForm) (models.User, error)
	Register(ctx context.Context, form models.RegisterForm) error
	SignOut(ctx context.Context) error
}

type authService struct {
	gw    client.Gateway
	store credentials.Store
}

func NewAuthService(gw client.Gateway, store credentials.Store) AuthService {
	return &authService{gw: gw, store: store}
}

func (a *authService) SignIn(ctx context.Context, form models.SignInForm) (models.User, error) {
	if err := validation.Struct(form); err != nil {
		return models.User{}, err
	}

	var resp models.SignInResponse
	err := a.gw.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/users/signin",
		Body:   form,
		Op:     messages.SignIn,
	}, &resp)
	if err != nil {
		return models.User{}, err
	}
	if resp.Token == "" {
		return models.User{}, ErrNoToken
	}

	if err := a.store.Set(ctx, resp.Token, resp.User); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

func (a *authService) Register(ctx context.Context, form models.RegisterForm) error {
	if err := validation.Struct(form); err != nil {
		return err
	}
	return a.gw.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/users",
		Body:   form,
		Op:     messages.Register,
	}, nil)
}

func (a *authService) SignOut(ctx context.Context) error {
	return a.gw.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/user/signout",
		Op:     messages.SignOut,
	}, nil)
}
