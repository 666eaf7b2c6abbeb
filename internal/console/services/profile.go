package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/wmsconsole/internal/console/client"
	"github.com/dmitrijs2005/wmsconsole/internal/console/messages"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/validation"
)

// ProfileService reads and edits the signed-in user's profile. The cached
// user record is left as it was at sign-in.
type ProfileService interface {
	Get(ctx context.Context) (models.User, error)
	Update(ctx context.Context, form models.ProfileForm) (models.User, error)
}

type profileService struct {
	gw client.Gateway
}

func NewProfileService(gw client.Gateway) ProfileService {
	return &profileService{gw: gw}
}

func (p *profileService) Get(ctx context.Context) (models.User, error) {
	var u models.User
	err := p.gw.Do(ctx, client.Request{Method: http.MethodGet, Path: "/user/profile", Op: messages.LoadProfile}, &u)
	return u, err
}

func (p *profileService) Update(ctx context.Context, form models.ProfileForm) (models.User, error) {
	if err := validation.Struct(form); err != nil {
		return models.User{}, err
	}
	var u models.User
	err := p.gw.Do(ctx, client.Request{
		Method: http.MethodPut,
		Path:   "/user/profile",
		Body:   form,
		Op:     messages.UpdateProfile,
	}, &u)
	return u, err
}
