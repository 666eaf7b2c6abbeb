package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/console/render"
	"github.com/dmitrijs2005/wmsconsole/internal/console/viewscope"
)

func (a *App) ShowProfile(ctx context.Context) error {
	return a.protected(ctx, "/profile", func(s *viewscope.Scope) error {
		var u models.User
		if err := viewscope.Run(s, a.profileService.Get, func(v models.User) { u = v }); err != nil {
			return err
		}
		return render.Render(a.out, a.format, render.Record(userHeaders, userValues(u), u))
	})
}

// EditProfile loads the profile, lets the user change it and saves it.
func (a *App) EditProfile(ctx context.Context) error {
	return a.protected(ctx, "/profile/edit", func(s *viewscope.Scope) error {
		var form models.ProfileForm
		err := viewscope.Run(s, a.profileService.Get, func(u models.User) {
			form = models.ProfileFormFrom(u)
		})
		if err != nil {
			return err
		}

		fields := []struct {
			prompt string
			dst    *string
		}{
			{"Email", &form.Email},
			{"First name", &form.Firstname},
			{"Last name", &form.Lastname},
			{"INN", &form.INN},
			{"Phone", &form.Phone},
		}
		for _, f := range fields {
			v, err := GetDefaultText(a.reader, f.prompt, *f.dst, a.out)
			if err != nil {
				return err
			}
			*f.dst = v
		}

		var saved models.User
		err = viewscope.Run(s, func(ctx context.Context) (models.User, error) {
			return a.profileService.Update(ctx, form)
		}, func(u models.User) { saved = u })
		if err != nil {
			return err
		}
		a.println("Profile saved")
		return render.Render(a.out, a.format, render.Record(userHeaders, userValues(saved), saved))
	})
}

func (a *App) UploadAvatar(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: avatar-upload <path> [id]")
	}
	path := args[0]
	return a.protected(ctx, "/profile/avatar", func(s *viewscope.Scope) error {
		id, err := a.targetUser(args[1:])
		if err != nil {
			return err
		}
		var url string
		err = viewscope.Run(s, func(ctx context.Context) (string, error) {
			return a.avatarService.UploadFile(ctx, id, path)
		}, func(v string) { url = v })
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Avatar uploaded: %s\n", url)
		return nil
	})
}

func (a *App) DeleteAvatar(ctx context.Context, args []string) error {
	return a.protected(ctx, "/profile/avatar/delete", func(s *viewscope.Scope) error {
		id, err := a.targetUser(args)
		if err != nil {
			return err
		}
		ok, err := Confirm(a.reader, "Delete avatar?", a.out)
		if err != nil || !ok {
			return err
		}
		err = viewscope.Run(s, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, a.avatarService.Delete(ctx, id)
		}, func(struct{}) {})
		if err != nil {
			return err
		}
		a.println("Avatar deleted")
		return nil
	})
}
