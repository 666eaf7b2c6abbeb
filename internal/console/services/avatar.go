package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/wmsconsole/internal/console/client"
	"github.com/dmitrijs2005/wmsconsole/internal/console/messages"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/filex"
	"github.com/dmitrijs2005/wmsconsole/internal/validation"
)

// sniffLen is how many leading bytes content sniffing looks at.
const sniffLen = 512

type AvatarService interface {
	Upload(ctx context.Context, userID int64, name string, content []byte) (string, error)
	UploadFile(ctx context.Context, userID int64, path string) (string, error)
	Delete(ctx context.Context, userID int64) error
}

type avatarService struct {
	gw client.Gateway
}

func NewAvatarService(gw client.Gateway) AvatarService {
	return &avatarService{gw: gw}
}

// Upload sends content as the user's avatar and returns its URL.
func (s *avatarService) Upload(ctx context.Context, userID int64, name string, content []byte) (string, error) {
	if err := checkID(userID); err != nil {
		return "", err
	}
	if err := validation.Avatar(int64(len(content)), content[:min(len(content), sniffLen)]); err != nil {
		return "", err
	}

	var resp models.AvatarResponse
	err := s.gw.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/users/%d/avatar/upload", userID),
		File:   &client.File{Field: "avatar", Name: name, Content: content},
		Op:     messages.UploadAvatar,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AvatarURL, nil
}

// UploadFile checks the size on disk before reading, so an oversized file
// is never loaded.
func (s *avatarService) UploadFile(ctx context.Context, userID int64, path string) (string, error) {
	size, err := filex.FileSize(path)
	if err != nil {
		return "", err
	}
	if size > validation.MaxAvatarSize {
		return "", validation.Avatar(size, nil)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	return s.Upload(ctx, userID, filepath.Base(path), content)
}

func (s *avatarService) Delete(ctx context.Context, userID int64) error {
	if err := checkID(userID); err != nil {
		return err
	}
	return s.gw.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/users/%d/avatar/delete", userID),
		Op:     messages.DeleteAvatar,
	}, nil)
}
