package credentials

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
)

// MemoryStore keeps credentials for the lifetime of the process only.
// It backs "-d :memory:" runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Set(_ context.Context, token string, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = &user
	return nil
}

func (m *MemoryStore) Get(_ context.Context) (Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" {
		return Credentials{}, ErrNoCredentials
	}
	var u *models.User
	if m.user != nil {
		cp := *m.user
		u = &cp
	}
	return Credentials{Token: m.token, User: u}, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}
