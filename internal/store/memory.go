package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process credential store for development and tests. Same
// contract as Postgres, nothing survives a restart.
type Memory struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemory() *Memory {
	return &Memory{users: map[string]User{}}
}

func (m *Memory) FindUser(_ context.Context, username string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) CreateUser(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Username]; ok {
		return ErrExists
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	m.users[u.Username] = u
	return nil
}
