// pkg/idp/memory.go
package idp

import (
	"context"
	"sync"
)

// Memory is the in-process Provider used for local bring-up and tests.
// Tokens map straight to users; no verification happens here.
type Memory struct {
	mu       sync.RWMutex
	byToken  map[string]User
	accounts map[string]User
}

func NewMemory() *Memory {
	return &Memory{byToken: map[string]User{}, accounts: map[string]User{}}
}

// AddToken registers a token that resolves to the given user.
func (m *Memory) AddToken(token string, u User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.Attributes == nil {
		u.Attributes = map[string]string{}
	}
	u.Attributes[AttrEmail] = u.Email
	m.byToken[token] = u
	m.accounts[u.Email] = u
}

func (m *Memory) UserByToken(_ context.Context, accessToken string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.byToken[accessToken]; ok {
		return u, nil
	}
	return User{}, ErrUnauthorized
}

func (m *Memory) CreateAccount(_ context.Context, email string, attrs map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[email]; ok {
		return ErrAccountExists
	}
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrs[AttrEmail] = email
	m.accounts[email] = User{Username: email, Email: email, Attributes: attrs}
	return nil
}

func (m *Memory) AccountExists(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.accounts[email]
	return ok, nil
}

func (m *Memory) HasAnyUser(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts) > 0, nil
}
