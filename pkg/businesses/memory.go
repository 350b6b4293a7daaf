// pkg/businesses/memory.go
package businesses

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStores backs all three collections with maps. Used for dev when no
// DATABASE_URL is configured, and by tests.
type MemoryStores struct {
	mu         sync.RWMutex
	businesses map[string]Business // by name
	users      map[string]User     // by email
	profiles   map[string]Profile  // by email|business|role
}

func NewMemoryStores() *MemoryStores {
	return &MemoryStores{
		businesses: map[string]Business{},
		users:      map[string]User{},
		profiles:   map[string]Profile{},
	}
}

func (m *MemoryStores) GetByName(_ context.Context, name string) (Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.businesses[name]; ok {
		return b, nil
	}
	return Business{}, ErrNotFound
}

func (m *MemoryStores) GetByPublicID(_ context.Context, publicID string) (Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.businesses {
		if b.PublicID == publicID {
			return b, nil
		}
	}
	return Business{}, ErrNotFound
}

func (m *MemoryStores) Put(_ context.Context, b Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.businesses[b.Name] = b
	return nil
}

func (m *MemoryStores) Update(_ context.Context, b Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.businesses[b.Name]; !ok {
		return ErrNotFound
	}
	m.businesses[b.Name] = b
	return nil
}

func (m *MemoryStores) UpdateState(_ context.Context, name string, expected, next State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.businesses[name]
	if !ok {
		return ErrNotFound
	}
	if b.State != expected {
		return ErrStateConflict
	}
	b.State = next
	m.businesses[name] = b
	return nil
}

func (m *MemoryStores) Scan(_ context.Context) ([]Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Business, 0, len(m.businesses))
	for _, b := range m.businesses {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStores) Get(_ context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return User{}, ErrNotFound
}

func (m *MemoryStores) PutUser(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.Email] = u
	return nil
}

func profileKey(email, business, role string) string {
	return strings.Join([]string{email, business, role}, "|")
}

func (m *MemoryStores) GetProfile(_ context.Context, email, business, role string) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.profiles[profileKey(email, business, role)]; ok {
		return p, nil
	}
	return Profile{}, ErrNotFound
}

func (m *MemoryStores) PutProfile(_ context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profileKey(p.Email, p.Business, p.Role)] = p
	return nil
}

func (m *MemoryStores) UpdateProfile(ctx context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := profileKey(p.Email, p.Business, p.Role)
	if _, ok := m.profiles[key]; !ok {
		return ErrNotFound
	}
	m.profiles[key] = p
	return nil
}

// Typed views so one MemoryStores value can serve all three interfaces.

type memoryUserStore struct{ *MemoryStores }

func (s memoryUserStore) Put(ctx context.Context, u User) error { return s.PutUser(ctx, u) }

type memoryProfileStore struct{ *MemoryStores }

func (s memoryProfileStore) Get(ctx context.Context, email, business, role string) (Profile, error) {
	return s.GetProfile(ctx, email, business, role)
}
func (s memoryProfileStore) Put(ctx context.Context, p Profile) error { return s.PutProfile(ctx, p) }
func (s memoryProfileStore) Update(ctx context.Context, p Profile) error {
	return s.UpdateProfile(ctx, p)
}

func (m *MemoryStores) Users() UserStore       { return memoryUserStore{m} }
func (m *MemoryStores) Profiles() ProfileStore { return memoryProfileStore{m} }
