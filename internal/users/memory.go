package users

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps users in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	users  []User
	nextID int64
	now    func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, now: time.Now}
}

func (s *MemoryStore) Init(ctx context.Context) error { return nil }
func (s *MemoryStore) Close()                         {}

func (s *MemoryStore) List(ctx context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, name string) (User, error) {
	if err := validateName(name); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := User{ID: s.nextID, Name: name, CreatedAt: s.now().UTC()}
	s.nextID++
	s.users = append(s.users, u)
	return u, nil
}
