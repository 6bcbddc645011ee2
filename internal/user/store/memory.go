package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"member-gateway/internal/user"
)

// Memory keeps users in process memory. It backs unit tests and local runs
// without a database, intentionally favoring clarity over performance.
type Memory struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]user.User
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{nextID: 1, users: make(map[int64]user.User)}
}

func (s *Memory) Save(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextID
	s.nextID++
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u
	return u, nil
}

func (s *Memory) Update(_ context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return ErrNotFound
	}
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now()
	s.users[u.ID] = u
	return nil
}

func (s *Memory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Memory) FindByID(_ context.Context, id int64) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return user.User{}, ErrNotFound
}

func (s *Memory) FindByAccount(_ context.Context, account string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Account == account {
			return u, nil
		}
	}
	return user.User{}, ErrNotFound
}

func (s *Memory) ExistsByAccount(ctx context.Context, account string) (bool, error) {
	_, err := s.FindByAccount(ctx, account)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (s *Memory) ExistsByResidentNumber(_ context.Context, residentNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ResidentNumber == residentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (s *Memory) List(_ context.Context, page user.Page) (user.PagedUsers, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u)
	}
	sortUsers(all, page.Sort)

	start := page.Number * page.Size
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}

	return user.PagedUsers{
		Users:      all[start:end],
		Page:       page.Number,
		Size:       page.Size,
		TotalCount: int64(len(all)),
	}, nil
}

func (s *Memory) ListAll(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u)
	}
	sortUsers(all, "id")
	return all, nil
}

func sortUsers(users []user.User, key string) {
	switch key {
	case "account":
		sort.Slice(users, func(i, j int) bool { return users[i].Account < users[j].Account })
	case "name":
		sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	default:
		sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	}
}
