package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	dom "github.com/birat04/Notionize/internal/domain"
)

// MemUserRepo is an in-process UserRepo. Username and email uniqueness is
// enforced under its lock, so concurrent creates resolve to one winner.
type MemUserRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]dom.User
	email  map[string]int64
	uname  map[string]int64
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{
		byID:  make(map[int64]dom.User),
		email: make(map[string]int64),
		uname: make(map[string]int64),
	}
}

func (r *MemUserRepo) FindByEmailOrUsername(_ context.Context, email, username string) (dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.email[strings.ToLower(email)]; ok {
		return r.byID[id], nil
	}
	if id, ok := r.uname[username]; ok {
		return r.byID[id], nil
	}
	return dom.User{}, ErrNotFound
}

func (r *MemUserRepo) FindByEmail(_ context.Context, email string) (dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.email[strings.ToLower(email)]
	if !ok {
		return dom.User{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *MemUserRepo) FindByID(_ context.Context, id int64) (dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return dom.User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemUserRepo) Create(_ context.Context, username, email, passwordHash string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(email)
	if _, ok := r.email[key]; ok {
		return dom.User{}, ErrDuplicate
	}
	if _, ok := r.uname[username]; ok {
		return dom.User{}, ErrDuplicate
	}
	r.nextID++
	u := dom.User{
		ID:           r.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.byID[u.ID] = u
	r.email[key] = u.ID
	r.uname[username] = u.ID
	return u, nil
}

// Count returns the number of stored users.
func (r *MemUserRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

type MemTodoRepo struct {
	mu     sync.RWMutex
	nextID int64
	todos  map[int64]dom.Todo
}

func NewMemTodoRepo() *MemTodoRepo {
	return &MemTodoRepo{todos: make(map[int64]dom.Todo)}
}

func (r *MemTodoRepo) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	t.ID = r.nextID
	t.Completed = false
	t.CreatedAt = now
	t.UpdatedAt = now
	r.todos[t.ID] = t
	return t, nil
}

func (r *MemTodoRepo) FindByIDAndOwner(_ context.Context, id, ownerID int64) (dom.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.todos[id]
	if !ok || t.UserID != ownerID {
		return dom.Todo{}, ErrNotFound
	}
	return t, nil
}

func (r *MemTodoRepo) ListByOwner(_ context.Context, ownerID int64) ([]dom.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]dom.Todo, 0)
	for _, t := range r.todos {
		if t.UserID == ownerID {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *MemTodoRepo) ListPageByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]dom.Todo, int, error) {
	all, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	if offset >= total {
		return []dom.Todo{}, total, nil
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

func (r *MemTodoRepo) Update(_ context.Context, id int64, patch dom.TodoPatch) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now().UTC()
	r.todos[id] = t
	return t, nil
}

func (r *MemTodoRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[id]; !ok {
		return ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

type MemAddressRepo struct {
	mu        sync.RWMutex
	nextID    int64
	addresses map[int64]dom.Address
}

func NewMemAddressRepo() *MemAddressRepo {
	return &MemAddressRepo{addresses: make(map[int64]dom.Address)}
}

func (r *MemAddressRepo) Create(_ context.Context, a dom.Address) (dom.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	a.CreatedAt = time.Now().UTC()
	r.addresses[a.ID] = a
	return a, nil
}

func (r *MemAddressRepo) FindByIDAndOwner(_ context.Context, id, ownerID int64) (dom.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.addresses[id]
	if !ok || a.UserID != ownerID {
		return dom.Address{}, ErrNotFound
	}
	return a, nil
}

func (r *MemAddressRepo) ListByOwner(_ context.Context, ownerID int64) ([]dom.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]dom.Address, 0)
	for _, a := range r.addresses {
		if a.UserID == ownerID {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *MemAddressRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.addresses[id]; !ok {
		return ErrNotFound
	}
	delete(r.addresses, id)
	return nil
}
