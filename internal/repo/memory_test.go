package repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	dom "github.com/birat04/Notionize/internal/domain"
)

func TestMemUserRepoUniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewMemUserRepo()

	if _, err := r.Create(ctx, "alice", "alice@example.com", "h"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.Create(ctx, "alice2", "alice@example.com", "h"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate email: expected ErrDuplicate, got %v", err)
	}
	if _, err := r.Create(ctx, "alice", "other@example.com", "h"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate username: expected ErrDuplicate, got %v", err)
	}
	if r.Count() != 1 {
		t.Fatalf("expected 1 user, got %d", r.Count())
	}

	if _, err := r.FindByEmailOrUsername(ctx, "nobody@example.com", "alice"); err != nil {
		t.Errorf("lookup by username: %v", err)
	}
	if _, err := r.FindByEmail(ctx, "missing@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemUserRepoConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	r := NewMemUserRepo()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Create(ctx, "bob", "bob@example.com", "h"); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if ok != 1 || r.Count() != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d rows", ok, r.Count())
	}
}

func TestMemTodoRepoOwnerScopeAndOrder(t *testing.T) {
	ctx := context.Background()
	r := NewMemTodoRepo()

	var ids []int64
	for _, title := range []string{"first", "second", "third"} {
		td, err := r.Create(ctx, dom.Todo{UserID: 1, Title: title})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, td.ID)
	}
	other, _ := r.Create(ctx, dom.Todo{UserID: 2, Title: "not yours"})

	list, err := r.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(list))
	}
	for i, want := range []int64{ids[2], ids[1], ids[0]} {
		if list[i].ID != want {
			t.Errorf("position %d: expected id %d, got %d", i, want, list[i].ID)
		}
	}

	if _, err := r.FindByIDAndOwner(ctx, other.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign todo should be not found, got %v", err)
	}
}

func TestMemTodoRepoUpdateDelete(t *testing.T) {
	ctx := context.Background()
	r := NewMemTodoRepo()
	td, _ := r.Create(ctx, dom.Todo{UserID: 1, Title: "t", Description: "d"})

	done := true
	updated, err := r.Update(ctx, td.ID, dom.TodoPatch{Completed: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed || updated.Title != "t" || updated.Description != "d" {
		t.Fatalf("unexpected todo after update: %+v", updated)
	}

	if err := r.Delete(ctx, td.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.Delete(ctx, td.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
	if _, err := r.Update(ctx, td.ID, dom.TodoPatch{Completed: &done}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update after delete: expected ErrNotFound, got %v", err)
	}
}

func TestMemAddressRepoOwnerScope(t *testing.T) {
	ctx := context.Background()
	r := NewMemAddressRepo()
	a, _ := r.Create(ctx, dom.Address{UserID: 1, City: "Pune"})
	_, _ = r.Create(ctx, dom.Address{UserID: 2, City: "Oslo"})

	list, _ := r.ListByOwner(ctx, 1)
	if len(list) != 1 || list[0].City != "Pune" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if _, err := r.FindByIDAndOwner(ctx, a.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemTodoRepoListPage(t *testing.T) {
	ctx := context.Background()
	r := NewMemTodoRepo()
	var ids []int64
	for i := 0; i < 7; i++ {
		td, _ := r.Create(ctx, dom.Todo{UserID: 1, Title: "t"})
		ids = append(ids, td.ID)
	}
	_, _ = r.Create(ctx, dom.Todo{UserID: 2, Title: "other"})

	page, total, err := r.ListPageByOwner(ctx, 1, 5, 5)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if total != 7 {
		t.Fatalf("expected total 7, got %d", total)
	}
	if len(page) != 2 || page[0].ID != ids[1] || page[1].ID != ids[0] {
		t.Fatalf("unexpected second page %+v", page)
	}

	past, total, _ := r.ListPageByOwner(ctx, 1, 5, 10)
	if len(past) != 0 || total != 7 {
		t.Fatalf("past the end: got %d items, total %d", len(past), total)
	}
}
