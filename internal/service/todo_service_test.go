package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	dom "github.com/birat04/Notionize/internal/domain"
	"github.com/birat04/Notionize/internal/repo"
)

func newTodoService() (*TodoService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewTodoService(repo.NewMemTodoRepo(), nil, pub), pub
}

func ptr[T any](v T) *T { return &v }

func TestCreateTitleBounds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService()

	tests := []struct {
		name  string
		title string
		ok    bool
	}{
		{"empty", "", false},
		{"blank", "   ", false},
		{"255 chars", strings.Repeat("a", 255), true},
		{"255 multibyte chars", strings.Repeat("é", 255), true},
		{"256 chars", strings.Repeat("a", 256), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, tt.title, "")
			if tt.ok && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			var ve *ValidationError
			if !tt.ok && !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestListOrderAndScope(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService()

	a1, _ := svc.Create(ctx, 1, "one", "")
	_, _ = svc.Create(ctx, 2, "theirs", "")
	a2, _ := svc.Create(ctx, 1, "two", "")
	a3, _ := svc.Create(ctx, 1, "three", "")

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []int64{a3.ID, a2.ID, a1.ID}
	if len(list) != len(want) {
		t.Fatalf("expected %d todos, got %d", len(want), len(list))
	}
	for i := range want {
		if list[i].ID != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], list[i].ID)
		}
		if list[i].UserID != 1 {
			t.Errorf("foreign todo leaked: %+v", list[i])
		}
		if i > 0 && list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Errorf("not ordered by creation time descending at %d", i)
		}
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTodoService()

	td, err := svc.Create(ctx, 1, "write tests", "soon")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if td.Completed {
		t.Fatal("new todo must not be completed")
	}

	updated, err := svc.Update(ctx, 1, td.ID, dom.TodoPatch{Completed: ptr(true)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed || updated.Title != "write tests" || updated.Description != "soon" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	got, err := svc.Get(ctx, 1, td.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Completed != updated.Completed || got.Title != updated.Title {
		t.Fatalf("stored todo %+v disagrees with update result %+v", got, updated)
	}

	if _, err := svc.Update(ctx, 1, td.ID, dom.TodoPatch{Title: ptr(" ")}); err == nil {
		t.Fatal("expected blank title patch to fail")
	}

	keys := pub.Keys()
	if len(keys) != 2 || keys[0] != "todo.created" || keys[1] != "todo.updated" {
		t.Errorf("unexpected events %v", keys)
	}
}

func TestForeignTodoIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService()
	theirs, _ := svc.Create(ctx, 2, "private", "")

	if _, err := svc.Get(ctx, 1, theirs.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, 1, theirs.ID, dom.TodoPatch{Completed: ptr(true)}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, 1, theirs.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete: expected ErrNotFound, got %v", err)
	}
	if got, _ := svc.Get(ctx, 2, theirs.ID); got.Completed {
		t.Error("foreign update must not apply")
	}
}

func TestDeleteTwice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService()
	td, _ := svc.Create(ctx, 1, "gone soon", "")

	if err := svc.Delete(ctx, 1, td.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, 1, td.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestListPage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService()
	for i := 0; i < 7; i++ {
		_, _ = svc.Create(ctx, 1, "t", "")
	}
	_, _ = svc.Create(ctx, 2, "other", "")

	page, total, err := svc.ListPage(ctx, 1, 2, 5)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if total != 7 || len(page) != 2 {
		t.Fatalf("expected 2 of 7, got %d of %d", len(page), total)
	}

	tests := []struct {
		name       string
		page, size int
	}{
		{"page zero", 0, 5},
		{"size zero", 1, 0},
		{"size too large", 1, MaxPageSize + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ve *ValidationError
			if _, _, err := svc.ListPage(ctx, 1, tt.page, tt.size); !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}
