package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/birat04/Notionize/internal/cache"
	dom "github.com/birat04/Notionize/internal/domain"
	"github.com/birat04/Notionize/internal/events"
	"github.com/birat04/Notionize/internal/repo"

	"golang.org/x/sync/singleflight"
)

const (
	// MaxTitleLen is the longest title accepted, in characters.
	MaxTitleLen = 255
	// DefaultPageSize applies when only page is given.
	DefaultPageSize = 5
	MaxPageSize     = 100
)

type TodoService struct {
	repo   repo.TodoRepo
	cache  *cache.TodoCache
	events events.Publisher
	sf     singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled;
// if pub is nil, events are dropped.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache, pub events.Publisher) *TodoService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &TodoService{repo: r, cache: c, events: pub}
}

func validateTitle(title string) error {
	if title == "" {
		return invalid("title", "is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return invalid("title", "must be at most 255 characters")
	}
	return nil
}

func (s *TodoService) Create(ctx context.Context, userID int64, title, desc string) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(desc)
	if err := validateTitle(title); err != nil {
		return dom.Todo{}, err
	}

	t, err := s.repo.Create(ctx, dom.Todo{
		UserID:      userID,
		Title:       title,
		Description: desc,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, userID)
	s.publish(ctx, events.TodoCreated, t)
	return t, nil
}

// List returns the owner's todos, newest first.
func (s *TodoService) List(ctx context.Context, userID int64) ([]dom.Todo, error) {
	if s.cache == nil {
		return s.repo.ListByOwner(ctx, userID)
	}
	gen, err := s.cache.Generation(ctx, userID)
	if err != nil {
		log.Printf("todo cache generation user=%d: %v", userID, err)
		return s.repo.ListByOwner(ctx, userID)
	}
	key := "list:" + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(gen, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		// shared by every waiter on key, so it must not die with the first caller
		ctx := context.WithoutCancel(ctx)
		if list, err := s.cache.GetList(ctx, userID, gen); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.ListByOwner(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetList(ctx, userID, gen, list); err != nil {
			log.Printf("todo cache set user=%d: %v", userID, err)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Todo), nil
}

// ListPage returns one page of the owner's todos, newest first, with the
// owner's total count. Pages are 1-based and bypass the cache.
func (s *TodoService) ListPage(ctx context.Context, userID int64, page, pageSize int) ([]dom.Todo, int, error) {
	if page < 1 {
		return nil, 0, invalid("page", "must be at least 1")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, 0, invalid("page_size", "must be between 1 and 100")
	}
	return s.repo.ListPageByOwner(ctx, userID, pageSize, (page-1)*pageSize)
}

// Get returns the todo if userID owns it. A foreign todo is ErrNotFound.
func (s *TodoService) Get(ctx context.Context, userID, id int64) (dom.Todo, error) {
	t, err := s.repo.FindByIDAndOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

func (s *TodoService) Update(ctx context.Context, userID, id int64, patch dom.TodoPatch) (dom.Todo, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := validateTitle(title); err != nil {
			return dom.Todo{}, err
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		patch.Description = &desc
	}

	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return dom.Todo{}, err
	}
	if patch.Empty() {
		return existing, nil
	}
	t, err := s.repo.Update(ctx, existing.ID, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, userID)
	s.publish(ctx, events.TodoUpdated, t)
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id int64) error {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx, userID)
	s.publish(ctx, events.TodoDeleted, existing)
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			log.Printf("todo cache invalidate user=%d: %v", userID, err)
		}
	}
}

func (s *TodoService) publish(ctx context.Context, key string, t dom.Todo) {
	ev := events.TodoEvent{TodoID: t.ID, UserID: t.UserID, At: time.Now().UTC()}
	if err := s.events.Publish(ctx, key, ev); err != nil {
		log.Printf("publish %s: %v", key, err)
	}
}
