package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	dom "github.com/birat04/Notionize/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyList = "todo:list:"
	keyGen  = "todo:gen:"
)

// TodoCache caches each owner's todo list in Redis. Lists are stored under
// the owner's current generation; Invalidate bumps the generation, so a list
// computed before a write can never be served after it.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

func genKey(userID int64) string {
	return keyGen + strconv.FormatInt(userID, 10)
}

func listKey(userID, gen int64) string {
	return keyList + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(gen, 10)
}

// Generation returns the owner's current cache generation, 0 if never bumped.
func (c *TodoCache) Generation(ctx context.Context, userID int64) (int64, error) {
	gen, err := c.rdb.Get(ctx, genKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetList returns the list cached for userID at gen, or nil on a miss.
func (c *TodoCache) GetList(ctx context.Context, userID, gen int64) ([]dom.Todo, error) {
	b, err := c.rdb.Get(ctx, listKey(userID, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list := make([]dom.Todo, 0)
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the list for userID at gen.
func (c *TodoCache) SetList(ctx context.Context, userID, gen int64, list []dom.Todo) error {
	if list == nil {
		list = []dom.Todo{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(userID, gen), b, c.ttl).Err()
}

// Invalidate moves userID to a new generation. Lists cached under older
// generations are left to expire.
func (c *TodoCache) Invalidate(ctx context.Context, userID int64) error {
	return c.rdb.Incr(ctx, genKey(userID)).Err()
}
