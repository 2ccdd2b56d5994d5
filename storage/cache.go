package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"beacon-api/domain"
)

type backend interface {
	FetchBoards(ctx context.Context, companyID string) ([]domain.Board, error)
	FetchNotifications(ctx context.Context, companyID string) ([]domain.Notification, error)
	InsertBoard(ctx context.Context, board domain.Board) error
	InsertTasks(ctx context.Context, companyID, boardID string, tasks []domain.Task) error
	SaveNotifications(ctx context.Context, companyID string, notifications []domain.Notification) error
	MarkNotificationRead(ctx context.Context, companyID, notificationID string) error
	EnqueueCommands(ctx context.Context, companyID string, cmds []domain.Command) error
}

// Cache wraps a Storage instance with Redis-backed caching for read
// operations. Writes evict the affected company's cached reads so the next
// derivation sees fresh state.
type Cache struct {
	*Storage
	base  backend
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching Storage wrapper using the provided Redis client
// and TTL.
func NewCache(base backend, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base storage is nil")
	}
	if ttl < 0 {
		ttl = 0
	}

	c := &Cache{
		base:  base,
		redis: client,
		ttl:   ttl,
	}
	if s, ok := base.(*Storage); ok {
		c.Storage = s
	}
	return c
}

func (c *Cache) FetchBoards(ctx context.Context, companyID string) ([]domain.Board, error) {
	if boards, ok := loadCached[[]domain.Board](ctx, c.redis, boardsCacheKey(companyID)); ok {
		return boards, nil
	}

	boards, err := c.base.FetchBoards(ctx, companyID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, boardsCacheKey(companyID), boards)
	return boards, nil
}

func (c *Cache) FetchNotifications(ctx context.Context, companyID string) ([]domain.Notification, error) {
	if notifications, ok := loadCached[[]domain.Notification](ctx, c.redis, notificationsCacheKey(companyID)); ok {
		return notifications, nil
	}

	notifications, err := c.base.FetchNotifications(ctx, companyID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, notificationsCacheKey(companyID), notifications)
	return notifications, nil
}

func (c *Cache) InsertBoard(ctx context.Context, board domain.Board) error {
	if err := c.base.InsertBoard(ctx, board); err != nil {
		return err
	}
	c.evict(ctx, boardsCacheKey(board.CompanyID))
	return nil
}

// InsertTasks writes tasks and evicts the owning company's cached boards.
// The company argument drives eviction only; the base write is still keyed
// by board.
func (c *Cache) InsertTasks(ctx context.Context, companyID, boardID string, tasks []domain.Task) error {
	if err := c.base.InsertTasks(ctx, companyID, boardID, tasks); err != nil {
		return err
	}
	c.evict(ctx, boardsCacheKey(companyID))
	return nil
}

func (c *Cache) SaveNotifications(ctx context.Context, companyID string, notifications []domain.Notification) error {
	if err := c.base.SaveNotifications(ctx, companyID, notifications); err != nil {
		return err
	}
	c.evict(ctx, notificationsCacheKey(companyID))
	return nil
}

func (c *Cache) MarkNotificationRead(ctx context.Context, companyID, notificationID string) error {
	if err := c.base.MarkNotificationRead(ctx, companyID, notificationID); err != nil {
		return err
	}
	c.evict(ctx, notificationsCacheKey(companyID))
	return nil
}

func (c *Cache) EnqueueCommands(ctx context.Context, companyID string, cmds []domain.Command) error {
	if err := c.base.EnqueueCommands(ctx, companyID, cmds); err != nil {
		return err
	}
	// Commands mutate tasks downstream; drop both cached views.
	c.evict(ctx, boardsCacheKey(companyID), notificationsCacheKey(companyID))
	return nil
}

func loadCached[T any](ctx context.Context, client *redis.Client, key string) (T, bool) {
	var zero T
	if client == nil {
		return zero, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing storage without failing.
			_ = client.Del(ctx, key).Err()
		}
		return zero, false
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		_ = client.Del(ctx, key).Err()
		return zero, false
	}
	return out, true
}

func (c *Cache) store(ctx context.Context, key string, value any) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context, keys ...string) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, keys...).Result()
}

func boardsCacheKey(companyID string) string {
	return "boards:" + companyID
}

func notificationsCacheKey(companyID string) string {
	return "notifications:" + companyID
}
