package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	botMoveKeyPrefix = "bot_move:"
)

func botMoveKey(position string) string {
	return botMoveKeyPrefix + position
}

// RedisMoveCache stores bot moves in Redis, keyed by position string.
type RedisMoveCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMoveCache creates a new RedisMoveCache.
func NewRedisMoveCache(client *redis.Client, ttl time.Duration) *RedisMoveCache {
	return &RedisMoveCache{
		client: client,
		ttl:    ttl,
	}
}

// Lookup returns the cached move for a position, if any.
func (c *RedisMoveCache) Lookup(ctx context.Context, position string) (string, bool, error) {
	move, err := c.client.Get(ctx, botMoveKey(position)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("error getting bot move: %w", err)
	}

	return move, true, nil
}

// Store caches the move for a position until the TTL expires.
func (c *RedisMoveCache) Store(ctx context.Context, position string, move string) error {
	if err := c.client.Set(ctx, botMoveKey(position), move, c.ttl).Err(); err != nil {
		return fmt.Errorf("error storing bot move: %w", err)
	}
	return nil
}

type memoryEntry struct {
	move    string
	expires time.Time
}

// MemoryMoveCache implements a simple in-process cache for bot moves.
type MemoryMoveCache struct {
	// data stores the underlying map
	data map[string]memoryEntry

	// dataMutex protects data
	dataMutex sync.Mutex

	ttl time.Duration

	// now is replaced in tests
	now func() time.Time
}

// NewMemoryMoveCache creates a new MemoryMoveCache.
func NewMemoryMoveCache(ttl time.Duration) *MemoryMoveCache {
	return &MemoryMoveCache{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Lookup returns the cached move for a position, if any. Expired entries are dropped.
func (c *MemoryMoveCache) Lookup(_ context.Context, position string) (string, bool, error) {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	entry, ok := c.data[position]
	if !ok {
		return "", false, nil
	}

	if !c.now().Before(entry.expires) {
		delete(c.data, position)
		return "", false, nil
	}

	return entry.move, true, nil
}

// Store caches the move for a position until the TTL expires.
func (c *MemoryMoveCache) Store(_ context.Context, position string, move string) error {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	c.data[position] = memoryEntry{
		move:    move,
		expires: c.now().Add(c.ttl),
	}

	return nil
}

// Len returns the number of items in the cache, including expired ones not yet dropped.
func (c *MemoryMoveCache) Len() int {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	return len(c.data)
}
