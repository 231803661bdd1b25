package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
	"golang.org/x/sync/singleflight"
)

// catalogCache is a read-through cache over the game catalog. Catalog
// rows change rarely and every bet reads one; concurrent misses for the
// same game collapse into a single repository call.
type catalogCache struct {
	games domain.GameRepository
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[int64]catalogEntry
	group   singleflight.Group
}

type catalogEntry struct {
	game    *domain.Game
	expires time.Time
}

func newCatalogCache(games domain.GameRepository, ttl time.Duration) *catalogCache {
	return &catalogCache{
		games:   games,
		ttl:     ttl,
		entries: make(map[int64]catalogEntry),
	}
}

// GetByID returns the catalog row, serving from cache within the TTL
func (c *catalogCache) GetByID(ctx context.Context, gameID int64) (*domain.Game, error) {
	if c.ttl <= 0 {
		return c.games.GetByID(ctx, gameID)
	}

	c.mu.RLock()
	entry, ok := c.entries[gameID]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.game, nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("game:%d", gameID), func() (interface{}, error) {
		game, err := c.games.GetByID(ctx, gameID)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[gameID] = catalogEntry{game: game, expires: time.Now().Add(c.ttl)}
		c.mu.Unlock()
		return game, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Game), nil
}

// ListActive always reads through; the listing is not on the bet path
func (c *catalogCache) ListActive(ctx context.Context) ([]*domain.Game, error) {
	return c.games.ListActive(ctx)
}
