package holiday

import (
	"context"
	"fmt"
	"sync"
)

// Cache memoizes Source lookups keyed by state and year. Create one per
// request or job run; it is not meant to live across them.
type Cache struct {
	src  Source
	mu   sync.Mutex
	data map[string]map[string]string
}

func NewCache(src Source) *Cache {
	return &Cache{
		src:  src,
		data: make(map[string]map[string]string),
	}
}

// Holidays implements Source.
func (c *Cache) Holidays(ctx context.Context, year int, state string) (map[string]string, error) {
	key := fmt.Sprintf("%s:%d", state, year)

	c.mu.Lock()
	cached, ok := c.data[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	fetched, err := c.src.Holidays(ctx, year, state)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.data[key] = fetched
	c.mu.Unlock()
	return fetched, nil
}
