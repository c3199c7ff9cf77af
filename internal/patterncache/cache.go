package patterncache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-scenario/pkg/model"
)

// DefaultSize bounds the number of compiled patterns kept in memory.
const DefaultSize = 256

// Cache compiles validation expressions once and shares the result between
// decodes. Safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, *model.Pattern]
}

// New constructs a cache holding at most size patterns. Non-positive sizes
// fall back to DefaultSize.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, *model.Pattern](size)
	if err != nil {
		return nil, fmt.Errorf("patterncache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Compile returns the cached pattern for expr, compiling it on first use.
// Invalid expressions are not cached.
func (c *Cache) Compile(expr string) (*model.Pattern, error) {
	if c == nil || c.entries == nil {
		return model.NewPattern(expr)
	}
	if pattern, ok := c.entries.Get(expr); ok {
		return pattern, nil
	}
	pattern, err := model.NewPattern(expr)
	if err != nil {
		return nil, err
	}
	c.entries.Add(expr, pattern)
	return pattern, nil
}

// Len reports the number of cached patterns.
func (c *Cache) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}
