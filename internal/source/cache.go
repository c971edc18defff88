package source

import (
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoises successful Parse results keyed by raw path. Failed parses are
// not stored. A Cache is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, Descriptor]
}

// NewCache returns a cache holding up to size descriptors. A size of zero or
// less disables caching and every call goes straight to Parse.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return &Cache{}, nil
	}
	entries, err := lru.New[string, Descriptor](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Parse returns the cached descriptor for raw or parses and stores it.
func (c *Cache) Parse(raw string) (Descriptor, error) {
	return c.lookup(raw, Parse)
}

// ParseLocation is the cached counterpart of the package level ParseLocation.
func (c *Cache) ParseLocation(location string) (Descriptor, error) {
	if !utf8.ValidString(location) {
		return Descriptor{}, &PathError{Code: CodeInvalidPath, Path: location}
	}
	return c.lookup(location, Parse)
}

func (c *Cache) lookup(key string, parse func(string) (Descriptor, error)) (Descriptor, error) {
	if c == nil || c.entries == nil {
		return parse(key)
	}
	if desc, ok := c.entries.Get(key); ok {
		return desc, nil
	}
	desc, err := parse(key)
	if err != nil {
		return Descriptor{}, err
	}
	c.entries.Add(key, desc)
	return desc, nil
}

// Len reports how many descriptors are cached.
func (c *Cache) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// Purge drops every cached descriptor.
func (c *Cache) Purge() {
	if c == nil || c.entries == nil {
		return
	}
	c.entries.Purge()
}
