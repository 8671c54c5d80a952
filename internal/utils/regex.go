package utils

import (
	"fmt"
	"regexp"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LazyRegex compiles a regex pattern on first use and caches the result.
type LazyRegex struct {
	pattern string
	once    sync.Once
	re      *regexp.Regexp
}

// NewLazyRegex creates a LazyRegex that will compile pattern on first use.
func NewLazyRegex(pattern string) *LazyRegex {
	return &LazyRegex{pattern: pattern}
}

// Re returns the compiled regexp, compiling it on first call.
// Panics if the pattern is invalid.
func (lr *LazyRegex) Re() *regexp.Regexp {
	lr.once.Do(func() {
		lr.re = regexp.MustCompile(lr.pattern)
	})
	return lr.re
}

// RegexCache compiles user-supplied patterns, keeping the most recent ones.
type RegexCache struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

// NewRegexCache creates a cache holding up to size compiled patterns.
func NewRegexCache(size int) *RegexCache {
	if size <= 0 {
		size = 64
	}
	cache, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		// lru.New only fails for non-positive sizes
		panic(err)
	}
	return &RegexCache{cache: cache}
}

// Compile returns the compiled pattern, compiling and caching it on a miss.
func (c *RegexCache) Compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := c.cache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	c.cache.Add(pattern, re)
	return re, nil
}

// Len returns the number of cached patterns.
func (c *RegexCache) Len() int {
	return c.cache.Len()
}
