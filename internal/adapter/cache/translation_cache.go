package cache

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
	"slidergraph/internal/port"
)

const DefaultSize = 256

// CachedTranslator memoizes translations by source hash. Batch runs see the
// same helper functions in many files, and the assembler may be rebuilt per
// override without retranslating.
type CachedTranslator struct {
	translator port.Translator
	cache      *lru.Cache[string, string]
	hits       int
	misses     int
}

func NewCachedTranslator(translator port.Translator, size int) (*CachedTranslator, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &CachedTranslator{
		translator: translator,
		cache:      c,
	}, nil
}

// SourceHash is the cache key and the change detector used by the store.
func SourceHash(source string) string {
	hash := sha256.Sum256([]byte(source))
	return hex.EncodeToString(hash[:16])
}

func (c *CachedTranslator) Translate(source string) string {
	key := SourceHash(source)
	if out, ok := c.cache.Get(key); ok {
		c.hits++
		return out
	}
	c.misses++
	out := c.translator.Translate(source)
	c.cache.Add(key, out)
	return out
}

// Purge drops every cached translation, e.g. after the mapping table changed.
func (c *CachedTranslator) Purge() {
	c.cache.Purge()
}

func (c *CachedTranslator) Len() int {
	return c.cache.Len()
}

// Stats returns hit and miss counts since creation.
func (c *CachedTranslator) Stats() (hits, misses int) {
	return c.hits, c.misses
}
