package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"sync"

	"go.uber.org/zap"
)

// Cache wraps a Provider with process-wide memoization keyed by the input
// sequence, so repeated analysis of the same upload does not re-embed.
// Entries live until Invalidate is called or the process exits.
type Cache struct {
	provider Provider
	logger   *zap.Logger

	mu      sync.RWMutex
	entries map[[32]byte][][]float64
}

// NewCache creates a memoizing cache around the given provider
func NewCache(provider Provider, logger *zap.Logger) *Cache {
	return &Cache{
		provider: provider,
		logger:   logger,
		entries:  make(map[[32]byte][][]float64),
	}
}

// Dimensions returns the wrapped provider's vector dimension
func (c *Cache) Dimensions() int {
	return c.provider.Dimensions()
}

// Embed returns the memoized vectors for the given input sequence, calling
// the wrapped provider on a cache miss. Cached results are bit-identical
// across calls within one process.
func (c *Cache) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	key := cacheKey(texts)

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		if c.logger != nil {
			c.logger.Debug("embedding_cache_hit", zap.Int("inputs", len(texts)))
		}
		return copyVectors(cached), nil
	}

	vectors, err := c.provider.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = copyVectors(vectors)
	c.mu.Unlock()

	return vectors, nil
}

// Invalidate drops all memoized entries
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[[32]byte][][]float64)
	c.mu.Unlock()
}

// Len returns the number of memoized input sequences
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cacheKey hashes a length-prefixed encoding of the input sequence, so
// ["ab","c"] and ["a","bc"] key differently.
func cacheKey(texts []string) [32]byte {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(len(texts)))
	h.Write(buf[:])
	for _, t := range texts {
		binary.BigEndian.PutUint64(buf[:], uint64(len(t)))
		h.Write(buf[:])
		h.Write([]byte(t))
	}
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func copyVectors(in [][]float64) [][]float64 {
	out := make([][]float64, len(in))
	for i, v := range in {
		vec := make([]float64, len(v))
		copy(vec, v)
		out[i] = vec
	}
	return out
}
