package lang

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// globalCache stores parsed blocks keyed by the xxh3 hash of their text.
// Expressions are never modified after parsing, so entries are shared by
// every session.
var globalCache sync.Map

// entry tracks the parse of one block.
type entry struct {
	once  sync.Once
	block string
	expr  Expr
	err   error
}

// parseCached parses a block, reusing the result of an earlier parse of the
// same text.
func parseCached(ctx context.Context, block string, cfg config) (Expr, error) {
	hash := xxh3.HashString(block)

	value, cacheHit := globalCache.LoadOrStore(hash, &entry{block: block})

	ent, ok := value.(*entry)
	if !ok || ent.block != block {
		// Hash collision with a different block: parse without caching.
		return ParseBlock(ctx, block, WithLogger(cfg.logger))
	}

	cfg.logger.TraceContext(ctx, "cache lookup",
		slog.String("block_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", cacheHit))

	ent.once.Do(func() {
		ent.expr, ent.err = ParseBlock(ctx, block, WithLogger(cfg.logger))
	})

	return ent.expr, ent.err
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
