package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/film-api/internal/repository"
)

// Listing cache keys. Only list results are cached; by-ID reads go straight
// to the database so a stale per-ID entry can never outlive a rename.
const (
	directorsListKey = "directors:list"
	moviesListKey    = "movies:list"

	listCacheTTL = 5 * time.Minute
)

// invalidateLists drops the given listing keys, logging but never failing:
// cache errors degrade to direct database reads.
func invalidateLists(ctx context.Context, cache repository.Cache, logger zerolog.Logger, keys ...string) {
	if cache == nil {
		return
	}
	if err := cache.DeleteMulti(ctx, keys...); err != nil {
		logger.Debug().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}
