package cache

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/Aadcode/greenmile-integration/internal/domain"
)

// VariantFetcher is the backend lookup behind the cache, normally the
// medusa client.
type VariantFetcher interface {
	GetVariant(ctx context.Context, variantID string) (*domain.Variant, error)
}

// CachingVariantSource serves variant lookups cache-aside. The guard sits on
// the add-to-cart hot path, so misses are collapsed with singleflight and
// cache failures are logged and bypassed rather than surfaced.
type CachingVariantSource struct {
	cache   VariantCache
	fetcher VariantFetcher
	sfg     singleflight.Group
	log     *slog.Logger
}

func NewCachingVariantSource(cache VariantCache, fetcher VariantFetcher, log *slog.Logger) *CachingVariantSource {
	if log == nil {
		log = slog.Default()
	}
	return &CachingVariantSource{cache: cache, fetcher: fetcher, log: log}
}

func (s *CachingVariantSource) Variant(ctx context.Context, variantID string) (*domain.Variant, error) {
	v, err, _ := s.sfg.Do(variantID, func() (interface{}, error) {
		if s.cache != nil {
			cached, errGet := s.cache.Get(ctx, variantID)
			if errGet == nil {
				return cached, nil
			}
			if !errors.Is(errGet, ErrCacheMiss) {
				s.log.Warn("variant cache get failed", "variant_id", variantID, "err", errGet)
			}
		}

		fetched, errFetch := s.fetcher.GetVariant(ctx, variantID)
		if errFetch != nil {
			return nil, errFetch
		}

		if s.cache != nil {
			go func() {
				if errSet := s.cache.Set(context.Background(), variantID, fetched); errSet != nil {
					s.log.Warn("variant cache set failed", "variant_id", variantID, "err", errSet)
				}
			}()
		}
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Variant), nil
}
