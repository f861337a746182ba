package cache

import (
	"context"
	"errors"

	"github.com/Aadcode/greenmile-integration/internal/domain"
)

type VariantCache interface {
	Get(ctx context.Context, variantID string) (*domain.Variant, error)
	Set(ctx context.Context, variantID string, v *domain.Variant) error
	Delete(ctx context.Context, variantID string) error
}

var ErrCacheMiss = errors.New("cache miss")
