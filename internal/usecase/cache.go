package usecase

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// SearchCache also drops whole key families, for results derived from many rows.
type SearchCache interface {
	Cache
	DeleteByPattern(ctx context.Context, pattern string) error
}
