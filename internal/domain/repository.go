package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching raw documents.
// Values are opaque bytes so a Redis backend can share the same contract.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CommerceClient defines the interface for the external commerce API.
// Product and review payloads are returned undecoded; key order matters to callers.
type CommerceClient interface {
	GetProduct(ctx context.Context, productID string) ([]byte, error)
	GetReviewMeta(ctx context.Context, productID string) ([]byte, error)
	AddToCart(ctx context.Context, item *CartItem) error
	GetCart(ctx context.Context) ([]byte, error)
}
