package usecase

import (
	"context"
	"fmt"

	"github.com/atelier/storefront/internal/domain"
)

// CartService forwards cart operations to the commerce API
type CartService struct {
	client domain.CommerceClient
}

// NewCartService creates a new cart service
func NewCartService(client domain.CommerceClient) *CartService {
	return &CartService{client: client}
}

// AddToCart forwards a cart addition. A missing count means one unit.
func (s *CartService) AddToCart(ctx context.Context, item *domain.CartItem) error {
	if item == nil || item.SKUID <= 0 || item.Count < 0 {
		return domain.ErrInvalidRequest
	}

	forwarded := *item
	if forwarded.Count == 0 {
		forwarded.Count = 1
	}

	if err := s.client.AddToCart(ctx, &forwarded); err != nil {
		return fmt.Errorf("add sku %d to cart: %w", item.SKUID, err)
	}
	return nil
}

// GetCart returns the upstream cart document unchanged
func (s *CartService) GetCart(ctx context.Context) ([]byte, error) {
	return s.client.GetCart(ctx)
}
