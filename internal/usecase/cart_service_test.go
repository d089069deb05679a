package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/atelier/storefront/internal/domain"
)

func TestCartServiceAddToCart(t *testing.T) {
	tests := []struct {
		name      string
		item      *domain.CartItem
		wantErr   error
		wantCount int
	}{
		{name: "defaults count to one", item: &domain.CartItem{SKUID: 1394769}, wantCount: 1},
		{name: "keeps explicit count", item: &domain.CartItem{SKUID: 1394769, Count: 3}, wantCount: 3},
		{name: "nil item", item: nil, wantErr: domain.ErrInvalidRequest},
		{name: "zero sku", item: &domain.CartItem{SKUID: 0}, wantErr: domain.ErrInvalidRequest},
		{name: "negative count", item: &domain.CartItem{SKUID: 1, Count: -1}, wantErr: domain.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewMockCommerceClient()
			service := NewCartService(client)

			err := service.AddToCart(context.Background(), tt.item)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AddToCart() error = %v, want %v", err, tt.wantErr)
				}
				if len(client.added) != 0 {
					t.Errorf("forwarded %d items, want 0", len(client.added))
				}
				return
			}

			if err != nil {
				t.Fatalf("AddToCart() error = %v", err)
			}
			if len(client.added) != 1 {
				t.Fatalf("forwarded %d items, want 1", len(client.added))
			}
			if client.added[0].Count != tt.wantCount {
				t.Errorf("forwarded count = %d, want %d", client.added[0].Count, tt.wantCount)
			}
		})
	}

	t.Run("does not modify the caller's item", func(t *testing.T) {
		service := NewCartService(NewMockCommerceClient())
		item := &domain.CartItem{SKUID: 7}

		if err := service.AddToCart(context.Background(), item); err != nil {
			t.Fatalf("AddToCart() error = %v", err)
		}
		if item.Count != 0 {
			t.Errorf("item.Count = %d, want 0", item.Count)
		}
	})

	t.Run("wraps upstream failure", func(t *testing.T) {
		client := NewMockCommerceClient()
		client.cartError = domain.ErrCommerceAPIFailure
		service := NewCartService(client)

		err := service.AddToCart(context.Background(), &domain.CartItem{SKUID: 7})
		if !errors.Is(err, domain.ErrCommerceAPIFailure) {
			t.Errorf("AddToCart() error = %v, want ErrCommerceAPIFailure", err)
		}
	})
}

func TestCartServiceGetCart(t *testing.T) {
	client := NewMockCommerceClient()
	client.cart = `[{"sku_id": 1394769, "count": 1}]`
	service := NewCartService(client)

	got, err := service.GetCart(context.Background())
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if string(got) != client.cart {
		t.Errorf("GetCart() = %s, want %s", got, client.cart)
	}

	client.cartError = domain.ErrCommerceAPIFailure
	if _, err := service.GetCart(context.Background()); !errors.Is(err, domain.ErrCommerceAPIFailure) {
		t.Errorf("GetCart() error = %v, want ErrCommerceAPIFailure", err)
	}
}
