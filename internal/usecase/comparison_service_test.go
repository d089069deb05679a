package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atelier/storefront/internal/domain"
	"github.com/google/go-cmp/cmp"
)

const (
	onesieDoc     = `{"id": 37311, "campus": "hr-rfe", "name": "Camo Onesie", "default_price": "140.00", "features": [{"feature": "Fabric", "value": "Canvas"}, {"feature": "Buttons", "value": "Brass"}]}`
	sunglassesDoc = `{"id": 37312, "name": "Bright Future Sunglasses", "default_price": "69.00", "features": [{"feature": "Lenses", "value": "Ultrasheen"}]}`
)

func TestNewComparisonService(t *testing.T) {
	t.Run("applies default cache TTL", func(t *testing.T) {
		service := NewComparisonService(nil, NewMockCommerceClient(), ComparisonServiceConfig{})
		if service.cacheTTL != time.Hour {
			t.Errorf("cacheTTL = %v, want 1h", service.cacheTTL)
		}
	})

	t.Run("keeps configured values", func(t *testing.T) {
		service := NewComparisonService(nil, NewMockCommerceClient(), ComparisonServiceConfig{
			CacheTTL:    5 * time.Minute,
			ExcludeKeys: []string{"id"},
		})
		if service.cacheTTL != 5*time.Minute {
			t.Errorf("cacheTTL = %v, want 5m", service.cacheTTL)
		}
		if diff := cmp.Diff([]string{"id"}, service.excludeKeys); diff != "" {
			t.Errorf("excludeKeys mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCompareRaw(t *testing.T) {
	service := NewComparisonService(nil, NewMockCommerceClient(), ComparisonServiceConfig{ExcludeKeys: []string{"id", "campus"}})

	t.Run("decodes and compares documents", func(t *testing.T) {
		got, err := service.CompareRaw(context.Background(), []byte(onesieDoc), []byte(sunglassesDoc))
		if err != nil {
			t.Fatalf("CompareRaw() error = %v", err)
		}

		want := domain.ComparisonTable{
			{Category: "Name", Kind: domain.RowTitle, Left: strp("Name: Camo Onesie"), Right: strp("Name: Bright Future Sunglasses")},
			{Category: "Default price", Kind: domain.RowScalar, Left: strp("140.00"), Right: strp("69.00")},
			{Category: "Features", Kind: domain.RowNestedList, LeftItems: []string{"Canvas", "Brass"}, RightItems: []string{"Ultrasheen", ""}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("CompareRaw() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("does not depend on the context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		got, err := service.CompareRaw(ctx, []byte(onesieDoc), []byte(sunglassesDoc))
		if err != nil {
			t.Fatalf("CompareRaw() error = %v, want nil for a cancelled context", err)
		}
		if len(got) != 3 {
			t.Errorf("rows = %d, want 3", len(got))
		}
	})

	t.Run("rejects malformed documents", func(t *testing.T) {
		tests := []struct {
			name     string
			current  string
			compared string
		}{
			{name: "missing current", current: "", compared: sunglassesDoc},
			{name: "array compared", current: onesieDoc, compared: `[1, 2]`},
			{name: "null current", current: "null", compared: sunglassesDoc},
			{name: "truncated compared", current: onesieDoc, compared: `{"name": `},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := service.CompareRaw(context.Background(), []byte(tt.current), []byte(tt.compared))
				if !errors.Is(err, domain.ErrMalformedInput) {
					t.Errorf("CompareRaw() error = %v, want ErrMalformedInput", err)
				}
			})
		}
	})
}

func TestCompareProducts(t *testing.T) {
	newClient := func() *MockCommerceClient {
		client := NewMockCommerceClient()
		client.products["37311"] = onesieDoc
		client.products["37312"] = sunglassesDoc
		return client
	}

	t.Run("fetches both products and caches them", func(t *testing.T) {
		cache := NewMockCacheRepository()
		client := newClient()
		service := NewComparisonService(cache, client, ComparisonServiceConfig{ExcludeKeys: []string{"id", "campus"}})

		table, err := service.CompareProducts(context.Background(), "37311", "37312")
		if err != nil {
			t.Fatalf("CompareProducts() error = %v", err)
		}
		if len(table) != 3 {
			t.Errorf("rows = %d, want 3", len(table))
		}
		if client.productCalls != 2 {
			t.Errorf("productCalls = %d, want 2", client.productCalls)
		}
		for _, key := range []string{"product:37311", "product:37312"} {
			if ok, _ := cache.Exists(context.Background(), key); !ok {
				t.Errorf("cache key %s not set", key)
			}
		}
	})

	t.Run("serves cached products without calling the API", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.data["product:1"] = []byte(`{"name": "Cached A"}`)
		cache.data["product:2"] = []byte(`{"name": "Cached B"}`)
		client := NewMockCommerceClient()
		service := NewComparisonService(cache, client, ComparisonServiceConfig{})

		table, err := service.CompareProducts(context.Background(), "1", "2")
		if err != nil {
			t.Fatalf("CompareProducts() error = %v", err)
		}
		if client.productCalls != 0 {
			t.Errorf("productCalls = %d, want 0", client.productCalls)
		}
		if *table[0].Left != "Name: Cached A" || *table[0].Right != "Name: Cached B" {
			t.Errorf("title row = %+v", table[0])
		}
	})

	t.Run("cache failures fall through to the API", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.getError = errors.New("cache down")
		cache.setError = errors.New("cache down")
		client := newClient()
		service := NewComparisonService(cache, client, ComparisonServiceConfig{})

		if _, err := service.CompareProducts(context.Background(), "37311", "37312"); err != nil {
			t.Fatalf("CompareProducts() error = %v, want nil", err)
		}
		if client.productCalls != 2 {
			t.Errorf("productCalls = %d, want 2", client.productCalls)
		}
	})

	t.Run("works without a cache", func(t *testing.T) {
		service := NewComparisonService(nil, newClient(), ComparisonServiceConfig{})

		if _, err := service.CompareProducts(context.Background(), "37311", "37312"); err != nil {
			t.Errorf("CompareProducts() error = %v, want nil", err)
		}
	})

	t.Run("propagates a missing product", func(t *testing.T) {
		service := NewComparisonService(nil, newClient(), ComparisonServiceConfig{})

		_, err := service.CompareProducts(context.Background(), "37311", "99999")
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("CompareProducts() error = %v, want ErrProductNotFound", err)
		}
	})

	t.Run("propagates API failure", func(t *testing.T) {
		client := newClient()
		client.productErrors["37312"] = domain.ErrCommerceAPIFailure
		service := NewComparisonService(nil, client, ComparisonServiceConfig{})

		_, err := service.CompareProducts(context.Background(), "37311", "37312")
		if !errors.Is(err, domain.ErrCommerceAPIFailure) {
			t.Errorf("CompareProducts() error = %v, want ErrCommerceAPIFailure", err)
		}
	})

	t.Run("rejects empty IDs", func(t *testing.T) {
		client := newClient()
		service := NewComparisonService(nil, client, ComparisonServiceConfig{})

		for _, ids := range [][2]string{{"", "1"}, {"1", " "}} {
			_, err := service.CompareProducts(context.Background(), ids[0], ids[1])
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("CompareProducts(%q, %q) error = %v, want ErrInvalidRequest", ids[0], ids[1], err)
			}
		}
		if client.productCalls != 0 {
			t.Errorf("productCalls = %d, want 0", client.productCalls)
		}
	})
}

func TestProductCacheKey(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{id: "37311", want: "product:37311"},
		{id: " 37311 ", want: "product:37311"},
	}

	for _, tt := range tests {
		if got := productCacheKey(tt.id); got != tt.want {
			t.Errorf("productCacheKey(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
