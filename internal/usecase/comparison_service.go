package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atelier/storefront/internal/domain"
	"github.com/atelier/storefront/internal/infrastructure/commerce"
	"golang.org/x/sync/errgroup"
)

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	CacheTTL    time.Duration
	ExcludeKeys []string
}

// ComparisonService fetches product records and builds comparison tables
type ComparisonService struct {
	cache       domain.CacheRepository
	client      domain.CommerceClient
	cacheTTL    time.Duration
	excludeKeys []string
}

// NewComparisonService creates a new comparison service with dependencies
func NewComparisonService(
	cache domain.CacheRepository,
	client domain.CommerceClient,
	config ComparisonServiceConfig,
) *ComparisonService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &ComparisonService{
		cache:       cache,
		client:      client,
		cacheTTL:    cacheTTL,
		excludeKeys: config.ExcludeKeys,
	}
}

// CompareRaw decodes two product documents and compares them. It does no I/O.
// A missing or non-object document yields domain.ErrMalformedInput.
func (s *ComparisonService) CompareRaw(_ context.Context, current, compared []byte) (domain.ComparisonTable, error) {
	left, err := commerce.DecodeProductRecord(current)
	if err != nil {
		return nil, fmt.Errorf("current product: %w", err)
	}
	right, err := commerce.DecodeProductRecord(compared)
	if err != nil {
		return nil, fmt.Errorf("compared product: %w", err)
	}

	return s.compare(left, right)
}

// CompareProducts fetches both products concurrently and compares them.
// Flow: cache -> commerce API -> cache -> decode -> build rows
func (s *ComparisonService) CompareProducts(ctx context.Context, currentID, comparedID string) (domain.ComparisonTable, error) {
	if strings.TrimSpace(currentID) == "" || strings.TrimSpace(comparedID) == "" {
		return nil, domain.ErrInvalidRequest
	}

	var currentRaw, comparedRaw []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		currentRaw, err = s.fetchProduct(gctx, currentID)
		return err
	})
	g.Go(func() error {
		var err error
		comparedRaw, err = s.fetchProduct(gctx, comparedID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.CompareRaw(ctx, currentRaw, comparedRaw)
}

func (s *ComparisonService) compare(left, right *domain.ProductRecord) (domain.ComparisonTable, error) {
	if len(s.excludeKeys) > 0 {
		left = left.Without(s.excludeKeys...)
		right = right.Without(s.excludeKeys...)
	}
	return BuildRows(left, right)
}

// fetchProduct returns the raw product document, serving it from cache when possible
func (s *ComparisonService) fetchProduct(ctx context.Context, productID string) ([]byte, error) {
	key := productCacheKey(productID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			return cached, nil
		}
	}

	raw, err := s.client.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// A failed cache write only costs a refetch next time
		_ = s.cache.Set(ctx, key, raw, s.cacheTTL)
	}
	return raw, nil
}

// productCacheKey formats "product:{id}"
func productCacheKey(productID string) string {
	return "product:" + strings.TrimSpace(productID)
}
