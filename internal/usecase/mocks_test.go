package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/atelier/storefront/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu       sync.Mutex
	data     map[string][]byte
	getError error
	setError error
	getCalls int
	setCalls int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// MockCommerceClient is a mock implementation of domain.CommerceClient
type MockCommerceClient struct {
	mu            sync.Mutex
	products      map[string]string
	productErrors map[string]error
	reviewMeta    string
	reviewError   error
	cart          string
	cartError     error
	added         []domain.CartItem
	productCalls  int
}

func NewMockCommerceClient() *MockCommerceClient {
	return &MockCommerceClient{
		products:      make(map[string]string),
		productErrors: make(map[string]error),
	}
}

func (m *MockCommerceClient) GetProduct(ctx context.Context, productID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.productCalls++
	if err, ok := m.productErrors[productID]; ok {
		return nil, err
	}
	doc, ok := m.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return []byte(doc), nil
}

func (m *MockCommerceClient) GetReviewMeta(ctx context.Context, productID string) ([]byte, error) {
	if m.reviewError != nil {
		return nil, m.reviewError
	}
	return []byte(m.reviewMeta), nil
}

func (m *MockCommerceClient) AddToCart(ctx context.Context, item *domain.CartItem) error {
	if m.cartError != nil {
		return m.cartError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, *item)
	return nil
}

func (m *MockCommerceClient) GetCart(ctx context.Context) ([]byte, error) {
	if m.cartError != nil {
		return nil, m.cartError
	}
	return []byte(m.cart), nil
}
