package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atelier/storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxResponseSize caps how much of an upstream body is read into memory
const maxResponseSize = 5 << 20

// ClientConfig holds the settings for the commerce API client
type ClientConfig struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// Client handles communication with the external commerce API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new commerce API client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// The upstream API allows a few requests per second per token
	ratePerSecond := cfg.RatePerSecond
	if ratePerSecond <= 0 {
		ratePerSecond = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 10
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		token:       cfg.Token,
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		logger:      logger.Named("commerce"),
	}
}

// doRequest executes a request against the commerce API and returns the status and body
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body []byte) (int, []byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Storefront/1.0")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrCommerceAPIFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := readLimitedBody(resp.Body, maxResponseSize)
	if errors.Is(err, domain.ErrCommerceAPIFailure) {
		c.logger.Warn("response too large", zap.String("method", method), zap.String("path", path))
		return resp.StatusCode, nil, err
	}
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: reading body: %v", domain.ErrCommerceAPIFailure, err)
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	return resp.StatusCode, respBody, nil
}

// readLimitedBody reads r fully, failing once it holds more than limit bytes
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", domain.ErrCommerceAPIFailure, limit)
	}
	return body, nil
}

// statusError maps a non-2xx upstream status to a domain error
func (c *Client) statusError(status int, body []byte, notFound error) error {
	if status == http.StatusNotFound && notFound != nil {
		return notFound
	}
	c.logger.Warn("unexpected upstream status", zap.Int("status", status), zap.ByteString("body", truncate(body, 256)))
	return fmt.Errorf("%w: status %d", domain.ErrCommerceAPIFailure, status)
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// GetProduct retrieves the raw product document for productID
func (c *Client) GetProduct(ctx context.Context, productID string) ([]byte, error) {
	status, body, err := c.doRequest(ctx, http.MethodGet, "/products/"+url.PathEscape(productID), nil, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, c.statusError(status, body, domain.ErrProductNotFound)
	}
	return body, nil
}

// GetReviewMeta retrieves the raw review metadata (rating histogram) for productID
func (c *Client) GetReviewMeta(ctx context.Context, productID string) ([]byte, error) {
	query := url.Values{}
	query.Set("product_id", productID)

	status, body, err := c.doRequest(ctx, http.MethodGet, "/reviews/meta", query, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, c.statusError(status, body, domain.ErrProductNotFound)
	}
	return body, nil
}

// AddToCart forwards a cart addition
func (c *Client) AddToCart(ctx context.Context, item *domain.CartItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode cart item: %w", err)
	}

	status, body, err := c.doRequest(ctx, http.MethodPost, "/cart", nil, payload)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return c.statusError(status, body, nil)
	}

	c.logger.Info("cart item added", zap.Int("skuId", item.SKUID), zap.Int("count", item.Count))
	return nil
}

// GetCart retrieves the raw cart document
func (c *Client) GetCart(ctx context.Context) ([]byte, error) {
	status, body, err := c.doRequest(ctx, http.MethodGet, "/cart", nil, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, c.statusError(status, body, nil)
	}
	return body, nil
}
