package domain

import "errors"

var (
	// ErrProductNotFound is returned when the commerce API has no product for the given ID
	ErrProductNotFound = errors.New("product not found")

	// ErrMalformedInput is returned when a product record is missing or is not a JSON object
	ErrMalformedInput = errors.New("malformed product record")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCommerceAPIFailure is returned when a commerce API request fails
	ErrCommerceAPIFailure = errors.New("commerce API request failed")
)
