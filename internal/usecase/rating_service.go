package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/atelier/storefront/internal/domain"
	"github.com/atelier/storefront/internal/infrastructure/commerce"
)

const (
	minStars = 1
	maxStars = 5
)

// RatingService summarizes a product's review ratings
type RatingService struct {
	client domain.CommerceClient
}

// NewRatingService creates a new rating service
func NewRatingService(client domain.CommerceClient) *RatingService {
	return &RatingService{client: client}
}

// Summary fetches the review metadata for productID and aggregates its rating histogram
func (s *RatingService) Summary(ctx context.Context, productID string) (*domain.RatingSummary, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.ErrInvalidRequest
	}

	raw, err := s.client.GetReviewMeta(ctx, productID)
	if err != nil {
		return nil, err
	}

	counts, err := commerce.DecodeRatings(raw)
	if err != nil {
		return nil, fmt.Errorf("review metadata for product %s: %w", productID, err)
	}

	summary := SummarizeRatings(counts)
	summary.ProductID = productID
	return &summary, nil
}

// SummarizeRatings computes the review total, mean rating and quarter-star rounding of a
// star histogram. Stars outside 1-5 and negative counts are ignored.
func SummarizeRatings(counts map[int]int) domain.RatingSummary {
	summary := domain.RatingSummary{Counts: make(map[int]int)}

	weighted := 0
	for stars, count := range counts {
		if stars < minStars || stars > maxStars || count <= 0 {
			continue
		}
		summary.Counts[stars] = count
		summary.TotalReviews += count
		weighted += stars * count
	}

	if summary.TotalReviews == 0 {
		return summary
	}

	summary.Average = float64(weighted) / float64(summary.TotalReviews)
	summary.Stars = roundToQuarter(summary.Average)
	return summary
}

func roundToQuarter(v float64) float64 {
	return math.Max(0, math.Min(maxStars, math.Round(v*4)/4))
}
