package domain

// RatingSummary aggregates the star-rating histogram of a product
type RatingSummary struct {
	ProductID    string      `json:"productId,omitempty"`
	TotalReviews int         `json:"totalReviews"`
	Average      float64     `json:"average"`
	Stars        float64     `json:"stars"` // Average rounded to the nearest quarter star
	Counts       map[int]int `json:"counts"`
}
