package domain

// CartItem is a cart addition forwarded to the commerce API
type CartItem struct {
	SKUID int `json:"sku_id" binding:"required,gt=0"`
	Count int `json:"count,omitempty" binding:"gte=0"`
}
