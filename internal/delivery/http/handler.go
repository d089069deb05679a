package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/atelier/storefront/internal/domain"
	"github.com/atelier/storefront/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Handler holds dependencies for HTTP handlers. Nil services answer 501.
type Handler struct {
	comparison *usecase.ComparisonService
	ratings    *usecase.RatingService
	cart       *usecase.CartService
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	comparison *usecase.ComparisonService,
	ratings *usecase.RatingService,
	cart *usecase.CartService,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		comparison: comparison,
		ratings:    ratings,
		cart:       cart,
		logger:     logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storefront-backend",
		"version": "1.0.0",
	})
}

// CompareRecords compares the two product documents posted as {"current": {...}, "compared": {...}}
func (h *Handler) CompareRecords(c *gin.Context) {
	if h.comparison == nil {
		notConfigured(c, "comparison")
		return
	}

	body, err := c.GetRawData()
	if err != nil || !gjson.ValidBytes(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be valid JSON"})
		return
	}

	current := gjson.GetBytes(body, "current")
	compared := gjson.GetBytes(body, "compared")

	table, err := h.comparison.CompareRaw(c.Request.Context(), []byte(current.Raw), []byte(compared.Raw))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": table})
}

// CompareProducts fetches two products by ID and compares them
func (h *Handler) CompareProducts(c *gin.Context) {
	if h.comparison == nil {
		notConfigured(c, "comparison")
		return
	}

	table, err := h.comparison.CompareProducts(c.Request.Context(), c.Param("id"), c.Param("otherId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": table})
}

// GetRatings returns the rating summary of a product
func (h *Handler) GetRatings(c *gin.Context) {
	if h.ratings == nil {
		notConfigured(c, "ratings")
		return
	}

	summary, err := h.ratings.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// AddToCart forwards a cart addition to the commerce API
func (h *Handler) AddToCart(c *gin.Context) {
	if h.cart == nil {
		notConfigured(c, "cart")
		return
	}

	var item domain.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "invalid cart item",
				"fields": fieldErrors(verrs),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a cart item"})
		return
	}

	if err := h.cart.AddToCart(c.Request.Context(), &item); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, "CREATED")
}

// GetCart relays the upstream cart document
func (h *Handler) GetCart(c *gin.Context) {
	if h.cart == nil {
		notConfigured(c, "cart")
		return
	}

	body, err := h.cart.GetCart(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, domain.ErrMalformedInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commerce API rate limit reached, try again later"})
	case errors.Is(err, domain.ErrCommerceAPIFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "commerce API temporarily unavailable"})
	default:
		h.logger.Error("unhandled error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func notConfigured(c *gin.Context, service string) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": service + " service not configured",
	})
}

// fieldErrors renders validator errors as json-field -> failed rule
func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonFieldName(fe.Field())] = fe.Tag()
	}
	return fields
}

// jsonFieldName maps struct field names of domain.CartItem to their JSON names
func jsonFieldName(field string) string {
	switch field {
	case "SKUID":
		return "sku_id"
	default:
		return strings.ToLower(field)
	}
}
