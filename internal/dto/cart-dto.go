package dto

import (
	"github.com/shopspring/decimal"
	"github.com/sundaymarket/shop_service/internal/domain"
)

type AddToCartRequest struct {
	ProductSlug string `json:"product_slug"`
	Quantity    int    `json:"quantity"`
}

type ValidateStockResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

type CartResponse struct {
	CartID     uint              `json:"cart_id,omitempty"`
	Items      []domain.CartItem `json:"items"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	TotalItems int               `json:"total_items"`
}
