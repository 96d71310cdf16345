package dto

import (
	"github.com/shopspring/decimal"
	"github.com/sundaymarket/shop_service/internal/domain"
)

type CreateProductRequest struct {
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	NewPrice    decimal.Decimal  `json:"new_price"`
	PastPrice   *decimal.Decimal `json:"past_price,omitempty"`
	Stock       int              `json:"stock"`
	CategoryID  *uint            `json:"category_id,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	NewPrice    *decimal.Decimal `json:"new_price,omitempty"`
	PastPrice   *decimal.Decimal `json:"past_price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	CategoryID  *uint            `json:"category_id,omitempty"`
}

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type ProductListResponse struct {
	Category string           `json:"category,omitempty"`
	Data     []domain.Product `json:"data"`
	Meta     PageMeta         `json:"meta"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}
