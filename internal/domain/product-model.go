package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Slug        string           `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string           `gorm:"not null" json:"name"`
	Description string           `json:"description"`
	PastPrice   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"past_price,omitempty"`
	NewPrice    decimal.Decimal  `gorm:"not null;type:decimal(10,2)" json:"new_price"`
	Stock       int              `gorm:"not null;default:0" json:"stock"`
	ImageURL    *string          `json:"image_url,omitempty"`

	// Soft delete: inactive products stay referenced by past orders.
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	CategoryID *uint     `json:"category_id,omitempty"`
	Category   *Category `json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Products []Product `gorm:"constraint:OnDelete:SET NULL" json:"products,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
