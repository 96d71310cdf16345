package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case OrderStatusPending:
		return OrderStatusPending, true
	case OrderStatusPaid:
		return OrderStatusPaid, true
	case OrderStatusProcessing:
		return OrderStatusProcessing, true
	case OrderStatusShipped:
		return OrderStatusShipped, true
	case OrderStatusDelivered:
		return OrderStatusDelivered, true
	case OrderStatusCanceled:
		return OrderStatusCanceled, true
	}
	return "", false
}

type Order struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Number string `gorm:"uniqueIndex;not null" json:"number"`

	UserID    uint `gorm:"not null;index" json:"user_id"`
	AddressID uint `gorm:"not null" json:"address_id"`

	// Frozen at checkout; later product price changes never touch it.
	TotalPrice decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total_price"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"not null;index" json:"order_id"`
	ProductID uint `gorm:"not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`

	PriceAtPurchase decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price_at_purchase"`

	Product *Product `json:"product,omitempty"`
}
