package dto

import "github.com/sundaymarket/shop_service/internal/domain"

type CreateOrderRequest struct {
	AddressID uint `json:"address_id"`
}

type OrderListMeta struct {
	TotalOrders           int64 `json:"total_orders"`
	TotalOrdersPending    int64 `json:"total_orders_pending"`
	TotalOrdersPaid       int64 `json:"total_orders_paid"`
	TotalOrdersProcessing int64 `json:"total_orders_processing"`
	TotalOrdersShipped    int64 `json:"total_orders_shipped"`
	TotalOrdersDelivered  int64 `json:"total_orders_delivered"`
	TotalOrdersCanceled   int64 `json:"total_orders_canceled"`
	Page                  int   `json:"page"`
	Limit                 int   `json:"limit"`
	TotalPages            int   `json:"total_pages"`
}

type OrderListResponse struct {
	Orders []domain.Order `json:"orders"`
	Meta   OrderListMeta  `json:"meta"`
}
