package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sundaymarket/shop_service/internal/domain"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper"
	"github.com/sundaymarket/shop_service/internal/repository"
	"gorm.io/gorm"
)

type OrderService interface {
	Checkout(userID uint, addressID uint) (*domain.Order, error)
	GetOrdersByUser(userID uint) ([]domain.Order, error)
	GetAllOrders(page, limit int) (*dto.OrderListResponse, error)
	GetOrdersByStatus(status string, page, limit int) (*dto.OrderListResponse, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	addressRepo repository.AddressRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
	}
}

// Checkout turns the user's cart into an order. The stock pre-check
// gives a readable error naming the first short product; the decisive
// check is the conditional decrement inside PlaceOrder, which holds up
// under concurrent checkouts.
func (s *orderService) Checkout(userID uint, addressID uint) (*domain.Order, error) {
	if addressID == 0 {
		return nil, helper.ErrValidation("address_id is required")
	}

	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("address not found")
		}
		return nil, helper.ErrInternal("failed to process order", err)
	}
	if address.UserID != userID {
		return nil, helper.ErrForbidden("address does not belong to you")
	}

	cart, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrValidation("your cart is empty")
		}
		return nil, helper.ErrInternal("failed to process order", err)
	}
	if len(cart.Items) == 0 {
		return nil, helper.ErrValidation("your cart is empty")
	}

	totalPrice := decimal.Zero
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.Product == nil {
			return nil, helper.ErrInternal("failed to process order",
				fmt.Errorf("cart item %d has no product loaded", item.ID))
		}
		if item.Product.Stock < item.Quantity {
			return nil, helper.ErrValidation(
				fmt.Sprintf("insufficient stock for product: %s", item.Product.Name),
			)
		}

		// Charged at the live price, not the add-to-cart price.
		line := item.Product.NewPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalPrice = totalPrice.Add(line)

		items = append(items, domain.OrderItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.Product.NewPrice,
		})
	}

	order := &domain.Order{
		Number:     uuid.NewString(),
		UserID:     userID,
		AddressID:  addressID,
		TotalPrice: totalPrice,
		Status:     domain.OrderStatusPending,
		Items:      items,
	}

	if err := s.orderRepo.PlaceOrder(order, cart); err != nil {
		var appErr *helper.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, helper.ErrInternal("failed to process order, try again", err)
	}

	return order, nil
}

func (s *orderService) GetOrdersByUser(userID uint) ([]domain.Order, error) {
	orders, err := s.orderRepo.FindByUser(userID)
	if err != nil {
		return nil, helper.ErrInternal("failed to fetch orders", err)
	}
	return orders, nil
}

func (s *orderService) GetAllOrders(page, limit int) (*dto.OrderListResponse, error) {
	offset, limit := Pagination(page, limit)

	orders, total, err := s.orderRepo.List(offset, limit)
	if err != nil {
		return nil, helper.ErrInternal("failed to fetch orders", err)
	}

	meta := dto.OrderListMeta{
		TotalOrders: total,
		Page:        page,
		Limit:       limit,
		TotalPages:  TotalPages(total, limit),
	}

	counts := []struct {
		status domain.OrderStatus
		dst    *int64
	}{
		{domain.OrderStatusPending, &meta.TotalOrdersPending},
		{domain.OrderStatusPaid, &meta.TotalOrdersPaid},
		{domain.OrderStatusProcessing, &meta.TotalOrdersProcessing},
		{domain.OrderStatusShipped, &meta.TotalOrdersShipped},
		{domain.OrderStatusDelivered, &meta.TotalOrdersDelivered},
		{domain.OrderStatusCanceled, &meta.TotalOrdersCanceled},
	}
	for _, c := range counts {
		n, err := s.orderRepo.CountByStatus(c.status)
		if err != nil {
			return nil, helper.ErrInternal("failed to fetch orders", err)
		}
		*c.dst = n
	}

	return &dto.OrderListResponse{Orders: orders, Meta: meta}, nil
}

func (s *orderService) GetOrdersByStatus(status string, page, limit int) (*dto.OrderListResponse, error) {
	parsed, ok := domain.ParseOrderStatus(status)
	if !ok {
		return nil, helper.ErrValidation(fmt.Sprintf("invalid status: %s", status))
	}

	offset, limit := Pagination(page, limit)

	orders, total, err := s.orderRepo.ListByStatus(parsed, offset, limit)
	if err != nil {
		return nil, helper.ErrInternal("failed to fetch orders", err)
	}

	return &dto.OrderListResponse{
		Orders: orders,
		Meta: dto.OrderListMeta{
			TotalOrders: total,
			Page:        page,
			Limit:       limit,
			TotalPages:  TotalPages(total, limit),
		},
	}, nil
}
