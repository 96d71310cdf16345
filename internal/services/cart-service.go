package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sundaymarket/shop_service/internal/domain"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper"
	"github.com/sundaymarket/shop_service/internal/repository"
	"gorm.io/gorm"
)

type CartService interface {
	ValidateStock(input dto.AddToCartRequest) (*dto.ValidateStockResponse, error)
	GetCart(userID uint) (*dto.CartResponse, error)
	AddItem(userID uint, input dto.AddToCartRequest) (*domain.CartItem, error)
	RemoveItem(userID uint, productID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) ValidateStock(input dto.AddToCartRequest) (*dto.ValidateStockResponse, error) {
	product, err := s.findActiveProduct(input.ProductSlug)
	if err != nil {
		return nil, err
	}
	if input.Quantity < 1 {
		return nil, helper.ErrValidation("quantity must be at least 1")
	}

	if product.Stock < input.Quantity {
		return nil, helper.ErrValidation(
			fmt.Sprintf("sorry, only %d units of %s in stock", product.Stock, product.Name),
		)
	}

	return &dto.ValidateStockResponse{
		Available: true,
		Message:   "item available",
	}, nil
}

// GetCart never 404s: a user without a cart simply has an empty one.
func (s *cartService) GetCart(userID uint) (*dto.CartResponse, error) {
	cart, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.CartResponse{
				Items:    []domain.CartItem{},
				Subtotal: decimal.Zero,
			}, nil
		}
		return nil, helper.ErrInternal("failed to fetch cart", err)
	}

	subtotal := decimal.Zero
	totalItems := 0
	for _, item := range cart.Items {
		if item.Product != nil {
			subtotal = subtotal.Add(item.Product.NewPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		totalItems += item.Quantity
	}

	return &dto.CartResponse{
		CartID:     cart.ID,
		Items:      cart.Items,
		Subtotal:   subtotal,
		TotalItems: totalItems,
	}, nil
}

func (s *cartService) AddItem(userID uint, input dto.AddToCartRequest) (*domain.CartItem, error) {
	if input.Quantity < 1 {
		return nil, helper.ErrValidation("quantity must be at least 1")
	}

	product, err := s.findActiveProduct(input.ProductSlug)
	if err != nil {
		return nil, err
	}

	if product.Stock < input.Quantity {
		return nil, helper.ErrValidation(
			fmt.Sprintf("insufficient stock, available: %d", product.Stock),
		)
	}

	cart, err := s.cartRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, helper.ErrInternal("failed to fetch cart", err)
	}

	item, err := s.cartRepo.FindItem(cart.ID, product.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrInternal("failed to fetch cart item", err)
		}
		item = &domain.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, helper.ErrInternal("failed to add item to cart", err)
		}
		return item, nil
	}

	// Same product added again: accumulate, never duplicate the line.
	item.Quantity += input.Quantity
	if err := s.cartRepo.SaveItem(item); err != nil {
		return nil, helper.ErrInternal("failed to update cart item", err)
	}
	return item, nil
}

func (s *cartService) RemoveItem(userID uint, productID uint) error {
	cart, err := s.findCart(userID)
	if err != nil {
		return err
	}

	affected, err := s.cartRepo.DeleteItem(cart.ID, productID)
	if err != nil {
		return helper.ErrInternal("failed to remove item", err)
	}
	if affected == 0 {
		return helper.ErrNotFound("item not in cart")
	}
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	cart, err := s.findCart(userID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		return helper.ErrInternal("failed to clear cart", err)
	}
	return nil
}

func (s *cartService) findCart(userID uint) (*domain.Cart, error) {
	cart, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("cart not found")
		}
		return nil, helper.ErrInternal("failed to fetch cart", err)
	}
	return cart, nil
}

func (s *cartService) findActiveProduct(slug string) (*domain.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, helper.ErrValidation("product_slug is required")
	}

	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("product not found")
		}
		return nil, helper.ErrInternal("failed to fetch product", err)
	}
	if !product.IsActive {
		return nil, helper.ErrNotFound("product not found")
	}
	return product, nil
}
