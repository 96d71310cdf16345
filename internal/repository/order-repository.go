package repository

import (
	"errors"
	"fmt"

	"github.com/sundaymarket/shop_service/internal/domain"
	"github.com/sundaymarket/shop_service/internal/helper"
	"gorm.io/gorm"
)

type OrderRepository interface {
	PlaceOrder(order *domain.Order, cart *domain.Cart) error
	FindByUser(userID uint) ([]domain.Order, error)
	List(offset, limit int) ([]domain.Order, int64, error)
	ListByStatus(status domain.OrderStatus, offset, limit int) ([]domain.Order, int64, error)
	CountByStatus(status domain.OrderStatus) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// PlaceOrder runs the whole checkout write-set in one transaction: the
// order with its items, the stock decrements and the cart cleanup either
// all land or none do. Each decrement is conditional on the current
// stock so concurrent checkouts can never drive it negative; a decrement
// that matches no row aborts the transaction.
func (r *orderRepository) PlaceOrder(order *domain.Order, cart *domain.Cart) error {
	if order == nil || cart == nil {
		return errors.New("nil order or cart")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, item := range cart.Items {
			res := tx.Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				name := fmt.Sprintf("#%d", item.ProductID)
				if item.Product != nil {
					name = item.Product.Name
				}
				return helper.ErrValidation(
					fmt.Sprintf("insufficient stock for product: %s", name),
				)
			}
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error
	})
}

func (r *orderRepository) FindByUser(userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) List(offset, limit int) ([]domain.Order, int64, error) {
	var orders []domain.Order
	var total int64

	if err := r.db.Model(&domain.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Items.Product").
		Order("id desc").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) ListByStatus(status domain.OrderStatus, offset, limit int) ([]domain.Order, int64, error) {
	var orders []domain.Order
	var total int64

	if err := r.db.Model(&domain.Order{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Items.Product").
		Where("status = ?", status).
		Order("id desc").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) CountByStatus(status domain.OrderStatus) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Order{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
