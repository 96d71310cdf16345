package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/sundaymarket/shop_service/internal/domain"
	"github.com/sundaymarket/shop_service/internal/helper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Address{},
		&domain.Category{},
		&domain.Product{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
	))
	return db
}

// The conditional decrement must abort the whole transaction when the
// stock moved under us between loading the cart and writing the order.
func TestPlaceOrderAbortsOnStaleStock(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)

	product := &domain.Product{
		Slug:     "coffee-beans",
		Name:     "coffee-beans",
		NewPrice: decimal.RequireFromString("15.00"),
		Stock:    5,
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)

	cart := &domain.Cart{UserID: 1}
	require.NoError(t, db.Create(cart).Error)
	item := &domain.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 3}
	require.NoError(t, db.Create(item).Error)

	// Cart snapshot still believes 3 units are available.
	stale, err := NewCartRepository(db).FindByUser(1)
	require.NoError(t, err)

	// Stock drops to 2 behind the snapshot's back.
	require.NoError(t, db.Model(product).Update("stock", 2).Error)

	order := &domain.Order{
		Number:     "ord-1",
		UserID:     1,
		AddressID:  1,
		TotalPrice: decimal.RequireFromString("45.00"),
		Status:     domain.OrderStatusPending,
		Items: []domain.OrderItem{{
			ProductID:       product.ID,
			Quantity:        3,
			PriceAtPurchase: product.NewPrice,
		}},
	}

	err = repo.PlaceOrder(order, stale)
	require.Error(t, err)
	appErr, ok := err.(*helper.AppError)
	require.True(t, ok)
	require.Equal(t, helper.KindValidation, appErr.Kind)

	// Rolled back: no order rows, stock untouched, cart still populated.
	var orders, orderItems, cartItems int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&domain.OrderItem{}).Count(&orderItems).Error)
	require.NoError(t, db.Model(&domain.CartItem{}).Count(&cartItems).Error)
	require.Zero(t, orders)
	require.Zero(t, orderItems)
	require.EqualValues(t, 1, cartItems)

	require.NoError(t, db.First(product, product.ID).Error)
	require.Equal(t, 2, product.Stock)
}

func TestPlaceOrderDecrementsAndClearsCart(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)

	product := &domain.Product{
		Slug:     "coffee-beans",
		Name:     "coffee-beans",
		NewPrice: decimal.RequireFromString("15.00"),
		Stock:    5,
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)

	cart := &domain.Cart{UserID: 1}
	require.NoError(t, db.Create(cart).Error)
	require.NoError(t, db.Create(&domain.CartItem{
		CartID: cart.ID, ProductID: product.ID, Quantity: 2,
	}).Error)

	loaded, err := NewCartRepository(db).FindByUser(1)
	require.NoError(t, err)

	order := &domain.Order{
		Number:     "ord-1",
		UserID:     1,
		AddressID:  1,
		TotalPrice: decimal.RequireFromString("30.00"),
		Status:     domain.OrderStatusPending,
		Items: []domain.OrderItem{{
			ProductID:       product.ID,
			Quantity:        2,
			PriceAtPurchase: product.NewPrice,
		}},
	}
	require.NoError(t, repo.PlaceOrder(order, loaded))
	require.NotZero(t, order.ID)

	require.NoError(t, db.First(product, product.ID).Error)
	require.Equal(t, 3, product.Stock)

	var cartItems int64
	require.NoError(t, db.Model(&domain.CartItem{}).Count(&cartItems).Error)
	require.Zero(t, cartItems)
}
