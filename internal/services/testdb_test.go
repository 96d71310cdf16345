package services

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

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *domain.User {
	t.Helper()

	hash, err := helper.HashPassword("secret123")
	require.NoError(t, err)

	user := &domain.User{
		Name:          "Test User",
		Email:         email,
		PasswordHash:  hash,
		Role:          role,
		EmailVerified: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, slug string, price string, stock int) *domain.Product {
	t.Helper()

	product := &domain.Product{
		Slug:     slug,
		Name:     slug,
		NewPrice: decimal.RequireFromString(price),
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestAddress(t *testing.T, db *gorm.DB, userID uint, isDefault bool) *domain.Address {
	t.Helper()

	address := &domain.Address{
		UserID:    userID,
		Street:    "Rua Principal",
		City:      "Luanda",
		Country:   "Angola",
		IsDefault: isDefault,
	}
	require.NoError(t, db.Create(address).Error)
	return address
}

func requireKind(t *testing.T, err error, kind helper.ErrKind) {
	t.Helper()

	require.Error(t, err)
	appErr, ok := err.(*helper.AppError)
	require.True(t, ok, "expected *helper.AppError, got %T: %v", err, err)
	require.Equal(t, kind, appErr.Kind)
}
