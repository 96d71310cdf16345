package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/sundaymarket/shop_service/internal/domain"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper"
	"github.com/sundaymarket/shop_service/internal/repository"
	"gorm.io/gorm"
)

func newCartFixture(t *testing.T) (CartService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func TestGetCartEmpty(t *testing.T) {
	svc, db := newCartFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)

	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.True(t, cart.Subtotal.IsZero())
	require.Zero(t, cart.TotalItems)
}

func TestAddItemAccumulates(t *testing.T) {
	svc, db := newCartFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	createTestProduct(t, db, "coffee-beans", "15.00", 10)

	_, err := svc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 2})
	require.NoError(t, err)

	item, err := svc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 5, item.Quantity)

	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 5, cart.TotalItems)
	require.True(t, cart.Subtotal.Equal(decimal.RequireFromString("75.00")),
		"subtotal = %s", cart.Subtotal)
}

func TestAddItemInsufficientStock(t *testing.T) {
	svc, db := newCartFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	createTestProduct(t, db, "coffee-beans", "15.00", 2)

	_, err := svc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 3})
	requireKind(t, err, helper.KindValidation)
}

func TestAddItemInactiveProduct(t *testing.T) {
	svc, db := newCartFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)

	product := createTestProduct(t, db, "coffee-beans", "15.00", 10)
	require.NoError(t, db.Model(product).Update("is_active", false).Error)

	_, err := svc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 1})
	requireKind(t, err, helper.KindNotFound)
}

func TestValidateStock(t *testing.T) {
	svc, db := newCartFixture(t)
	createTestProduct(t, db, "coffee-beans", "15.00", 2)

	result, err := svc.ValidateStock(dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 2})
	require.NoError(t, err)
	require.True(t, result.Available)

	_, err = svc.ValidateStock(dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 3})
	requireKind(t, err, helper.KindValidation)
}

func TestRemoveItemNotInCart(t *testing.T) {
	svc, db := newCartFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	createTestProduct(t, db, "coffee-beans", "15.00", 10)

	_, err := svc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 1})
	require.NoError(t, err)

	err = svc.RemoveItem(user.ID, 9999)
	requireKind(t, err, helper.KindNotFound)
}

func TestClearCart(t *testing.T) {
	svc, db := newCartFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	createTestProduct(t, db, "coffee-beans", "15.00", 10)
	createTestProduct(t, db, "green-tea", "8.50", 10)

	_, err := svc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "green-tea", Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(user.ID))

	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}
