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

func newOrderFixture(t *testing.T) (OrderService, CartService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	orderSvc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewAddressRepository(db),
	)
	return orderSvc, cartSvc, db
}

func TestCheckout(t *testing.T) {
	orderSvc, cartSvc, db := newOrderFixture(t)

	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	address := createTestAddress(t, db, user.ID, true)
	createTestProduct(t, db, "coffee-beans", "15.00", 5)
	createTestProduct(t, db, "green-tea", "10.00", 1)

	_, err := cartSvc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 2})
	require.NoError(t, err)
	_, err = cartSvc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "green-tea", Quantity: 1})
	require.NoError(t, err)

	order, err := orderSvc.Checkout(user.ID, address.ID)
	require.NoError(t, err)
	require.NotEmpty(t, order.Number)
	require.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	require.True(t, order.TotalPrice.Equal(decimal.RequireFromString("40.00")),
		"total = %s", order.TotalPrice)

	// Stock was decremented and the cart emptied.
	var coffee, tea domain.Product
	require.NoError(t, db.Where("slug = ?", "coffee-beans").First(&coffee).Error)
	require.NoError(t, db.Where("slug = ?", "green-tea").First(&tea).Error)
	require.Equal(t, 3, coffee.Stock)
	require.Equal(t, 0, tea.Stock)

	cart, err := cartSvc.GetCart(user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	orderSvc, cartSvc, db := newOrderFixture(t)

	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	address := createTestAddress(t, db, user.ID, true)
	coffee := createTestProduct(t, db, "coffee-beans", "15.00", 5)
	tea := createTestProduct(t, db, "green-tea", "10.00", 2)

	_, err := cartSvc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 2})
	require.NoError(t, err)
	_, err = cartSvc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "green-tea", Quantity: 2})
	require.NoError(t, err)

	// Someone else buys the tea before this user checks out.
	require.NoError(t, db.Model(tea).Update("stock", 1).Error)

	_, err = orderSvc.Checkout(user.ID, address.ID)
	requireKind(t, err, helper.KindValidation)
	require.Contains(t, err.Error(), "green-tea")

	// Nothing moved: no order, stocks intact, cart untouched.
	var orderCount int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orderCount).Error)
	require.Zero(t, orderCount)

	require.NoError(t, db.First(coffee, coffee.ID).Error)
	require.Equal(t, 5, coffee.Stock)

	cart, err := cartSvc.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

func TestCheckoutEmptyCart(t *testing.T) {
	orderSvc, _, db := newOrderFixture(t)

	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	address := createTestAddress(t, db, user.ID, true)

	_, err := orderSvc.Checkout(user.ID, address.ID)
	requireKind(t, err, helper.KindValidation)
}

func TestCheckoutForeignAddress(t *testing.T) {
	orderSvc, cartSvc, db := newOrderFixture(t)

	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	other := createTestUser(t, db, "joao@example.com", domain.RoleCustomer)
	foreignAddress := createTestAddress(t, db, other.ID, true)
	createTestProduct(t, db, "coffee-beans", "15.00", 5)

	_, err := cartSvc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 1})
	require.NoError(t, err)

	_, err = orderSvc.Checkout(user.ID, foreignAddress.ID)
	requireKind(t, err, helper.KindForbidden)
}

func TestCheckoutChargesLivePrice(t *testing.T) {
	orderSvc, cartSvc, db := newOrderFixture(t)

	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	address := createTestAddress(t, db, user.ID, true)
	coffee := createTestProduct(t, db, "coffee-beans", "15.00", 5)

	_, err := cartSvc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 1})
	require.NoError(t, err)

	// Price changes between add-to-cart and checkout.
	require.NoError(t, db.Model(coffee).Update("new_price", "12.00").Error)

	order, err := orderSvc.Checkout(user.ID, address.ID)
	require.NoError(t, err)
	require.True(t, order.TotalPrice.Equal(decimal.RequireFromString("12.00")),
		"total = %s", order.TotalPrice)
	require.True(t, order.Items[0].PriceAtPurchase.Equal(decimal.RequireFromString("12.00")))
}

func TestGetOrdersByStatus(t *testing.T) {
	orderSvc, cartSvc, db := newOrderFixture(t)

	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	address := createTestAddress(t, db, user.ID, true)
	createTestProduct(t, db, "coffee-beans", "15.00", 10)

	_, err := cartSvc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 1})
	require.NoError(t, err)
	_, err = orderSvc.Checkout(user.ID, address.ID)
	require.NoError(t, err)

	result, err := orderSvc.GetOrdersByStatus("pending", 1, 10)
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	require.EqualValues(t, 1, result.Meta.TotalOrders)

	_, err = orderSvc.GetOrdersByStatus("bogus", 1, 10)
	requireKind(t, err, helper.KindValidation)
}

func TestGetAllOrdersMeta(t *testing.T) {
	orderSvc, cartSvc, db := newOrderFixture(t)

	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	address := createTestAddress(t, db, user.ID, true)
	createTestProduct(t, db, "coffee-beans", "15.00", 10)

	_, err := cartSvc.AddItem(user.ID, dto.AddToCartRequest{ProductSlug: "coffee-beans", Quantity: 1})
	require.NoError(t, err)
	order, err := orderSvc.Checkout(user.ID, address.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(order).Update("status", domain.OrderStatusShipped).Error)

	result, err := orderSvc.GetAllOrders(1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Meta.TotalOrders)
	require.EqualValues(t, 1, result.Meta.TotalOrdersShipped)
	require.Zero(t, result.Meta.TotalOrdersPending)
}
