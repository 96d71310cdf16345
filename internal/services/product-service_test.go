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

func newProductFixture(t *testing.T) (ProductService, CategoryService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	productSvc := NewProductService(repository.NewProductRepository(db), repository.NewCategoryRepository(db))
	categorySvc := NewCategoryService(repository.NewCategoryRepository(db))
	return productSvc, categorySvc, db
}

func TestCreateProduct(t *testing.T) {
	svc, _, _ := newProductFixture(t)

	past := decimal.RequireFromString("20.00")
	product, err := svc.CreateProduct(dto.CreateProductRequest{
		Name:      "Coffee Beans",
		Slug:      "coffee-beans",
		NewPrice:  decimal.RequireFromString("15.00"),
		PastPrice: &past,
		Stock:     5,
	})
	require.NoError(t, err)
	require.True(t, product.IsActive)

	_, err = svc.CreateProduct(dto.CreateProductRequest{
		Name:     "Other",
		Slug:     "coffee-beans",
		NewPrice: decimal.RequireFromString("9.00"),
	})
	requireKind(t, err, helper.KindConflict)
}

func TestCreateProductPriceRelation(t *testing.T) {
	svc, _, _ := newProductFixture(t)

	past := decimal.RequireFromString("10.00")
	_, err := svc.CreateProduct(dto.CreateProductRequest{
		Name:      "Coffee Beans",
		Slug:      "coffee-beans",
		NewPrice:  decimal.RequireFromString("15.00"),
		PastPrice: &past,
	})
	requireKind(t, err, helper.KindValidation)
}

func TestDeleteProductHidesFromListing(t *testing.T) {
	svc, _, db := newProductFixture(t)
	createTestProduct(t, db, "coffee-beans", "15.00", 5)

	require.NoError(t, svc.DeleteProduct("coffee-beans"))

	result, err := svc.GetAllProducts(1, 10)
	require.NoError(t, err)
	require.Empty(t, result.Data)

	// The row survives for order history.
	var product domain.Product
	require.NoError(t, db.Where("slug = ?", "coffee-beans").First(&product).Error)
	require.False(t, product.IsActive)
}

func TestSearchProducts(t *testing.T) {
	svc, _, db := newProductFixture(t)
	createTestProduct(t, db, "arabica-coffee", "15.00", 5)
	createTestProduct(t, db, "green-tea", "8.00", 5)

	result, err := svc.SearchProducts("COFFEE", 1, 10)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	require.Equal(t, "arabica-coffee", result.Data[0].Slug)

	_, err = svc.SearchProducts("  ", 1, 10)
	requireKind(t, err, helper.KindValidation)
}

func TestPaginationCap(t *testing.T) {
	svc, _, db := newProductFixture(t)
	createTestProduct(t, db, "coffee-beans", "15.00", 5)

	result, err := svc.GetAllProducts(1, 500)
	require.NoError(t, err)
	require.Equal(t, maxPageSize, result.Meta.Limit)
}

func TestCategoryAssignment(t *testing.T) {
	productSvc, categorySvc, db := newProductFixture(t)
	createTestProduct(t, db, "coffee-beans", "15.00", 5)

	category, err := categorySvc.CreateCategory("Beverages")
	require.NoError(t, err)

	require.NoError(t, productSvc.AssignToCategory("coffee-beans", "Beverages"))

	result, err := productSvc.GetProductsByCategory("Beverages", 1, 10)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)

	require.NoError(t, productSvc.RemoveFromCategory("coffee-beans"))

	result, err = productSvc.GetProductsByCategory("Beverages", 1, 10)
	require.NoError(t, err)
	require.Empty(t, result.Data)

	_, err = categorySvc.CreateCategory("Beverages")
	requireKind(t, err, helper.KindConflict)

	_, err = categorySvc.DeleteCategory(category.ID)
	require.NoError(t, err)
}

func TestDeleteCategoryDetachesProducts(t *testing.T) {
	productSvc, categorySvc, db := newProductFixture(t)
	createTestProduct(t, db, "coffee-beans", "15.00", 5)

	category, err := categorySvc.CreateCategory("Beverages")
	require.NoError(t, err)
	require.NoError(t, productSvc.AssignToCategory("coffee-beans", "Beverages"))

	_, err = categorySvc.DeleteCategory(category.ID)
	require.NoError(t, err)

	product, err := productSvc.GetProductBySlug("coffee-beans")
	require.NoError(t, err)
	require.Nil(t, product.CategoryID)
}

func TestUpdateProductPatchesFields(t *testing.T) {
	svc, _, db := newProductFixture(t)
	createTestProduct(t, db, "coffee-beans", "15.00", 5)

	newName := "Premium Coffee Beans"
	newStock := 12
	require.NoError(t, svc.UpdateProduct("coffee-beans", dto.UpdateProductRequest{
		Name:  &newName,
		Stock: &newStock,
	}))

	var product domain.Product
	require.NoError(t, db.Where("slug = ?", "coffee-beans").First(&product).Error)
	require.Equal(t, newName, product.Name)
	require.Equal(t, newStock, product.Stock)
	// Untouched fields keep their values.
	require.True(t, product.NewPrice.Equal(decimal.RequireFromString("15.00")))
}
