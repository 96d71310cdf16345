package repository

import (
	"errors"
	"strings"

	"github.com/sundaymarket/shop_service/internal/domain"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *domain.Product) error
	FindBySlug(slug string) (*domain.Product, error)
	FindBySlugWithCategory(slug string) (*domain.Product, error)
	Save(product *domain.Product) error
	ListActive(offset, limit int) ([]domain.Product, int64, error)
	ListActiveByCategory(categoryID uint, offset, limit int) ([]domain.Product, int64, error)
	SearchActive(query string, offset, limit int) ([]domain.Product, int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *domain.Product) error {
	if product == nil {
		return errors.New("nil product")
	}
	return r.db.Create(product).Error
}

func (r *productRepository) FindBySlug(slug string) (*domain.Product, error) {
	product := &domain.Product{}
	if err := r.db.First(product, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepository) FindBySlugWithCategory(slug string) (*domain.Product, error) {
	product := &domain.Product{}
	if err := r.db.Preload("Category").First(product, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepository) Save(product *domain.Product) error {
	if product == nil {
		return errors.New("nil product")
	}
	return r.db.Save(product).Error
}

func (r *productRepository) ListActive(offset, limit int) ([]domain.Product, int64, error) {
	return r.listWhere(offset, limit, "is_active = ?", true)
}

func (r *productRepository) ListActiveByCategory(categoryID uint, offset, limit int) ([]domain.Product, int64, error) {
	return r.listWhere(offset, limit, "is_active = ? AND category_id = ?", true, categoryID)
}

// SearchActive matches the product name case-insensitively. LOWER+LIKE
// behaves the same on postgres and the sqlite used in tests.
func (r *productRepository) SearchActive(query string, offset, limit int) ([]domain.Product, int64, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	return r.listWhere(offset, limit, "is_active = ? AND LOWER(name) LIKE ?", true, pattern)
}

func (r *productRepository) listWhere(offset, limit int, cond string, args ...interface{}) ([]domain.Product, int64, error) {
	var products []domain.Product
	var total int64

	if err := r.db.Model(&domain.Product{}).Where(cond, args...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where(cond, args...).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
