package repository

import (
	"errors"

	"github.com/sundaymarket/shop_service/internal/domain"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *domain.Category) error
	FindByName(name string) (*domain.Category, error)
	FindByID(categoryID uint) (*domain.Category, error)
	List() ([]domain.Category, error)
	Delete(category *domain.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *domain.Category) error {
	if category == nil {
		return errors.New("nil category")
	}
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindByName(name string) (*domain.Category, error) {
	category := &domain.Category{}
	if err := r.db.First(category, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepository) FindByID(categoryID uint) (*domain.Category, error) {
	category := &domain.Category{}
	if err := r.db.First(category, categoryID).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepository) List() ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete detaches products from the category before removing it; the
// products themselves are never deleted.
func (r *categoryRepository) Delete(category *domain.Category) error {
	if category == nil {
		return errors.New("nil category")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Product{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
}
