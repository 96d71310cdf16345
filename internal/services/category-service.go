package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sundaymarket/shop_service/internal/domain"
	"github.com/sundaymarket/shop_service/internal/helper"
	"github.com/sundaymarket/shop_service/internal/repository"
	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(name string) (*domain.Category, error)
	GetAllCategories() ([]domain.Category, error)
	DeleteCategory(categoryID uint) (string, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, helper.ErrValidation("name is required")
	}

	_, err := s.categoryRepo.FindByName(name)
	if err == nil {
		return nil, helper.ErrConflict("category already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.ErrInternal("failed to create category", err)
	}

	category := &domain.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, helper.ErrInternal("failed to create category", err)
	}
	return category, nil
}

func (s *categoryService) GetAllCategories() ([]domain.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, helper.ErrInternal("failed to list categories", err)
	}
	return categories, nil
}

// DeleteCategory detaches products (repo side); it never deletes them.
func (s *categoryService) DeleteCategory(categoryID uint) (string, error) {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", helper.ErrNotFound("category not found")
		}
		return "", helper.ErrInternal("failed to fetch category", err)
	}

	if err := s.categoryRepo.Delete(category); err != nil {
		return "", helper.ErrInternal("failed to delete category", err)
	}
	return fmt.Sprintf("category %s deleted", category.Name), nil
}
