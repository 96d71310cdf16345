package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sundaymarket/shop_service/internal/domain"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper"
	"github.com/sundaymarket/shop_service/internal/repository"
	"gorm.io/gorm"
)

type ProductService interface {
	GetAllProducts(page, limit int) (*dto.ProductListResponse, error)
	GetProductBySlug(slug string) (*domain.Product, error)
	GetProductsByCategory(categoryName string, page, limit int) (*dto.ProductListResponse, error)
	SearchProducts(query string, page, limit int) (*dto.ProductListResponse, error)
	CreateProduct(input dto.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(slug string, input dto.UpdateProductRequest) error
	UpdateProductImage(slug string, imageURL string) error
	DeleteProduct(slug string) error
	AssignToCategory(productSlug, categoryName string) error
	RemoveFromCategory(productSlug string) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) GetAllProducts(page, limit int) (*dto.ProductListResponse, error) {
	offset, take := Pagination(page, limit)

	products, total, err := s.productRepo.ListActive(offset, take)
	if err != nil {
		return nil, helper.ErrInternal("failed to fetch products", err)
	}

	return &dto.ProductListResponse{
		Data: products,
		Meta: dto.PageMeta{
			Total:      total,
			Page:       page,
			Limit:      take,
			TotalPages: TotalPages(total, take),
		},
	}, nil
}

func (s *productService) GetProductBySlug(slug string) (*domain.Product, error) {
	product, err := s.productRepo.FindBySlugWithCategory(strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("product not found")
		}
		return nil, helper.ErrInternal("failed to fetch product", err)
	}
	return product, nil
}

func (s *productService) GetProductsByCategory(categoryName string, page, limit int) (*dto.ProductListResponse, error) {
	category, err := s.findCategory(categoryName)
	if err != nil {
		return nil, err
	}

	offset, take := Pagination(page, limit)

	products, total, err := s.productRepo.ListActiveByCategory(category.ID, offset, take)
	if err != nil {
		return nil, helper.ErrInternal("failed to fetch products", err)
	}

	return &dto.ProductListResponse{
		Category: category.Name,
		Data:     products,
		Meta: dto.PageMeta{
			Total:      total,
			Page:       page,
			Limit:      take,
			TotalPages: TotalPages(total, take),
		},
	}, nil
}

func (s *productService) SearchProducts(query string, page, limit int) (*dto.ProductListResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, helper.ErrValidation("search query cannot be empty")
	}

	offset, take := Pagination(page, limit)

	products, total, err := s.productRepo.SearchActive(query, offset, take)
	if err != nil {
		return nil, helper.ErrInternal("failed to search products", err)
	}

	return &dto.ProductListResponse{
		Data: products,
		Meta: dto.PageMeta{
			Total:      total,
			Page:       page,
			Limit:      take,
			TotalPages: TotalPages(total, take),
		},
	}, nil
}

func (s *productService) CreateProduct(input dto.CreateProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	slug := strings.TrimSpace(input.Slug)

	if name == "" || slug == "" {
		return nil, helper.ErrValidation("name and slug are required")
	}
	if input.Stock < 0 {
		return nil, helper.ErrValidation("stock cannot be negative")
	}
	if input.PastPrice != nil && input.NewPrice.GreaterThan(*input.PastPrice) {
		return nil, helper.ErrValidation("new_price cannot exceed past_price")
	}

	_, err := s.productRepo.FindBySlug(slug)
	if err == nil {
		return nil, helper.ErrConflict("slug already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.ErrInternal("failed to create product", err)
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, helper.ErrNotFound("category not found")
			}
			return nil, helper.ErrInternal("failed to create product", err)
		}
	}

	product := &domain.Product{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		NewPrice:    input.NewPrice,
		PastPrice:   input.PastPrice,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		IsActive:    true,
		CategoryID:  input.CategoryID,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, helper.ErrInternal("failed to create product", err)
	}
	return product, nil
}

func (s *productService) UpdateProduct(slug string, input dto.UpdateProductRequest) error {
	product, err := s.findProduct(slug)
	if err != nil {
		return err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return helper.ErrValidation("name cannot be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.NewPrice != nil {
		product.NewPrice = *input.NewPrice
	}
	if input.PastPrice != nil {
		product.PastPrice = input.PastPrice
	}
	if product.PastPrice != nil && product.NewPrice.GreaterThan(*product.PastPrice) {
		return helper.ErrValidation("new_price cannot exceed past_price")
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return helper.ErrValidation("stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.ErrNotFound("category not found")
			}
			return helper.ErrInternal("failed to update product", err)
		}
		product.CategoryID = input.CategoryID
	}

	if err := s.productRepo.Save(product); err != nil {
		return helper.ErrInternal("failed to update product", err)
	}
	return nil
}

func (s *productService) UpdateProductImage(slug string, imageURL string) error {
	product, err := s.findProduct(slug)
	if err != nil {
		return err
	}

	product.ImageURL = &imageURL
	if err := s.productRepo.Save(product); err != nil {
		return helper.ErrInternal("failed to update product image", err)
	}
	return nil
}

// DeleteProduct flips the active flag; rows stay for order history.
func (s *productService) DeleteProduct(slug string) error {
	product, err := s.findProduct(slug)
	if err != nil {
		return err
	}

	product.IsActive = false
	if err := s.productRepo.Save(product); err != nil {
		return helper.ErrInternal("failed to delete product", err)
	}
	return nil
}

func (s *productService) AssignToCategory(productSlug, categoryName string) error {
	product, err := s.findProduct(productSlug)
	if err != nil {
		return err
	}
	category, err := s.findCategory(categoryName)
	if err != nil {
		return err
	}

	product.CategoryID = &category.ID
	if err := s.productRepo.Save(product); err != nil {
		return helper.ErrInternal(
			fmt.Sprintf("failed to assign product %s to category %s", product.Slug, category.Name), err)
	}
	return nil
}

func (s *productService) RemoveFromCategory(productSlug string) error {
	product, err := s.findProduct(productSlug)
	if err != nil {
		return err
	}

	if product.CategoryID == nil {
		return nil
	}

	product.CategoryID = nil
	product.Category = nil
	if err := s.productRepo.Save(product); err != nil {
		return helper.ErrInternal("failed to remove product from category", err)
	}
	return nil
}

func (s *productService) findProduct(slug string) (*domain.Product, error) {
	product, err := s.productRepo.FindBySlug(strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("product not found")
		}
		return nil, helper.ErrInternal("failed to fetch product", err)
	}
	return product, nil
}

func (s *productService) findCategory(name string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByName(strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("category not found")
		}
		return nil, helper.ErrInternal("failed to fetch category", err)
	}
	return category, nil
}
