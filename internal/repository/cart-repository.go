package repository

import (
	"errors"

	"github.com/sundaymarket/shop_service/internal/domain"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindByUser(userID uint) (*domain.Cart, error)
	FindOrCreateByUser(userID uint) (*domain.Cart, error)
	FindItem(cartID, productID uint) (*domain.CartItem, error)
	CreateItem(item *domain.CartItem) error
	SaveItem(item *domain.CartItem) error
	DeleteItem(cartID, productID uint) (int64, error)
	ClearItems(cartID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUser(userID uint) (*domain.Cart, error) {
	cart := &domain.Cart{}
	err := r.db.Preload("Items.Product").First(cart, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// FindOrCreateByUser backs the lazy one-cart-per-user rule: the cart row
// appears on the first add.
func (r *cartRepository) FindOrCreateByUser(userID uint) (*domain.Cart, error) {
	cart := &domain.Cart{}
	err := r.db.Where(domain.Cart{UserID: userID}).FirstOrCreate(cart).Error
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) FindItem(cartID, productID uint) (*domain.CartItem, error) {
	item := &domain.CartItem{}
	err := r.db.First(item, "cart_id = ? AND product_id = ?", cartID, productID).Error
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *cartRepository) CreateItem(item *domain.CartItem) error {
	if item == nil {
		return errors.New("nil cart item")
	}
	return r.db.Create(item).Error
}

func (r *cartRepository) SaveItem(item *domain.CartItem) error {
	if item == nil {
		return errors.New("nil cart item")
	}
	return r.db.Save(item).Error
}

func (r *cartRepository) DeleteItem(cartID, productID uint) (int64, error) {
	res := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&domain.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *cartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error
}
