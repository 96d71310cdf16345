package repository

import (
	"errors"

	"github.com/sundaymarket/shop_service/internal/domain"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *domain.Address) error
	FindByID(addressID uint) (*domain.Address, error)
	Save(address *domain.Address) error
	ListByUser(userID uint) ([]domain.Address, error)
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

// Create keeps at most one default address per user: inserting a new
// default clears the old ones in the same transaction.
func (r *addressRepository) Create(address *domain.Address) error {
	if address == nil {
		return errors.New("nil address")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			err := tx.Model(&domain.Address{}).
				Where("user_id = ? AND is_default = ?", address.UserID, true).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

func (r *addressRepository) FindByID(addressID uint) (*domain.Address, error) {
	address := &domain.Address{}
	if err := r.db.First(address, addressID).Error; err != nil {
		return nil, err
	}
	return address, nil
}

func (r *addressRepository) Save(address *domain.Address) error {
	if address == nil {
		return errors.New("nil address")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			err := tx.Model(&domain.Address{}).
				Where("user_id = ? AND is_default = ? AND id <> ?", address.UserID, true, address.ID).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Save(address).Error
	})
}

func (r *addressRepository) ListByUser(userID uint) ([]domain.Address, error) {
	var addresses []domain.Address
	err := r.db.Where("user_id = ?", userID).Find(&addresses).Error
	return addresses, err
}
