package repository

import (
	"errors"

	"github.com/sundaymarket/shop_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *domain.User) error
	FindByEmail(email string) (*domain.User, error)
	FindByID(userID uint) (*domain.User, error)
	FindByIDWithAddresses(userID uint) (*domain.User, error)
	Save(user *domain.User) error
	Delete(user *domain.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	return r.db.Create(user).Error
}

// FindByEmail returns gorm.ErrRecordNotFound untouched so callers can
// tell "no such user" apart from a database failure.
func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindByID(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, userID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindByIDWithAddresses(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.Preload("Addresses").First(user, userID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Save(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	return r.db.Delete(user).Error
}
