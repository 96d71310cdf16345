package services

import (
	"errors"
	"strings"

	"github.com/sundaymarket/shop_service/internal/domain"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper"
	"github.com/sundaymarket/shop_service/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(userID uint) (*domain.User, error)
	UpdateProfile(userID uint, input dto.UpdateUserRequest) error
	UpdatePassword(userID uint, password string) error
	DeleteAccount(userID uint) error

	CreateAddress(userID uint, input dto.CreateAddressRequest) (*domain.Address, error)
	UpdateAddress(userID uint, addressID uint, input dto.UpdateAddressRequest) error

	// IsAdmin backs the admin guard; it reads the row so a stale role
	// claim inside a token never grants access.
	IsAdmin(userID uint) (bool, error)
}

type userService struct {
	repo        repository.UserRepository
	addressRepo repository.AddressRepository
}

func NewUserService(
	repo repository.UserRepository,
	addressRepo repository.AddressRepository,
) UserService {
	return &userService{
		repo:        repo,
		addressRepo: addressRepo,
	}
}

func (s *userService) GetProfile(userID uint) (*domain.User, error) {
	user, err := s.findUser(userID, true)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(userID uint, input dto.UpdateUserRequest) error {
	user, err := s.findUser(userID, false)
	if err != nil {
		return err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return helper.ErrValidation("name cannot be empty")
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}

	if err := s.repo.Save(user); err != nil {
		return helper.ErrInternal("failed to update user", err)
	}
	return nil
}

func (s *userService) UpdatePassword(userID uint, password string) error {
	if len(password) < 8 {
		return helper.ErrValidation("password must be at least 8 characters")
	}

	user, err := s.findUser(userID, false)
	if err != nil {
		return err
	}

	passwordHash, err := helper.HashPassword(password)
	if err != nil {
		return helper.ErrInternal("failed to update password", err)
	}

	user.PasswordHash = passwordHash
	if err := s.repo.Save(user); err != nil {
		return helper.ErrInternal("failed to update password", err)
	}
	return nil
}

func (s *userService) DeleteAccount(userID uint) error {
	user, err := s.findUser(userID, false)
	if err != nil {
		return err
	}

	// Seller accounts carry catalog ownership; only an admin removes them.
	if user.Role == domain.RoleSeller {
		return helper.ErrForbidden("your account can only be deleted by an administrator")
	}

	if err := s.repo.Delete(user); err != nil {
		return helper.ErrInternal("failed to delete account", err)
	}
	return nil
}

func (s *userService) CreateAddress(userID uint, input dto.CreateAddressRequest) (*domain.Address, error) {
	if _, err := s.findUser(userID, false); err != nil {
		return nil, err
	}

	street := strings.TrimSpace(input.Street)
	city := strings.TrimSpace(input.City)
	if street == "" || city == "" {
		return nil, helper.ErrValidation("street and city are required")
	}

	country := strings.TrimSpace(input.Country)
	if country == "" {
		country = "Angola"
	}

	address := &domain.Address{
		UserID:       userID,
		Street:       street,
		Number:       strings.TrimSpace(input.Number),
		Complement:   strings.TrimSpace(input.Complement),
		Neighborhood: strings.TrimSpace(input.Neighborhood),
		City:         city,
		State:        strings.TrimSpace(input.State),
		PostalCode:   strings.TrimSpace(input.PostalCode),
		Country:      country,
		IsDefault:    input.IsDefault,
	}

	if err := s.addressRepo.Create(address); err != nil {
		return nil, helper.ErrInternal("failed to create address", err)
	}
	return address, nil
}

func (s *userService) UpdateAddress(userID uint, addressID uint, input dto.UpdateAddressRequest) error {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("address not found")
		}
		return helper.ErrInternal("failed to fetch address", err)
	}

	if address.UserID != userID {
		return helper.ErrForbidden("you are not allowed to update this address")
	}

	if input.Street != nil {
		address.Street = strings.TrimSpace(*input.Street)
	}
	if input.Number != nil {
		address.Number = strings.TrimSpace(*input.Number)
	}
	if input.Complement != nil {
		address.Complement = strings.TrimSpace(*input.Complement)
	}
	if input.Neighborhood != nil {
		address.Neighborhood = strings.TrimSpace(*input.Neighborhood)
	}
	if input.City != nil {
		address.City = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		address.State = strings.TrimSpace(*input.State)
	}
	if input.PostalCode != nil {
		address.PostalCode = strings.TrimSpace(*input.PostalCode)
	}
	if input.Country != nil {
		address.Country = strings.TrimSpace(*input.Country)
	}
	if input.IsDefault != nil {
		address.IsDefault = *input.IsDefault
	}

	if err := s.addressRepo.Save(address); err != nil {
		return helper.ErrInternal("failed to update address", err)
	}
	return nil
}

func (s *userService) IsAdmin(userID uint) (bool, error) {
	user, err := s.findUser(userID, false)
	if err != nil {
		return false, err
	}
	return user.Role == domain.RoleAdmin, nil
}

func (s *userService) findUser(userID uint, withAddresses bool) (*domain.User, error) {
	if userID == 0 {
		return nil, helper.ErrValidation("invalid user id")
	}

	var user *domain.User
	var err error
	if withAddresses {
		user, err = s.repo.FindByIDWithAddresses(userID)
	} else {
		user, err = s.repo.FindByID(userID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("user not found")
		}
		return nil, helper.ErrInternal("failed to fetch user", err)
	}
	return user, nil
}
