package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sundaymarket/shop_service/internal/domain"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper"
	"github.com/sundaymarket/shop_service/internal/repository"
	"gorm.io/gorm"
)

func newUserFixture(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), repository.NewAddressRepository(db))
	return svc, db
}

func TestGetProfileWithAddresses(t *testing.T) {
	svc, db := newUserFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	createTestAddress(t, db, user.ID, true)

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	require.Len(t, profile.Addresses, 1)
}

func TestUpdatePasswordTooShort(t *testing.T) {
	svc, db := newUserFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)

	err := svc.UpdatePassword(user.ID, "short")
	requireKind(t, err, helper.KindValidation)

	require.NoError(t, svc.UpdatePassword(user.ID, "long-enough-pass"))
}

func TestDeleteAccountSellerForbidden(t *testing.T) {
	svc, db := newUserFixture(t)

	seller := createTestUser(t, db, "seller@example.com", domain.RoleSeller)
	err := svc.DeleteAccount(seller.ID)
	requireKind(t, err, helper.KindForbidden)

	customer := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	require.NoError(t, svc.DeleteAccount(customer.ID))

	_, err = svc.GetProfile(customer.ID)
	requireKind(t, err, helper.KindNotFound)
}

func TestCreateAddressDefaultClearsPrevious(t *testing.T) {
	svc, db := newUserFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)

	first, err := svc.CreateAddress(user.ID, dto.CreateAddressRequest{
		Street:    "Rua A",
		City:      "Luanda",
		IsDefault: true,
	})
	require.NoError(t, err)
	require.True(t, first.IsDefault)

	second, err := svc.CreateAddress(user.ID, dto.CreateAddressRequest{
		Street:    "Rua B",
		City:      "Benguela",
		IsDefault: true,
	})
	require.NoError(t, err)
	require.True(t, second.IsDefault)

	var defaults int64
	require.NoError(t, db.Model(&domain.Address{}).
		Where("user_id = ? AND is_default = ?", user.ID, true).
		Count(&defaults).Error)
	require.EqualValues(t, 1, defaults)

	require.NoError(t, db.First(first, first.ID).Error)
	require.False(t, first.IsDefault)
}

func TestCreateAddressDefaultCountry(t *testing.T) {
	svc, db := newUserFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)

	address, err := svc.CreateAddress(user.ID, dto.CreateAddressRequest{
		Street: "Rua A",
		City:   "Luanda",
	})
	require.NoError(t, err)
	require.Equal(t, "Angola", address.Country)
}

func TestUpdateAddressOwnership(t *testing.T) {
	svc, db := newUserFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)
	other := createTestUser(t, db, "joao@example.com", domain.RoleCustomer)
	address := createTestAddress(t, db, other.ID, false)

	newCity := "Lubango"
	err := svc.UpdateAddress(user.ID, address.ID, dto.UpdateAddressRequest{City: &newCity})
	requireKind(t, err, helper.KindForbidden)
}

func TestIsAdminReadsRow(t *testing.T) {
	svc, db := newUserFixture(t)
	user := createTestUser(t, db, "maria@example.com", domain.RoleCustomer)

	isAdmin, err := svc.IsAdmin(user.ID)
	require.NoError(t, err)
	require.False(t, isAdmin)

	require.NoError(t, db.Model(user).Update("role", domain.RoleAdmin).Error)

	isAdmin, err = svc.IsAdmin(user.ID)
	require.NoError(t, err)
	require.True(t, isAdmin)
}
