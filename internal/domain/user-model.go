package domain

import "time"

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
	RoleSeller   = "SELLER"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `json:"-"`
	Phone        *string `json:"phone,omitempty"`
	Role         string  `gorm:"type:varchar(20);not null;default:CUSTOMER" json:"role"`

	EmailVerified bool       `gorm:"not null;default:false" json:"email_verified"`
	OTPHash       *string    `json:"-"`
	OTPExpiresAt  *time.Time `json:"-"`
	LastLogin     *time.Time `json:"last_login,omitempty"`

	Addresses []Address `json:"addresses,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleAdmin, RoleSeller:
		return true
	}
	return false
}
