package domain

import "time"

type Address struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Street       string `gorm:"not null" json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `gorm:"not null" json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `gorm:"not null;default:Angola" json:"country"`

	// At most one default per user; creating a new default clears the rest.
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
