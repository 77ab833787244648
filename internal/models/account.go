package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Account struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Email     string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string          `gorm:"not null" json:"-"`
	Role      string          `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance"`
	Version   int             `gorm:"not null;default:1" json:"-"`
}

// IsAdmin reports whether the account may use the admin panel.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
