package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpotStatus is the occupancy state of a parking spot.
type SpotStatus string

const (
	SpotStatusFree     SpotStatus = "free"
	SpotStatusReserved SpotStatus = "reserved"
	SpotStatusOccupied SpotStatus = "occupied"
)

// Valid reports whether s is one of the three known statuses.
func (s SpotStatus) Valid() bool {
	switch s {
	case SpotStatusFree, SpotStatusReserved, SpotStatusOccupied:
		return true
	}
	return false
}

// Held reports whether the spot is currently held by someone.
func (s SpotStatus) Held() bool {
	return s == SpotStatusReserved || s == SpotStatusOccupied
}

type Spot struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Location     string          `gorm:"type:varchar(255);not null" json:"location"`
	PricePerHour decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_per_hour"`
	Status       SpotStatus      `gorm:"type:varchar(20);not null;default:'free';index" json:"status"`
}
