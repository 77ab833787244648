package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ReservationStatusActive    = "active"
	ReservationStatusCompleted = "completed"
)

// Reservation is a time-bounded claim on a spot. Rows are never deleted;
// ending a reservation early rewrites EndTime.
type Reservation struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	AccountID uint            `gorm:"index;not null" json:"user_id"`
	SpotID    uint            `gorm:"index;not null" json:"spot_id"`
	StartTime time.Time       `gorm:"not null" json:"start_time"`
	EndTime   time.Time       `gorm:"index;not null" json:"end_time"`
	Paid      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"paid"`
}

// ActiveAt reports whether the reservation still holds its spot at now.
func (r *Reservation) ActiveAt(now time.Time) bool {
	return r.EndTime.After(now)
}

// StatusAt returns "active" or "completed" relative to now.
func (r *Reservation) StatusAt(now time.Time) string {
	if r.ActiveAt(now) {
		return ReservationStatusActive
	}
	return ReservationStatusCompleted
}
