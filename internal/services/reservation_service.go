package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"parking-backend/internal/database"
	"parking-backend/internal/metrics"
	"parking-backend/internal/models"
	"parking-backend/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxReservationHours caps a single reservation at one week.
const MaxReservationHours = 24 * 7

var heldStatuses = []models.SpotStatus{models.SpotStatusReserved, models.SpotStatusOccupied}

// ReservationDetail is a reservation joined with the spot it holds.
type ReservationDetail struct {
	models.Reservation
	Location     string          `json:"location"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
}

// AdminReservation is the admin panel view of a reservation.
type AdminReservation struct {
	models.Reservation
	UserEmail         string `json:"user_email"`
	SpotLocation      string `json:"spot_location"`
	ReservationStatus string `json:"reservation_status" gorm:"-"`
}

// Reserve debits the account, marks the spot reserved and records the
// reservation as one unit. Either all of it happens or none of it does.
func Reserve(ctx context.Context, email string, spotID uint, hours float64) (*ReservationDetail, error) {
	detail, err := reserve(ctx, email, spotID, hours)
	metrics.RecordReservation(reservationResult(err))
	return detail, err
}

func reserve(ctx context.Context, email string, spotID uint, hours float64) (*ReservationDetail, error) {
	if math.IsNaN(hours) || hours <= 0 || hours > MaxReservationHours {
		return nil, invalidInput(fmt.Sprintf("hours must be greater than 0 and at most %d", MaxReservationHours))
	}

	var detail *ReservationDetail
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := lockAccountByEmail(tx, email)
		if err != nil {
			return err
		}

		var spot models.Spot
		if err := forUpdate(tx).First(&spot, spotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpotNotFound
			}
			return err
		}
		if spot.Status != models.SpotStatusFree {
			return ErrSpotNotAvailable
		}

		cost := models.Cost(spot.PricePerHour, hours)
		if account.Balance.LessThan(cost) {
			return ErrInsufficientFunds
		}

		now := Now()
		result := tx.Model(&models.Spot{}).
			Where("id = ? AND status = ?", spot.ID, models.SpotStatusFree).
			Updates(map[string]interface{}{"status": models.SpotStatusReserved, "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSpotNotAvailable
		}

		reservation := models.Reservation{
			AccountID: account.ID,
			SpotID:    spot.ID,
			StartTime: now,
			EndTime:   now.Add(time.Duration(hours * float64(time.Hour))),
			Paid:      cost,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}

		reason := fmt.Sprintf("Reservation %d for spot %d", reservation.ID, spot.ID)
		if _, err := adjustBalance(tx, account, cost.Neg(), models.TransactionTypeReservationDebit, reason, &reservation.ID); err != nil {
			return err
		}

		detail = &ReservationDetail{
			Reservation:  reservation,
			Location:     spot.Location,
			PricePerHour: spot.PricePerHour,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateAccount(detail.AccountID)
	invalidateStatistics()
	logger.Log.Info("Spot reserved",
		zap.Uint("reservation_id", detail.ID),
		zap.Uint("account_id", detail.AccountID),
		zap.Uint("spot_id", detail.SpotID),
		zap.String("paid", detail.Paid.StringFixed(2)),
	)
	return detail, nil
}

func reservationResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrInvalidInput):
		return metrics.ResultInvalid
	case errors.Is(err, ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrConflict):
		return metrics.ResultConflict
	case errors.Is(err, ErrInsufficientFunds):
		return metrics.ResultInsufficientFunds
	default:
		return metrics.ResultError
	}
}

// EndReservation ends an active reservation on behalf of its holder.
func EndReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return endReservation(ctx, id, "user")
}

// ForceEndReservation is the admin variant of EndReservation.
func ForceEndReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return endReservation(ctx, id, "admin")
}

// endReservation moves end_time to now and frees the spot unless another
// reservation on it is still running. A reservation that has already run
// out is left untouched.
func endReservation(ctx context.Context, id uint, actor string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		now := Now()
		if !reservation.ActiveAt(now) {
			return ErrReservationExpired
		}

		if err := tx.Model(&models.Reservation{}).
			Where("id = ?", reservation.ID).
			Update("end_time", now).Error; err != nil {
			return err
		}
		reservation.EndTime = now

		return tx.Model(&models.Spot{}).
			Where("id = ? AND status IN ?", reservation.SpotID, heldStatuses).
			Where("NOT EXISTS (SELECT 1 FROM reservations r WHERE r.spot_id = spots.id AND r.id <> ? AND r.end_time > ?)", reservation.ID, now).
			Updates(map[string]interface{}{"status": models.SpotStatusFree, "updated_at": now}).Error
	})
	if err != nil {
		return nil, err
	}

	invalidateStatistics()
	metrics.RecordReservationEnded(actor)
	logger.Log.Info("Reservation ended",
		zap.Uint("reservation_id", reservation.ID),
		zap.Uint("spot_id", reservation.SpotID),
		zap.String("actor", actor),
	)
	return &reservation, nil
}

// CleanupExpiredReservations frees every held spot that has reservations but
// none still running. It returns the number of spots freed.
func CleanupExpiredReservations(ctx context.Context) (int64, error) {
	var freed int64
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := Now()
		result := tx.Model(&models.Spot{}).
			Where("status IN ?", heldStatuses).
			Where("EXISTS (SELECT 1 FROM reservations r WHERE r.spot_id = spots.id)").
			Where("NOT EXISTS (SELECT 1 FROM reservations r WHERE r.spot_id = spots.id AND r.end_time > ?)", now).
			Updates(map[string]interface{}{"status": models.SpotStatusFree, "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		freed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	if freed > 0 {
		invalidateStatistics()
		logger.Log.Info("Expired reservations cleaned up", zap.Int64("spots_freed", freed))
	}
	return freed, nil
}

// ListAccountReservations returns the account's reservations, newest first.
func ListAccountReservations(ctx context.Context, email string) ([]ReservationDetail, error) {
	account, err := FindAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	reservations := []ReservationDetail{}
	err = database.DB.WithContext(ctx).
		Table("reservations r").
		Select("r.*, COALESCE(s.location, '') AS location, COALESCE(s.price_per_hour, 0) AS price_per_hour").
		Joins("LEFT JOIN spots s ON s.id = r.spot_id").
		Where("r.account_id = ?", account.ID).
		Order("r.start_time DESC").
		Order("r.id DESC").
		Scan(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListReservations returns every reservation with its holder and spot.
func ListReservations(ctx context.Context) ([]AdminReservation, error) {
	reservations := []AdminReservation{}
	err := database.DB.WithContext(ctx).
		Table("reservations r").
		Select("r.*, COALESCE(a.email, '') AS user_email, COALESCE(s.location, '') AS spot_location").
		Joins("LEFT JOIN accounts a ON a.id = r.account_id").
		Joins("LEFT JOIN spots s ON s.id = r.spot_id").
		Order("r.start_time DESC").
		Order("r.id DESC").
		Scan(&reservations).Error
	if err != nil {
		return nil, err
	}

	now := Now()
	for i := range reservations {
		reservations[i].ReservationStatus = reservations[i].StatusAt(now)
	}
	return reservations, nil
}
