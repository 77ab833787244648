package services

import (
	"context"
	"errors"
	"strings"

	"parking-backend/internal/database"
	"parking-backend/internal/models"
	"parking-backend/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ListFreeSpots(ctx context.Context) ([]models.Spot, error) {
	var spots []models.Spot
	err := database.DB.WithContext(ctx).
		Where("status = ?", models.SpotStatusFree).
		Order("id").
		Find(&spots).Error
	return spots, err
}

// SearchSpots returns free spots whose location contains substring. The
// match is case-sensitive on every supported dialect.
func SearchSpots(ctx context.Context, substring string) ([]models.Spot, error) {
	db := database.DB.WithContext(ctx)
	var spots []models.Spot
	err := db.Where("status = ?", models.SpotStatusFree).
		Where(containsExpr(db), substring).
		Order("id").
		Find(&spots).Error
	return spots, err
}

// containsExpr picks a case-sensitive substring test. LIKE folds ASCII case
// on SQLite and ILIKE would on Postgres, so neither is used.
func containsExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "strpos(location, ?) > 0"
	}
	return "instr(location, ?) > 0"
}

func ListSpots(ctx context.Context) ([]models.Spot, error) {
	var spots []models.Spot
	err := database.DB.WithContext(ctx).Order("id").Find(&spots).Error
	return spots, err
}

func FindSpotByID(ctx context.Context, id uint) (*models.Spot, error) {
	var spot models.Spot
	if err := database.DB.WithContext(ctx).First(&spot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}
	return &spot, nil
}

func CreateSpot(ctx context.Context, location string, price decimal.Decimal) (*models.Spot, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, invalidInput("location is required")
	}
	if !price.IsPositive() {
		return nil, invalidInput("price per hour must be positive")
	}

	spot := &models.Spot{
		Location:     location,
		PricePerHour: models.RoundMoney(price),
		Status:       models.SpotStatusFree,
	}
	if err := database.DB.WithContext(ctx).Create(spot).Error; err != nil {
		return nil, err
	}

	invalidateStatistics()
	logger.Log.Info("Spot created", zap.Uint("spot_id", spot.ID), zap.String("location", spot.Location))
	return spot, nil
}

// UpdateSpot changes only the supplied fields.
func UpdateSpot(ctx context.Context, id uint, location *string, price *decimal.Decimal) (*models.Spot, error) {
	if location == nil && price == nil {
		return nil, invalidInput("no updates provided")
	}

	updates := map[string]interface{}{}
	if location != nil {
		trimmed := strings.TrimSpace(*location)
		if trimmed == "" {
			return nil, invalidInput("location must not be empty")
		}
		updates["location"] = trimmed
	}
	if price != nil {
		if !price.IsPositive() {
			return nil, invalidInput("price per hour must be positive")
		}
		updates["price_per_hour"] = models.RoundMoney(*price)
	}

	spot, err := FindSpotByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := database.DB.WithContext(ctx).Model(spot).Updates(updates).Error; err != nil {
		return nil, err
	}
	return FindSpotByID(ctx, id)
}

// SetSpotStatus is an admin override; any status may follow any other.
func SetSpotStatus(ctx context.Context, id uint, status models.SpotStatus) (*models.Spot, error) {
	if !status.Valid() {
		return nil, invalidInput("status must be one of free, reserved, occupied")
	}

	spot, err := FindSpotByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := database.DB.WithContext(ctx).Model(spot).Update("status", status).Error; err != nil {
		return nil, err
	}
	spot.Status = status

	invalidateStatistics()
	logger.Log.Info("Spot status changed", zap.Uint("spot_id", id), zap.String("status", string(status)))
	return spot, nil
}

// DeleteSpot removes a spot unless a reservation on it is still active.
// Completed reservations keep their spot_id.
func DeleteSpot(ctx context.Context, id uint) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var spot models.Spot
		if err := forUpdate(tx).First(&spot, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpotNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.Reservation{}).
			Where("spot_id = ? AND end_time > ?", id, Now()).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrSpotHasReservations
		}

		if err := tx.Delete(&spot).Error; err != nil {
			return err
		}

		invalidateStatistics()
		logger.Log.Info("Spot deleted", zap.Uint("spot_id", id))
		return nil
	})
}
