package services

import (
	"context"
	"encoding/json"
	"time"

	"parking-backend/internal/database"
	"parking-backend/internal/models"
	"parking-backend/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	statisticsCacheKey = "stats:parking"
	statisticsCacheTTL = 30 * time.Second
)

type Statistics struct {
	TotalSpots            int64           `json:"totalSpots"`
	FreeSpots             int64           `json:"freeSpots"`
	ReservedSpots         int64           `json:"reservedSpots"`
	OccupiedSpots         int64           `json:"occupiedSpots"`
	TotalReservations     int64           `json:"totalReservations"`
	ActiveReservations    int64           `json:"activeReservations"`
	CompletedReservations int64           `json:"completedReservations"`
	TotalRevenue          decimal.Decimal `json:"totalRevenue"`
	TotalUsers            int64           `json:"totalUsers"`
}

// GetStatistics aggregates spot, reservation and account counts. Results are
// cached in Redis briefly when it is configured.
func GetStatistics(ctx context.Context) (*Statistics, error) {
	if database.RedisClient != nil {
		if val, err := database.RedisClient.Get(ctx, statisticsCacheKey).Result(); err == nil {
			var stats Statistics
			if err := json.Unmarshal([]byte(val), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := computeStatistics(ctx)
	if err != nil {
		return nil, err
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := database.RedisClient.Set(ctx, statisticsCacheKey, data, statisticsCacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache statistics", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func computeStatistics(ctx context.Context) (*Statistics, error) {
	db := database.DB.WithContext(ctx)
	stats := &Statistics{TotalRevenue: decimal.Zero}

	var spotCounts []struct {
		Status models.SpotStatus
		Count  int64
	}
	if err := db.Model(&models.Spot{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&spotCounts).Error; err != nil {
		return nil, err
	}
	for _, s := range spotCounts {
		stats.TotalSpots += s.Count
		switch s.Status {
		case models.SpotStatusFree:
			stats.FreeSpots = s.Count
		case models.SpotStatusReserved:
			stats.ReservedSpots = s.Count
		case models.SpotStatusOccupied:
			stats.OccupiedSpots = s.Count
		}
	}

	var revenue struct {
		Count   int64
		Revenue decimal.NullDecimal
	}
	if err := db.Model(&models.Reservation{}).
		Select("COUNT(*) AS count, SUM(paid) AS revenue").
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	stats.TotalReservations = revenue.Count
	if revenue.Revenue.Valid {
		stats.TotalRevenue = models.RoundMoney(revenue.Revenue.Decimal)
	}

	if err := db.Model(&models.Reservation{}).
		Where("end_time > ?", Now()).
		Count(&stats.ActiveReservations).Error; err != nil {
		return nil, err
	}
	stats.CompletedReservations = stats.TotalReservations - stats.ActiveReservations

	total, err := CountAccounts(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalUsers = total

	return stats, nil
}

// invalidateStatistics drops the cached statistics after a mutation.
func invalidateStatistics() {
	if database.RedisClient == nil {
		return
	}
	if err := database.RedisClient.Del(database.Ctx, statisticsCacheKey).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate statistics cache", zap.Error(err))
	}
}
