package services

import (
	"context"
	"testing"
	"time"

	"parking-backend/internal/database"
	"parking-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db.Migrator().DropTable(&models.Account{}, &models.Spot{}, &models.Reservation{}, &models.Transaction{})
	if err := database.Migrate(db); err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	database.RedisClient = nil

	Now = func() time.Time { return testNow }
	t.Cleanup(func() {
		Now = func() time.Time { return time.Now().UTC() }
	})
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		database.RedisClient = nil
		mr.Close()
	})
	return mr
}

// advance moves the service clock forward by d.
func advance(d time.Duration) {
	current := Now()
	Now = func() time.Time { return current.Add(d) }
}

func seedAccount(t *testing.T, email string, balance float64) *models.Account {
	t.Helper()

	account, err := RegisterAccount(context.Background(), email, "secret123", "")
	require.NoError(t, err)
	if balance > 0 {
		_, err = Credit(context.Background(), email, decimal.NewFromFloat(balance))
		require.NoError(t, err)
	}
	return account
}

func seedSpot(t *testing.T, location string, price float64) *models.Spot {
	t.Helper()

	spot, err := CreateSpot(context.Background(), location, decimal.NewFromFloat(price))
	require.NoError(t, err)
	return spot
}

func reloadSpot(t *testing.T, id uint) *models.Spot {
	t.Helper()

	spot, err := FindSpotByID(context.Background(), id)
	require.NoError(t, err)
	return spot
}

func balanceOf(t *testing.T, email string) decimal.Decimal {
	t.Helper()

	balance, err := GetBalance(context.Background(), email)
	require.NoError(t, err)
	return balance
}
