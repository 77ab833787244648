package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"parking-backend/internal/database"
	"parking-backend/internal/metrics"
	"parking-backend/internal/models"
	"parking-backend/internal/utils"
	"parking-backend/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterAccount creates an account with a zero balance. An empty role
// means models.RoleUser.
func RegisterAccount(ctx context.Context, email, password, role string) (*models.Account, error) {
	email = strings.TrimSpace(email)
	if role == "" {
		role = models.RoleUser
	}

	db := database.DB.WithContext(ctx)

	var existing models.Account
	result := db.Where("email = ?", email).Limit(1).Find(&existing)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		return nil, ErrAccountExists
	}

	if len(password) < minPasswordLength {
		return nil, invalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if !emailPattern.MatchString(email) {
		return nil, invalidInput("invalid email format")
	}
	if !models.ValidRole(role) {
		return nil, invalidInput("role must be user or admin")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		Balance:  decimal.Zero,
		Version:  1,
	}
	if err := db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	invalidateStatistics()
	logger.Log.Info("Account registered", zap.Uint("account_id", account.ID), zap.String("role", role))
	return account, nil
}

// Authenticate checks the credentials and returns the account.
func Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := FindAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}
	return account, nil
}

// LoginAccount authenticates and issues a bearer token for the account.
func LoginAccount(ctx context.Context, email, password string) (string, *models.Account, error) {
	account, err := Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateToken(account.ID, account.Role)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

func FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := database.DB.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAccountByID loads an account, served from Redis when cached. Cached
// copies omit the password hash and version, so never write them back.
func FindAccountByID(ctx context.Context, id uint) (*models.Account, error) {
	cacheKey := accountCacheKey(id)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var account models.Account
			if err := json.Unmarshal([]byte(val), &account); err == nil {
				return &account, nil
			}
		}
	}

	var account models.Account
	if err := database.DB.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(account); err == nil {
			database.RedisClient.Set(ctx, cacheKey, data, time.Hour)
		}
	}

	return &account, nil
}

func GetBalance(ctx context.Context, email string) (decimal.Decimal, error) {
	account, err := FindAccountByEmail(ctx, email)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// Credit tops up the account balance and returns the new balance.
func Credit(ctx context.Context, email string, amount decimal.Decimal) (decimal.Decimal, error) {
	amount = models.RoundMoney(amount)
	if !amount.IsPositive() {
		return decimal.Zero, invalidInput("amount must be positive")
	}

	var balance decimal.Decimal
	var accountID uint
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := lockAccountByEmail(tx, email)
		if err != nil {
			return err
		}

		if _, err := adjustBalance(tx, account, amount, models.TransactionTypeTopUp, "Balance top-up", nil); err != nil {
			return err
		}
		balance = account.Balance
		accountID = account.ID
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	invalidateAccount(accountID)
	metrics.RecordCredit()
	logger.Log.Info("Balance credited", zap.String("email", email), zap.String("amount", amount.StringFixed(2)))
	return balance, nil
}

func CountAccounts(ctx context.Context) (int64, error) {
	var total int64
	err := database.DB.WithContext(ctx).Model(&models.Account{}).Count(&total).Error
	return total, err
}

// FindAccounts returns one page of accounts ordered by id, with the total.
func FindAccounts(ctx context.Context, page, limit int) ([]models.Account, int64, error) {
	var accounts []models.Account
	var total int64

	db := database.DB.WithContext(ctx)
	if err := db.Model(&models.Account{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("id").Limit(limit).Offset(offset).Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// SetAccountRole promotes or demotes an account. Admin tokens already issued
// to a demoted account stop working on their next request.
func SetAccountRole(ctx context.Context, id uint, role, operator string) (*models.Account, error) {
	if !models.ValidRole(role) {
		return nil, invalidInput("role must be user or admin")
	}

	var account models.Account
	db := database.DB.WithContext(ctx)
	if err := db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if account.Role != role {
		if err := db.Model(&account).Update("role", role).Error; err != nil {
			return nil, err
		}
		account.Role = role
		invalidateAccount(account.ID)
		logger.Log.Info("Account role changed",
			zap.Uint("account_id", account.ID),
			zap.String("role", role),
			zap.String("operator", operator),
		)
	}
	return &account, nil
}

func lockAccountByEmail(tx *gorm.DB, email string) (*models.Account, error) {
	var account models.Account
	if err := forUpdate(tx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func accountCacheKey(id uint) string {
	return fmt.Sprintf("account:%d", id)
}

func invalidateAccount(id uint) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, accountCacheKey(id))
	}
}

// EnsureAdmin creates the admin account on first start. An existing account
// with that email is left as it is.
func EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	_, err := FindAccountByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return false, err
	}

	if _, err := RegisterAccount(ctx, email, password, models.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}
