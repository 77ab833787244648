package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"parking-backend/config"
	"parking-backend/internal/database"
	"parking-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionFilter defines criteria for filtering ledger entries
type TransactionFilter struct {
	AccountID *uint
	Type      *models.TransactionType
	StartTime *time.Time
	EndTime   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Page      int
	Limit     int
}

// FindTransactions retrieves a paginated list of transactions with filtering
func FindTransactions(filter TransactionFilter) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := database.DB.Model(&models.Transaction{})

	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.StartTime != nil {
		query = query.Where("created_at >= ?", filter.StartTime.UTC())
	}
	if filter.EndTime != nil {
		query = query.Where("created_at <= ?", filter.EndTime.UTC())
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset((filter.Page - 1) * filter.Limit)
	}
	if err := query.Order("created_at desc").Order("id desc").Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// GenerateTransactionCSV generates a CSV file content for transactions
func GenerateTransactionCSV(transactions []models.Transaction) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{
		"ID", "Time", "Account ID", "Type", "Amount",
		"Balance Before", "Balance After", "Reason",
		"Reservation ID", "Hash",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, t := range transactions {
		reservationID := ""
		if t.ReservationID != nil {
			reservationID = fmt.Sprintf("%d", *t.ReservationID)
		}
		record := []string{
			fmt.Sprintf("%d", t.ID),
			t.CreatedAt.UTC().Format(time.RFC3339Nano),
			fmt.Sprintf("%d", t.AccountID),
			string(t.Type),
			t.Amount.StringFixed(2),
			t.BalanceBefore.StringFixed(2),
			t.BalanceAfter.StringFixed(2),
			t.Reason,
			reservationID,
			t.Hash,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// ledgerSecret keys the transaction hashes.
func ledgerSecret() string {
	cfg, err := config.LoadConfig()
	if err != nil {
		return (&config.Config{}).SigningSecret()
	}
	return cfg.SigningSecret()
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// adjustBalance applies delta to a locked account row and records the
// ledger entry. The row is only written if its version is unchanged since
// it was read; account is updated in place on success.
func adjustBalance(tx *gorm.DB, account *models.Account, delta decimal.Decimal, txType models.TransactionType, reason string, reservationID *uint) (*models.Transaction, error) {
	before := account.Balance
	after := models.RoundMoney(before.Add(delta))
	if after.IsNegative() {
		return nil, ErrInsufficientFunds
	}

	now := Now()
	result := tx.Model(&models.Account{}).
		Where("id = ? AND version = ?", account.ID, account.Version).
		Updates(map[string]interface{}{
			"balance":    after,
			"version":    gorm.Expr("version + 1"),
			"updated_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrOptimisticLock
	}
	account.Balance = after
	account.Version++

	entry := &models.Transaction{
		CreatedAt:     now,
		AccountID:     account.ID,
		Amount:        models.RoundMoney(delta),
		BalanceBefore: before,
		BalanceAfter:  after,
		Reason:        reason,
		Type:          txType,
		ReservationID: reservationID,
	}
	entry.Hash = entry.GenerateHash(ledgerSecret())
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}
