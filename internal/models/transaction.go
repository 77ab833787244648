package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeTopUp            TransactionType = "top_up"
	TransactionTypeReservationDebit TransactionType = "reservation_debit"
)

// Transaction is one ledger entry. Amount is signed: credits are positive,
// debits negative.
type Transaction struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time       `gorm:"precision:3" json:"created_at"` // Millisecond precision
	AccountID     uint            `gorm:"index;not null" json:"account_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_after"`
	Reason        string          `gorm:"type:text" json:"reason"`
	Type          TransactionType `gorm:"type:varchar(50);index;not null" json:"type"`
	ReservationID *uint           `gorm:"index" json:"reservation_id,omitempty"`
	Hash          string          `gorm:"type:varchar(64);default:''" json:"hash"` // HMAC SHA256
}

// GenerateHash generates a tamper-proof hash for the transaction
func (t *Transaction) GenerateHash(secret string) string {
	var reservationID uint
	if t.ReservationID != nil {
		reservationID = *t.ReservationID
	}
	data := fmt.Sprintf("%d|%d|%s|%s|%s|%s|%s|%d",
		t.AccountID, t.CreatedAt.UnixMilli(), t.Amount.StringFixed(2), t.BalanceBefore.StringFixed(2),
		t.BalanceAfter.StringFixed(2), t.Reason, t.Type, reservationID)

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyHash reports whether Hash matches the row contents.
func (t *Transaction) VerifyHash(secret string) bool {
	return hmac.Equal([]byte(t.Hash), []byte(t.GenerateHash(secret)))
}
