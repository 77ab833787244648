package user

import (
	"parking-backend/internal/models"

	"github.com/shopspring/decimal"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID      uint            `json:"id"`
	Email   string          `json:"email"`
	Role    string          `json:"role"`
	Balance decimal.Decimal `json:"balance"`
}

func NewUserResponse(a *models.Account) UserResponse {
	return UserResponse{
		ID:      a.ID,
		Email:   a.Email,
		Role:    a.Role,
		Balance: a.Balance,
	}
}

type BalanceResponse struct {
	Email   string          `json:"email"`
	Balance decimal.Decimal `json:"balance"`
}

type AddBalanceInput struct {
	Email  string           `json:"email" binding:"required"`
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}
