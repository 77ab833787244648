package spot

import (
	"parking-backend/internal/models"

	"github.com/shopspring/decimal"
)

type CreateSpotInput struct {
	Location     string           `json:"location" binding:"required"`
	PricePerHour *decimal.Decimal `json:"pricePerHour" binding:"required"`
}

// UpdateSpotInput changes only the fields that are present.
type UpdateSpotInput struct {
	Location     *string          `json:"location"`
	PricePerHour *decimal.Decimal `json:"pricePerHour"`
}

type SetStatusInput struct {
	Status models.SpotStatus `json:"status" binding:"required,oneof=free reserved occupied"`
}

type SpotListResponse struct {
	Spots []models.Spot `json:"spots"`
}
