package reservation

import (
	"net/http"

	"parking-backend/internal/api/v1/common"
	"parking-backend/internal/services"
	"parking-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReserveInput struct {
	Email  string  `json:"email" binding:"required"`
	SpotID uint    `json:"spotId" binding:"required"`
	Hours  float64 `json:"hours" binding:"required,gt=0"`
}

type ReserveResponse struct {
	Reservation *services.ReservationDetail `json:"reservation"`
}

type ReservationListResponse struct {
	Reservations []services.ReservationDetail `json:"reservations"`
}

// Reserve godoc
// @Summary Reserve a spot
// @Description Debits price_per_hour * hours from the account and holds the spot
// @Tags reservations
// @Accept json
// @Produce json
// @Param input body ReserveInput true "Reservation"
// @Success 201 {object} utils.Response{data=ReserveResponse}
// @Failure 400 {object} utils.Response
// @Failure 402 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /reserve [post]
func Reserve(c *gin.Context) {
	var input ReserveInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	detail, err := services.Reserve(c.Request.Context(), input.Email, input.SpotID, input.Hours)
	if err != nil {
		common.RespondError(c, err, "reserve spot")
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Spot reserved successfully", ReserveResponse{Reservation: detail}))
}

// ListAccountReservations godoc
// @Summary Reservation history
// @Tags reservations
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} utils.Response{data=ReservationListResponse}
// @Failure 404 {object} utils.Response
// @Router /reservations/{email} [get]
func ListAccountReservations(c *gin.Context) {
	reservations, err := services.ListAccountReservations(c.Request.Context(), c.Param("email"))
	if err != nil {
		common.RespondError(c, err, "list reservations")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Reservations retrieved successfully", ReservationListResponse{Reservations: reservations}))
}

// EndReservation godoc
// @Summary End a reservation early
// @Tags reservations
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /reservations/{id}/end [post]
func EndReservation(c *gin.Context) {
	id, ok := common.ParseID(c, "id")
	if !ok {
		return
	}

	reservation, err := services.EndReservation(c.Request.Context(), id)
	if err != nil {
		common.RespondError(c, err, "end reservation")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Reservation ended", reservation))
}
