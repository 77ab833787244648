package reservation

import (
	"fmt"
	"net/http"

	"parking-backend/internal/api/v1/common"
	"parking-backend/internal/services"
	"parking-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type EndReservationInput struct {
	ReservationID uint `json:"reservationId" binding:"required"`
}

type ReservationListResponse struct {
	Reservations []services.AdminReservation `json:"reservations"`
}

type CleanupResponse struct {
	Count int64 `json:"count"`
}

// ListReservations godoc
// @Summary List all reservations
// @Description Newest first, with holder email, spot location and active/completed status
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=ReservationListResponse}
// @Router /admin/reservations [get]
func ListReservations(c *gin.Context) {
	reservations, err := services.ListReservations(c.Request.Context())
	if err != nil {
		common.RespondError(c, err, "list reservations")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Reservations retrieved successfully", ReservationListResponse{Reservations: reservations}))
}

// ForceEndReservation godoc
// @Summary Force-end a reservation
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param input body EndReservationInput true "Reservation"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/end-reservation [post]
func ForceEndReservation(c *gin.Context) {
	var input EndReservationInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	reservation, err := services.ForceEndReservation(c.Request.Context(), input.ReservationID)
	if err != nil {
		common.RespondError(c, err, "end reservation")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Reservation ended and spot freed", reservation))
}

// CleanupExpired godoc
// @Summary Free spots whose reservations have expired
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=CleanupResponse}
// @Router /admin/cleanup [post]
func CleanupExpired(c *gin.Context) {
	count, err := services.CleanupExpiredReservations(c.Request.Context())
	if err != nil {
		common.RespondError(c, err, "cleanup reservations")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(fmt.Sprintf("Cleaned up %d expired reservations", count), CleanupResponse{Count: count}))
}
