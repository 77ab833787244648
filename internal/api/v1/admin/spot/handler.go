package spot

import (
	"net/http"

	"parking-backend/internal/api/v1/common"
	"parking-backend/internal/models"
	"parking-backend/internal/services"
	"parking-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListSpots godoc
// @Summary List all spots
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=SpotListResponse}
// @Router /admin/spots [get]
func ListSpots(c *gin.Context) {
	spots, err := services.ListSpots(c.Request.Context())
	if err != nil {
		common.RespondError(c, err, "list spots")
		return
	}
	resp := SpotListResponse{Spots: spots}
	if resp.Spots == nil {
		resp.Spots = []models.Spot{}
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Spots retrieved successfully", resp))
}

// CreateSpot godoc
// @Summary Add a spot
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param input body CreateSpotInput true "Spot"
// @Success 201 {object} utils.Response{data=models.Spot}
// @Failure 400 {object} utils.Response
// @Router /admin/spots [post]
func CreateSpot(c *gin.Context) {
	var input CreateSpotInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	spot, err := services.CreateSpot(c.Request.Context(), input.Location, *input.PricePerHour)
	if err != nil {
		common.RespondError(c, err, "add spot")
		return
	}
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Spot added successfully", spot))
}

// UpdateSpot godoc
// @Summary Update a spot
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Spot ID"
// @Param input body UpdateSpotInput true "Fields to change"
// @Success 200 {object} utils.Response{data=models.Spot}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/spots/{id} [put]
func UpdateSpot(c *gin.Context) {
	id, ok := common.ParseID(c, "id")
	if !ok {
		return
	}

	var input UpdateSpotInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	spot, err := services.UpdateSpot(c.Request.Context(), id, input.Location, input.PricePerHour)
	if err != nil {
		common.RespondError(c, err, "update spot")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Spot updated successfully", spot))
}

// SetSpotStatus godoc
// @Summary Override a spot's status
// @Description Any status may follow any other.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Spot ID"
// @Param input body SetStatusInput true "Status"
// @Success 200 {object} utils.Response{data=models.Spot}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/spots/{id}/status [patch]
func SetSpotStatus(c *gin.Context) {
	id, ok := common.ParseID(c, "id")
	if !ok {
		return
	}

	var input SetStatusInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	spot, err := services.SetSpotStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		common.RespondError(c, err, "update status")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Status updated successfully", spot))
}

// DeleteSpot godoc
// @Summary Delete a spot
// @Description Refused while a reservation on the spot is active.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Spot ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/spots/{id} [delete]
func DeleteSpot(c *gin.Context) {
	id, ok := common.ParseID(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteSpot(c.Request.Context(), id); err != nil {
		common.RespondError(c, err, "delete spot")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Spot deleted successfully", nil))
}
