package spot

import (
	"net/http"

	"parking-backend/internal/api/v1/common"
	"parking-backend/internal/models"
	"parking-backend/internal/services"
	"parking-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type SpotListResponse struct {
	Spots []models.Spot `json:"spots"`
}

// ListFreeSpots godoc
// @Summary List free spots
// @Tags spots
// @Produce json
// @Success 200 {object} utils.Response{data=SpotListResponse}
// @Router /spots/free [get]
func ListFreeSpots(c *gin.Context) {
	spots, err := services.ListFreeSpots(c.Request.Context())
	if err != nil {
		common.RespondError(c, err, "list free spots")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Free spots retrieved successfully", SpotListResponse{Spots: nonNil(spots)}))
}

// SearchSpots godoc
// @Summary Search free spots by location
// @Description Case-sensitive substring match on location
// @Tags spots
// @Produce json
// @Param location query string true "Location substring"
// @Success 200 {object} utils.Response{data=SpotListResponse}
// @Failure 400 {object} utils.Response
// @Router /spots/search [get]
func SearchSpots(c *gin.Context) {
	location, ok := c.GetQuery("location")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "location query parameter is required"))
		return
	}

	spots, err := services.SearchSpots(c.Request.Context(), location)
	if err != nil {
		common.RespondError(c, err, "search spots")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Spots retrieved successfully", SpotListResponse{Spots: nonNil(spots)}))
}

func nonNil(spots []models.Spot) []models.Spot {
	if spots == nil {
		return []models.Spot{}
	}
	return spots
}
