package statistics

import (
	"net/http"

	"parking-backend/internal/api/v1/common"
	"parking-backend/internal/services"
	"parking-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type StatisticsResponse struct {
	Stats *services.Statistics `json:"stats"`
}

// GetStatistics godoc
// @Summary Parking statistics
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=StatisticsResponse}
// @Router /admin/statistics [get]
func GetStatistics(c *gin.Context) {
	stats, err := services.GetStatistics(c.Request.Context())
	if err != nil {
		common.RespondError(c, err, "get statistics")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Statistics retrieved successfully", StatisticsResponse{Stats: stats}))
}

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/statistics", GetStatistics)
}
