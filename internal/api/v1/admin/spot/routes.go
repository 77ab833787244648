package spot

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/spots", ListSpots)
	router.POST("/spots", CreateSpot)
	router.PUT("/spots/:id", UpdateSpot)
	router.PATCH("/spots/:id/status", SetSpotStatus)
	router.DELETE("/spots/:id", DeleteSpot)
}
