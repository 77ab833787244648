package spot

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	spots := router.Group("/spots")
	spots.GET("/free", ListFreeSpots)
	spots.GET("/search", SearchSpots)
}
