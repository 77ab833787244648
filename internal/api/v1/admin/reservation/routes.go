package reservation

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reservations", ListReservations)
	router.POST("/end-reservation", ForceEndReservation)
	router.POST("/cleanup", CleanupExpired)
}
