package reservation

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/reserve", Reserve)
	router.GET("/reservations/:email", ListAccountReservations)
	router.POST("/reservations/:id/end", EndReservation)
}
