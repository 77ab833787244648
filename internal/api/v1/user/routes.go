package user

import (
	"parking-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/balance/:email", GetBalance)
	router.POST("/add-balance", AddBalance)
	router.GET("/me", middleware.AuthMiddleware(), CurrentUser)
}
