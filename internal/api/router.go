package api

import (
	"net/http"

	adminReservation "parking-backend/internal/api/v1/admin/reservation"
	adminSpot "parking-backend/internal/api/v1/admin/spot"
	adminStatistics "parking-backend/internal/api/v1/admin/statistics"
	adminTransaction "parking-backend/internal/api/v1/admin/transaction"
	adminUser "parking-backend/internal/api/v1/admin/user"
	"parking-backend/internal/api/v1/auth"
	"parking-backend/internal/api/v1/reservation"
	"parking-backend/internal/api/v1/spot"
	userRoutes "parking-backend/internal/api/v1/user"
	"parking-backend/internal/metrics"
	"parking-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options carries the pieces of the router that main wires up.
type Options struct {
	// Sweeper is triggered before each request when set.
	Sweeper     middleware.Trigger
	RateLimiter *middleware.RateLimiter
}

// NewRouter builds the HTTP surface. The database and Redis must already be
// connected.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(), metrics.Middleware())

	// The mobile client calls from arbitrary origins and sends no cookies.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
		MaxAge:          300,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	root := router.Group("/")
	if opts.RateLimiter != nil {
		root.Use(opts.RateLimiter.Handler())
	}
	if opts.Sweeper != nil {
		root.Use(middleware.Sweep(opts.Sweeper))
	}
	{
		auth.RegisterRoutes(root)
		userRoutes.RegisterRoutes(root)
		spot.RegisterRoutes(root)
		reservation.RegisterRoutes(root)

		admin := root.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminSpot.RegisterRoutes(admin)
			adminReservation.RegisterRoutes(admin)
			adminStatistics.RegisterRoutes(admin)
			adminTransaction.RegisterRoutes(admin)
			adminUser.RegisterRoutes(admin)
		}
	}

	return router
}
