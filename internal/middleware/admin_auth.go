package middleware

import (
	"net/http"

	"parking-backend/internal/models"
	"parking-backend/internal/services"
	"parking-backend/internal/utils"
	"parking-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminAuthMiddleware validates that the caller holds an admin token and that
// the account behind it is still an admin.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, http.StatusForbidden)
		if !ok {
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != models.RoleAdmin {
			logger.Log.Warn("Unauthorized admin access attempt",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
				zap.Any("account_id", claims["account_id"]),
			)
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Forbidden: Admins only"))
			c.Abort()
			return
		}

		accountIDFloat, ok := claims["account_id"].(float64)
		if !ok {
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Invalid account ID in token"))
			c.Abort()
			return
		}

		account, err := services.FindAccountByID(c.Request.Context(), uint(accountIDFloat))
		if err != nil || !account.IsAdmin() {
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Forbidden: Admins only"))
			c.Abort()
			return
		}

		c.Set(ContextAccount, account)
		c.Next()
	}
}
