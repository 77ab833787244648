package middleware

import (
	"net/http"

	"parking-backend/internal/services"
	"parking-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the auth middlewares.
const (
	ContextAccount = "account"
	ContextToken   = "token"
	ContextClaims  = "claims"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, http.StatusUnauthorized)
		if !ok {
			return
		}

		accountIDFloat, ok := claims["account_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid account ID in token"))
			c.Abort()
			return
		}

		account, err := services.FindAccountByID(c.Request.Context(), uint(accountIDFloat))
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not found"))
			c.Abort()
			return
		}

		c.Set(ContextAccount, account)
		c.Next()
	}
}

// authenticate checks the bearer token and stores it with its claims on the
// context. invalidStatus is returned for tokens that fail verification.
func authenticate(c *gin.Context, invalidStatus int) (jwt.MapClaims, bool) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		c.Abort()
		return nil, false
	}

	isDenylisted, err := services.IsDenylisted(tokenString)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to check token status"))
		c.Abort()
		return nil, false
	}
	if isDenylisted {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Token has been revoked"))
		c.Abort()
		return nil, false
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		c.JSON(invalidStatus, utils.NewErrorResponse(invalidStatus, "Invalid or expired token"))
		c.Abort()
		return nil, false
	}

	c.Set(ContextToken, tokenString)
	c.Set(ContextClaims, claims)
	return claims, true
}
