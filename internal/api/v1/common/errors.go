package common

import (
	"errors"
	"net/http"
	"strconv"

	"parking-backend/internal/services"
	"parking-backend/internal/utils"
	"parking-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusFor maps a service error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an error envelope. Unexpected errors are logged
// and reported as "Failed to <action>" without their detail.
func RespondError(c *gin.Context, err error, action string) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Log.Error("Failed to "+action,
			zap.Error(err),
			zap.String("request_id", c.GetString("RequestID")),
			zap.String("path", c.FullPath()),
		)
		message = "Failed to " + action
	}
	c.JSON(status, utils.NewErrorResponse(status, message))
}

// ParseID reads a positive numeric path parameter, answering 400 otherwise.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid "+name))
		return 0, false
	}
	return uint(id), true
}
