package user

import (
	"net/http"

	"parking-backend/internal/api/v1/common"
	"parking-backend/internal/middleware"
	"parking-backend/internal/models"
	"parking-backend/internal/services"
	"parking-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// CurrentUser godoc
// @Summary Get current user
// @Description Get the authenticated account with its latest balance
// @Tags user
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 401 {object} utils.Response
// @Router /me [get]
func CurrentUser(c *gin.Context) {
	value, exists := c.Get(middleware.ContextAccount)
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	account := value.(*models.Account)

	// The middleware copy may come from cache; balance must be current.
	latest, err := services.FindAccountByEmail(c.Request.Context(), account.Email)
	if err != nil {
		common.RespondError(c, err, "load user")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", NewUserResponse(latest)))
}

// GetBalance godoc
// @Summary Get balance
// @Tags user
// @Produce  json
// @Param   email  path  string  true  "Account email"
// @Success 200 {object} utils.Response{data=user.BalanceResponse}
// @Failure 404 {object} utils.Response
// @Router /balance/{email} [get]
func GetBalance(c *gin.Context) {
	email := c.Param("email")

	balance, err := services.GetBalance(c.Request.Context(), email)
	if err != nil {
		common.RespondError(c, err, "get balance")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balance retrieved successfully", BalanceResponse{
		Email:   email,
		Balance: balance,
	}))
}

// AddBalance godoc
// @Summary Top up balance
// @Tags user
// @Accept  json
// @Produce  json
// @Param   input  body  AddBalanceInput  true  "Top-up"
// @Success 200 {object} utils.Response{data=user.BalanceResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /add-balance [post]
func AddBalance(c *gin.Context) {
	var input AddBalanceInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	balance, err := services.Credit(c.Request.Context(), input.Email, *input.Amount)
	if err != nil {
		common.RespondError(c, err, "add balance")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balance added successfully", BalanceResponse{
		Email:   input.Email,
		Balance: balance,
	}))
}
