package auth

import (
	"net/http"

	"parking-backend/internal/api/v1/common"
	"parking-backend/internal/api/v1/user"
	"parking-backend/internal/services"
	"parking-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the account and, after login, its bearer token.
type AuthResponse struct {
	User  user.UserResponse `json:"user"`
	Token string            `json:"token,omitempty"`
}

// Register godoc
// @Summary Register a new account
// @Description Register with email and password. Role defaults to user.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   RegisterInput  true  "Register Input"
// @Success 201 {object} utils.Response{data=AuthResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /register [post]
func Register(c *gin.Context) {
	var input RegisterInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	account, err := services.RegisterAccount(c.Request.Context(), input.Email, input.Password, input.Role)
	if err != nil {
		common.RespondError(c, err, "register user")
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Registration successful", AuthResponse{
		User: user.NewUserResponse(account),
	}))
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   LoginInput  true  "Login Input"
// @Success 200 {object} utils.Response{data=AuthResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	token, account, err := services.LoginAccount(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		common.RespondError(c, err, "log in")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Login successful", AuthResponse{
		User:  user.NewUserResponse(account),
		Token: token,
	}))
}

// Logout godoc
// @Summary Log out
// @Description Revoke the current bearer token
// @Tags auth
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /logout [post]
func Logout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid or expired token"))
		return
	}

	if err := services.AddToDenylist(tokenString, utils.TokenRemaining(claims)); err != nil {
		common.RespondError(c, err, "denylist token")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}
