package user

import (
	"net/http"
	"strconv"
	"time"

	"parking-backend/internal/api/v1/common"
	"parking-backend/internal/middleware"
	"parking-backend/internal/models"
	"parking-backend/internal/services"
	"parking-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type UserListItem struct {
	ID        uint            `json:"id"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserListItem `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}

func newUserListItem(a *models.Account) UserListItem {
	return UserListItem{
		ID:        a.ID,
		Email:     a.Email,
		Role:      a.Role,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ListUsers godoc
// @Summary List all accounts
// @Description Get a paginated list of accounts with balances. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response{data=UserListResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /admin/users [get]
func ListUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid page number"))
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit number"))
		return
	}

	accounts, total, err := services.FindAccounts(c.Request.Context(), page, limit)
	if err != nil {
		common.RespondError(c, err, "fetch users")
		return
	}

	items := make([]UserListItem, 0, len(accounts))
	for i := range accounts {
		items = append(items, newUserListItem(&accounts[i]))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved successfully", UserListResponse{
		Users: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

// UpdateUserRole godoc
// @Summary Change an account's role
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Account ID"
// @Param body body UpdateRoleRequest true "New role"
// @Success 200 {object} utils.Response{data=UserListItem}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/users/{id}/role [patch]
func UpdateUserRole(c *gin.Context) {
	id, ok := common.ParseID(c, "id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	operator := "admin"
	if value, exists := c.Get(middleware.ContextAccount); exists {
		self := value.(*models.Account)
		// An admin cannot lock themselves out of the panel.
		if self.ID == id && req.Role != models.RoleAdmin {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, "cannot demote your own account"))
			return
		}
		operator = self.Email
	}

	account, err := services.SetAccountRole(c.Request.Context(), id, req.Role, operator)
	if err != nil {
		common.RespondError(c, err, "update user")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User updated successfully", newUserListItem(account)))
}
