package transaction

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"parking-backend/internal/api/v1/common"
	"parking-backend/internal/models"
	"parking-backend/internal/services"
	"parking-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exportLimit caps a single CSV export.
const exportLimit = 10000

// ListTransactions godoc
// @Summary List ledger entries
// @Description Get a paginated list of balance transactions with filtering. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param account_id query int false "Filter by account ID"
// @Param type query string false "Filter by transaction type"
// @Param start_time query string false "Filter by start time (RFC3339)"
// @Param end_time query string false "Filter by end time (RFC3339)"
// @Param min_amount query number false "Filter by minimum amount"
// @Param max_amount query number false "Filter by maximum amount"
// @Success 200 {object} utils.Response{data=TransactionListResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/transactions [get]
func ListTransactions(c *gin.Context) {
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

	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}
	filter.Page = page
	filter.Limit = limit

	transactions, total, err := services.FindTransactions(filter)
	if err != nil {
		common.RespondError(c, err, "fetch transactions")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", TransactionListResponse{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		Limit:        limit,
	}))
}

// ExportTransactions godoc
// @Summary Export ledger entries as CSV
// @Description Accepts the same filters as the list endpoint.
// @Tags admin
// @Produce text/csv
// @Security Bearer
// @Success 200 {file} file
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/transactions/export [get]
func ExportTransactions(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}
	filter.Page = 1
	filter.Limit = exportLimit

	transactions, _, err := services.FindTransactions(filter)
	if err != nil {
		common.RespondError(c, err, "fetch transactions")
		return
	}

	csvContent, err := services.GenerateTransactionCSV(transactions)
	if err != nil {
		common.RespondError(c, err, "generate CSV")
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().UTC().Format("20060102150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", csvContent)
}

func parseFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if accountIDStr, exists := c.GetQuery("account_id"); exists {
		accountID, err := strconv.ParseUint(accountIDStr, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("Invalid account_id")
		}
		id := uint(accountID)
		filter.AccountID = &id
	}

	if typeStr, exists := c.GetQuery("type"); exists {
		t := models.TransactionType(typeStr)
		filter.Type = &t
	}

	if startTimeStr, exists := c.GetQuery("start_time"); exists {
		startTime, err := time.Parse(time.RFC3339, startTimeStr)
		if err != nil {
			return filter, fmt.Errorf("Invalid start_time format")
		}
		filter.StartTime = &startTime
	}

	if endTimeStr, exists := c.GetQuery("end_time"); exists {
		endTime, err := time.Parse(time.RFC3339, endTimeStr)
		if err != nil {
			return filter, fmt.Errorf("Invalid end_time format")
		}
		filter.EndTime = &endTime
	}

	if minAmountStr, exists := c.GetQuery("min_amount"); exists {
		minAmount, err := decimal.NewFromString(minAmountStr)
		if err != nil {
			return filter, fmt.Errorf("Invalid min_amount")
		}
		filter.MinAmount = &minAmount
	}

	if maxAmountStr, exists := c.GetQuery("max_amount"); exists {
		maxAmount, err := decimal.NewFromString(maxAmountStr)
		if err != nil {
			return filter, fmt.Errorf("Invalid max_amount")
		}
		filter.MaxAmount = &maxAmount
	}

	return filter, nil
}
