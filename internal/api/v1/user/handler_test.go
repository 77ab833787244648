package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"parking-backend/internal/api/v1/user"
	"parking-backend/internal/database"
	"parking-backend/internal/middleware"
	"parking-backend/internal/models"
	"parking-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	// Use in-memory SQLite for testing
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.Account{}, &models.Spot{}, &models.Reservation{}, &models.Transaction{})
	if err := database.Migrate(db); err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	database.RedisClient = nil

	_, err = services.RegisterAccount(context.Background(), "driver@example.com", "secret123", "")
	require.NoError(t, err)
	_, err = services.Credit(context.Background(), "driver@example.com", decimal.NewFromInt(20))
	require.NoError(t, err)
}

type balanceBody struct {
	Success bool                 `json:"success"`
	Code    int                  `json:"status"`
	Message string               `json:"message"`
	Data    user.BalanceResponse `json:"data"`
}

func TestGetBalance(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/balance/:email", user.GetBalance)

	tests := []struct {
		name           string
		email          string
		expectedStatus int
		expectedAmount string
	}{
		{"Existing Account", "driver@example.com", http.StatusOK, "20.00"},
		{"Unknown Account", "ghost@example.com", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/balance/"+tt.email, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp balanceBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedStatus, resp.Code)
			if tt.expectedAmount != "" {
				assert.True(t, resp.Success)
				assert.Equal(t, tt.email, resp.Data.Email)
				assert.Equal(t, tt.expectedAmount, resp.Data.Balance.StringFixed(2))
			} else {
				assert.False(t, resp.Success)
				assert.Equal(t, "account not found", resp.Message)
			}
		})
	}
}

func TestAddBalance(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/add-balance", user.AddBalance)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedAmount string
	}{
		{"Top Up", `{"email":"driver@example.com","amount":12.5}`, http.StatusOK, "32.50"},
		{"Zero Amount", `{"email":"driver@example.com","amount":0}`, http.StatusBadRequest, ""},
		{"Negative Amount", `{"email":"driver@example.com","amount":-5}`, http.StatusBadRequest, ""},
		{"Missing Amount", `{"email":"driver@example.com"}`, http.StatusBadRequest, ""},
		{"Missing Email", `{"amount":5}`, http.StatusBadRequest, ""},
		{"Malformed Body", `{"email":`, http.StatusBadRequest, ""},
		{"Unknown Account", `{"email":"ghost@example.com","amount":5}`, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, "/add-balance", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Logf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedAmount != "" {
				var resp balanceBody
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedAmount, resp.Data.Balance.StringFixed(2))
			}
		})
	}

	// Failed top-ups leave the balance alone.
	balance, err := services.GetBalance(context.Background(), "driver@example.com")
	require.NoError(t, err)
	assert.Equal(t, "32.50", balance.StringFixed(2))
}

func TestCurrentUser(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)

	account, err := services.FindAccountByEmail(context.Background(), "driver@example.com")
	require.NoError(t, err)

	// A stale copy in the context must not leak its balance.
	stale := *account
	stale.Balance = decimal.Zero

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextAccount, &stale)
		c.Next()
	})
	r.GET("/me", user.CurrentUser)

	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int               `json:"status"`
		Data user.UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, account.ID, resp.Data.ID)
	assert.Equal(t, "driver@example.com", resp.Data.Email)
	assert.Equal(t, models.RoleUser, resp.Data.Role)
	assert.Equal(t, "20.00", resp.Data.Balance.StringFixed(2))
	assert.NotContains(t, w.Body.String(), "password")
}

func TestCurrentUserWithoutAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", user.CurrentUser)

	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
