package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"parking-backend/internal/api/v1/admin/user"
	"parking-backend/internal/database"
	"parking-backend/internal/middleware"
	"parking-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() {
	// Use in-memory SQLite for testing
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.Account{}, &models.Transaction{})
	if err := db.AutoMigrate(&models.Account{}, &models.Transaction{}); err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	database.RedisClient = nil

	database.DB.Create(&models.Account{ID: 1, Email: "admin@example.com", Password: "hashed", Role: models.RoleAdmin, Balance: decimal.Zero, Version: 1})
	database.DB.Create(&models.Account{ID: 2, Email: "driver@example.com", Password: "hashed", Role: models.RoleUser, Balance: decimal.NewFromFloat(12.5), Version: 1})
	database.DB.Create(&models.Account{ID: 3, Email: "other@example.com", Password: "hashed", Role: models.RoleUser, Balance: decimal.Zero, Version: 1})
}

func TestListUsers(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin/users", user.ListUsers)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedEmails []string
	}{
		{"Default Page", "", http.StatusOK, []string{"admin@example.com", "driver@example.com", "other@example.com"}},
		{"Second Page", "?page=2&limit=2", http.StatusOK, []string{"other@example.com"}},
		{"Past The End", "?page=5&limit=2", http.StatusOK, []string{}},
		{"Invalid Page", "?page=0", http.StatusBadRequest, nil},
		{"Invalid Limit", "?limit=abc", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/admin/users"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedEmails == nil {
				return
			}

			var resp struct {
				Data user.UserListResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, int64(3), resp.Data.Total)

			emails := []string{}
			for _, u := range resp.Data.Users {
				emails = append(emails, u.Email)
			}
			assert.Equal(t, tt.expectedEmails, emails)
			assert.NotContains(t, w.Body.String(), "hashed")
		})
	}
}

func TestUpdateUserRole(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	self := &models.Account{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextAccount, self)
		c.Next()
	})
	r.PATCH("/admin/users/:id/role", user.UpdateUserRole)

	tests := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
		expectedRole   string
	}{
		{"Promote", "/admin/users/2/role", `{"role":"admin"}`, http.StatusOK, models.RoleAdmin},
		{"Demote", "/admin/users/2/role", `{"role":"user"}`, http.StatusOK, models.RoleUser},
		{"Same Role", "/admin/users/3/role", `{"role":"user"}`, http.StatusOK, models.RoleUser},
		{"Unknown Role", "/admin/users/2/role", `{"role":"owner"}`, http.StatusBadRequest, ""},
		{"Unknown Account", "/admin/users/99/role", `{"role":"admin"}`, http.StatusNotFound, ""},
		{"Demote Self", "/admin/users/1/role", `{"role":"user"}`, http.StatusConflict, ""},
		{"Bad ID", "/admin/users/x/role", `{"role":"user"}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPatch, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Logf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedRole == "" {
				return
			}

			var resp struct {
				Data user.UserListItem `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedRole, resp.Data.Role)
		})
	}

	var admin models.Account
	require.NoError(t, database.DB.First(&admin, 1).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}
