package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parking-backend/internal/database"
	"parking-backend/internal/models"
	"parking-backend/internal/services"
	"parking-backend/internal/sweeper"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestDB(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

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
}

func call(t *testing.T, r *gin.Engine, method, path, body, token string) (int, envelope) {
	t.Helper()

	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	code, env := call(t, r, http.MethodPost, "/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, code, env.Message)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func TestPingAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(Options{})

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	req, _ = http.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "parking_http_requests_total")
}

func TestParkingFlow(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)

	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	services.Now = func() time.Time { return now }
	t.Cleanup(func() { services.Now = func() time.Time { return time.Now().UTC() } })

	sweep := sweeper.New(services.CleanupExpiredReservations, time.Minute,
		sweeper.ClockFunc(func() time.Time { return services.Now() }), nil)
	r := NewRouter(Options{Sweeper: sweep})

	code, _ := call(t, r, http.MethodGet, "/admin/spots", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	created, err := services.EnsureAdmin(context.Background(), "admin@example.com", "adminpass")
	require.NoError(t, err)
	require.True(t, created)
	adminToken := login(t, r, "admin@example.com", "adminpass")

	code, env := call(t, r, http.MethodPost, "/register", `{"email":"driver@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, code, env.Message)
	userToken := login(t, r, "driver@example.com", "secret123")

	code, _ = call(t, r, http.MethodGet, "/admin/statistics", "", userToken)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = call(t, r, http.MethodPost, "/admin/spots", `{"location":"Level 1","pricePerHour":5}`, adminToken)
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, env = call(t, r, http.MethodPost, "/reserve", `{"email":"driver@example.com","spotId":1,"hours":1}`, "")
	assert.Equal(t, http.StatusPaymentRequired, code)
	assert.False(t, env.Success)

	code, _ = call(t, r, http.MethodPost, "/add-balance", `{"email":"driver@example.com","amount":8}`, "")
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, r, http.MethodPost, "/reserve", `{"email":"driver@example.com","spotId":1,"hours":1}`, "")
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, env = call(t, r, http.MethodGet, "/spots/free", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"spots":[]}`, string(env.Data))

	// Past the end time the next request sweeps the spot back to free.
	now = now.Add(2 * time.Hour)
	code, env = call(t, r, http.MethodGet, "/spots/free", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"location":"Level 1"`)

	code, env = call(t, r, http.MethodGet, "/me", "", userToken)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"balance":3`)

	code, env = call(t, r, http.MethodGet, "/admin/statistics", "", adminToken)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"completedReservations":1`)
	assert.Contains(t, string(env.Data), `"totalUsers":2`)

	code, env = call(t, r, http.MethodGet, "/admin/users", "", adminToken)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Contains(t, string(env.Data), `"email":"admin@example.com"`)
	assert.Contains(t, string(env.Data), `"email":"driver@example.com"`)
	assert.Contains(t, string(env.Data), `"total":2`)

	code, _ = call(t, r, http.MethodGet, "/admin/users", "", userToken)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, r, http.MethodPost, "/logout", "", userToken)
	assert.Equal(t, http.StatusOK, code)
}
