package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/controller"
	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/internal/app/service"
	"github.com/edudesk/edudesk-backend/internal/db"
	"github.com/edudesk/edudesk-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingMailer captures reset tokens instead of sending mail
type recordingMailer struct {
	tokens []string
}

func (m *recordingMailer) SendPasswordResetEmail(toEmail, resetToken string) error {
	m.tokens = append(m.tokens, resetToken)
	return nil
}

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
	Mailer *recordingMailer
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	resetRepo := repository.NewPasswordResetRepository(testDB)
	goalRepo := repository.NewGoalRepository(testDB)
	moodRepo := repository.NewMoodRepository(testDB)
	calendarRepo := repository.NewCalendarRepository(testDB)

	mailer := &recordingMailer{}

	authService := service.NewAuthService(
		userRepo,
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
	passwordResetService := service.NewPasswordResetService(resetRepo, userRepo, mailer)
	goalService := service.NewGoalService(goalRepo)
	moodService := service.NewMoodService(moodRepo)
	calendarService := service.NewCalendarService(calendarRepo)

	authController := controller.NewAuthController(authService, passwordResetService)
	goalController := controller.NewGoalController(goalService)
	moodController := controller.NewMoodController(moodService)
	calendarController := controller.NewCalendarController(calendarService)

	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
		auth.GET("/me", authMiddleware.Authenticate(), authController.GetMe)
	}

	goals := router.Group("/api/v1/goals")
	goals.Use(authMiddleware.Authenticate())
	{
		goals.GET("", goalController.ListGoals)
		goals.GET("/stats", goalController.Stats)
		goals.POST("", goalController.CreateGoal)
		goals.PUT("/:id/progress", goalController.UpdateProgress)
	}

	mood := router.Group("/api/v1/mood")
	mood.Use(authMiddleware.Authenticate())
	{
		mood.POST("", moodController.CreateEntry)
		mood.GET("/analytics", moodController.Analytics)
	}

	calendar := router.Group("/api/v1/calendar")
	calendar.Use(authMiddleware.Authenticate())
	{
		calendar.GET("/events", calendarController.ListEvents)
		calendar.POST("/events", calendarController.CreateEvent)
	}

	return &TestServer{
		Router: router,
		DB:     testDB,
		Mailer: mailer,
	}
}

func (ts *TestServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerUser(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()
	w := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Test Student",
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	tokens := body["tokens"].(map[string]interface{})
	return tokens["access_token"].(string)
}

func TestCompleteUserJourney(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	token := registerUser(t, ts, "student@example.com", "Password123")

	// Duplicate registration is rejected
	w := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Someone Else",
		"email":    "student@example.com",
		"password": "Password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", decodeBody(t, w)["error"])

	// Authenticated profile lookup
	w = ts.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "student@example.com", user["email"])

	// Create a goal and drive it to completion
	w = ts.request(t, http.MethodPost, "/api/v1/goals", token, map[string]interface{}{
		"title":    "Pass the algorithms final",
		"category": "school",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	goal := decodeBody(t, w)["goal"].(map[string]interface{})
	goalID := uint(goal["id"].(float64))
	assert.Equal(t, "active", goal["status"])

	w = ts.request(t, http.MethodPut, fmt.Sprintf("/api/v1/goals/%d/progress", goalID), token, map[string]interface{}{
		"progress": 100,
	})
	require.Equal(t, http.StatusOK, w.Code)
	goal = decodeBody(t, w)["goal"].(map[string]interface{})
	assert.Equal(t, "completed", goal["status"])

	w = ts.request(t, http.MethodGet, "/api/v1/goals/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeBody(t, w)
	assert.Equal(t, float64(1), stats["total"])
	assert.Equal(t, float64(100), stats["completion_rate"])

	// Log a mood and read analytics
	w = ts.request(t, http.MethodPost, "/api/v1/mood", token, map[string]interface{}{
		"mood":       "happy",
		"mood_level": 8,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.request(t, http.MethodGet, "/api/v1/mood/analytics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	analytics := decodeBody(t, w)
	assert.Equal(t, float64(1), analytics["entry_count"])

	// Calendar events round trip
	start := time.Now().Add(time.Hour)
	w = ts.request(t, http.MethodPost, "/api/v1/calendar/events", token, map[string]interface{}{
		"title":      "Study group",
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(2 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.request(t, http.MethodGet, "/api/v1/calendar/events", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	// Requests without a token are rejected
	w = ts.request(t, http.MethodGet, "/api/v1/goals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPasswordResetJourney(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	registerUser(t, ts, "student@example.com", "OldPassword1")

	// Identical response for registered and unregistered addresses
	w := ts.request(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{
		"email": "student@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	knownBody := w.Body.String()

	w = ts.request(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{
		"email": "nobody@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, knownBody, w.Body.String())

	// Only the registered address produced a token
	var reset model.PasswordReset
	require.NoError(t, ts.DB.Order("id DESC").First(&reset).Error)
	assert.Equal(t, "student@example.com", reset.Email)
	var count int64
	require.NoError(t, ts.DB.Model(&model.PasswordReset{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Token lifetime is one hour from issuance
	assert.WithinDuration(t, reset.CreatedAt.Add(time.Hour), reset.ExpiresAt, time.Second)

	// Policy is checked before the token: a bogus token with a weak
	// password reports the password rule, not the token
	w = ts.request(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{
		"token":    "not-a-real-token",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at least 8 characters long", decodeBody(t, w)["error"])

	// A bogus token with a valid password is rejected opaquely
	w = ts.request(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{
		"token":    "not-a-real-token",
		"password": "NewPassword1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired token", decodeBody(t, w)["error"])

	// The real token succeeds
	w = ts.request(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{
		"token":    reset.Token,
		"password": "NewPassword1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Password reset successful", decodeBody(t, w)["message"])

	// Old password no longer works, new one does
	w = ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "student@example.com",
		"password": "OldPassword1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "student@example.com",
		"password": "NewPassword1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// The token is single use
	w = ts.request(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{
		"token":    reset.Token,
		"password": "AnotherPassword1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired token", decodeBody(t, w)["error"])
}

func TestPasswordResetExpiredToken(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	registerUser(t, ts, "student@example.com", "OldPassword1")

	w := ts.request(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{
		"email": "student@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var reset model.PasswordReset
	require.NoError(t, ts.DB.Order("id DESC").First(&reset).Error)

	// Backdate the expiry past the cutoff
	require.NoError(t, ts.DB.Model(&reset).Update("expires_at", time.Now().Add(-time.Minute)).Error)

	w = ts.request(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{
		"token":    reset.Token,
		"password": "NewPassword1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired token", decodeBody(t, w)["error"])

	// The credential is untouched
	w = ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "student@example.com",
		"password": "OldPassword1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestForgotPasswordMalformedEmail(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	w := ts.request(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResourceOwnershipIsolation(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	aliceToken := registerUser(t, ts, "alice@example.com", "Password123")
	bobToken := registerUser(t, ts, "bob@example.com", "Password123")

	w := ts.request(t, http.MethodPost, "/api/v1/goals", aliceToken, map[string]interface{}{
		"title": "Alice's goal",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	goal := decodeBody(t, w)["goal"].(map[string]interface{})
	goalID := uint(goal["id"].(float64))

	// Bob cannot see or modify Alice's goal; the response is
	// indistinguishable from a missing row
	w = ts.request(t, http.MethodPut, fmt.Sprintf("/api/v1/goals/%d/progress", goalID), bobToken, map[string]interface{}{
		"progress": 50,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Goal not found", decodeBody(t, w)["error"])

	w = ts.request(t, http.MethodGet, "/api/v1/goals", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])
}
