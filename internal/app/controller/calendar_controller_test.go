package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/internal/app/service"
	"github.com/edudesk/edudesk-backend/internal/db"
	"github.com/edudesk/edudesk-backend/internal/middleware"
	"github.com/edudesk/edudesk-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCalendarControllerTest(t *testing.T) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	calendarService := service.NewCalendarService(repository.NewCalendarRepository(testDB))
	ctrl := NewCalendarController(calendarService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	events := router.Group("/events")
	events.Use(authMiddleware.Authenticate())
	{
		events.GET("", ctrl.ListEvents)
		events.GET("/search", ctrl.SearchEvents)
		events.GET("/:id", ctrl.GetEvent)
		events.POST("", ctrl.CreateEvent)
		events.PUT("/:id", ctrl.UpdateEvent)
		events.DELETE("/:id", ctrl.DeleteEvent)
	}

	tokens, err := util.GenerateTokenPair(1, "test@example.com", "user", "test-secret", time.Hour, time.Hour)
	require.NoError(t, err)

	return router, tokens.AccessToken
}

func calendarRequest(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createEvent(t *testing.T, router *gin.Engine, token, title string, start time.Time) uint {
	t.Helper()
	w := calendarRequest(t, router, "POST", "/events", token, map[string]interface{}{
		"title":      title,
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	event := parseResponse(t, w)["event"].(map[string]interface{})
	return uint(event["id"].(float64))
}

func TestCalendarController_CreateEvent(t *testing.T) {
	router, token := setupCalendarControllerTest(t)

	start := time.Now().Add(time.Hour)
	w := calendarRequest(t, router, "POST", "/events", token, map[string]interface{}{
		"title":      "Study group",
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(2 * time.Hour).Format(time.RFC3339),
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	event := parseResponse(t, w)["event"].(map[string]interface{})
	assert.Equal(t, "Study group", event["title"])
}

func TestCalendarController_CreateEvent_InvalidTimeRange(t *testing.T) {
	router, token := setupCalendarControllerTest(t)

	start := time.Now().Add(time.Hour)
	w := calendarRequest(t, router, "POST", "/events", token, map[string]interface{}{
		"title":      "Backwards event",
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(-time.Hour).Format(time.RFC3339),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarController_CreateEvent_Unauthenticated(t *testing.T) {
	router, _ := setupCalendarControllerTest(t)

	w := calendarRequest(t, router, "POST", "/events", "", map[string]interface{}{
		"title": "No token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCalendarController_ListEvents_DateRange(t *testing.T) {
	router, token := setupCalendarControllerTest(t)

	now := time.Now()
	createEvent(t, router, token, "This week", now.Add(24*time.Hour))
	createEvent(t, router, token, "Next month", now.AddDate(0, 1, 0))

	// Unfiltered listing returns everything
	w := calendarRequest(t, router, "GET", "/events", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), parseResponse(t, w)["count"])

	// Range filter narrows to one
	path := fmt.Sprintf("/events?start=%s&end=%s",
		now.Format("2006-01-02"),
		now.AddDate(0, 0, 7).Format("2006-01-02"))
	w = calendarRequest(t, router, "GET", path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), parseResponse(t, w)["count"])
}

func TestCalendarController_ListEvents_InvalidDate(t *testing.T) {
	router, token := setupCalendarControllerTest(t)

	w := calendarRequest(t, router, "GET", "/events?start=tomorrow", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid start date", parseResponse(t, w)["error"])
}

func TestCalendarController_SearchEvents(t *testing.T) {
	router, token := setupCalendarControllerTest(t)

	createEvent(t, router, token, "Algebra revision", time.Now().Add(time.Hour))
	createEvent(t, router, token, "Gym class", time.Now().Add(2*time.Hour))

	w := calendarRequest(t, router, "GET", "/events/search?q=algebra", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), parseResponse(t, w)["count"])

	// Empty query matches nothing
	w = calendarRequest(t, router, "GET", "/events/search", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), parseResponse(t, w)["count"])
}

func TestCalendarController_UpdateEvent(t *testing.T) {
	router, token := setupCalendarControllerTest(t)

	id := createEvent(t, router, token, "Old title", time.Now().Add(time.Hour))

	w := calendarRequest(t, router, "PUT", fmt.Sprintf("/events/%d", id), token, map[string]interface{}{
		"title": "New title",
	})
	require.Equal(t, http.StatusOK, w.Code)
	event := parseResponse(t, w)["event"].(map[string]interface{})
	assert.Equal(t, "New title", event["title"])
}

func TestCalendarController_GetEvent_NotFound(t *testing.T) {
	router, token := setupCalendarControllerTest(t)

	w := calendarRequest(t, router, "GET", "/events/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Event not found", parseResponse(t, w)["error"])

	w = calendarRequest(t, router, "GET", "/events/not-a-number", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid ID", parseResponse(t, w)["error"])
}

func TestCalendarController_DeleteEvent(t *testing.T) {
	router, token := setupCalendarControllerTest(t)

	id := createEvent(t, router, token, "Doomed event", time.Now().Add(time.Hour))

	w := calendarRequest(t, router, "DELETE", fmt.Sprintf("/events/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = calendarRequest(t, router, "DELETE", fmt.Sprintf("/events/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
