package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/edudesk/edudesk-backend/internal/app/service"
	apperrors "github.com/edudesk/edudesk-backend/internal/errors"
	"github.com/edudesk/edudesk-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyticsController struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsController(analyticsService service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// Dashboard returns the aggregate dashboard view
// GET /api/v1/analytics/dashboard
func (ctrl *AnalyticsController) Dashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	dashboard, err := ctrl.analyticsService.Dashboard(userID)
	if err != nil {
		log.Error("Failed to build dashboard", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// Productivity returns the day-by-day productivity series
// GET /api/v1/analytics/productivity?days=30
func (ctrl *AnalyticsController) Productivity(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	days := parseIntQuery(c, "days", 30)
	series, err := ctrl.analyticsService.Productivity(userID, days)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "productivity")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":   len(series),
		"series": series,
	})
}

// Export streams an xlsx workbook of the user's study and mood history
// GET /api/v1/analytics/export
func (ctrl *AnalyticsController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	f, err := ctrl.analyticsService.Export(userID)
	if err != nil {
		log.Error("Failed to generate export", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "export")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("edudesk-export-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to stream export", err, map[string]interface{}{
			"user_id": userID,
		})
	}
}
