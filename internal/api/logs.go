package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snapcal/backend/internal/middleware"
	"github.com/snapcal/backend/internal/service"
	"github.com/snapcal/backend/internal/types"
)

// LogHandler exposes daily log reads and patches of the
// non-derived fields.
type LogHandler struct {
	logService  service.ILogService
	authService service.IAuthService
}

func NewLogHandler(logService service.ILogService, authService service.IAuthService) *LogHandler {
	return &LogHandler{
		logService:  logService,
		authService: authService,
	}
}

func (h *LogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/logs")
	logs.Use(middleware.AuthMiddleware(h.authService))
	{
		logs.GET("", h.ListLogs)
		logs.GET("/:date", h.GetLog)
		logs.PATCH("/:date", h.UpdateLog)
	}
}

// GetLog returns the caller's log for one date with meals and entries.
func (h *LogHandler) GetLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date, err := service.ParseLogDate(c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	logRow, err := h.logService.GetDailyLog(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, logRow)
}

// ListLogs returns the caller's logs over an inclusive date range.
func (h *LogHandler) ListLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start, err := service.ParseLogDate(c.Query("start"))
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := service.ParseLogDate(c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}

	logs, err := h.logService.GetLogsByDateRange(c.Request.Context(), userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// UpdateLog patches the authoritative fields of a day's log, creating
// the log on first touch. Consumed totals are not patchable; only the
// aggregation pipeline writes them.
func (h *LogHandler) UpdateLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date, err := service.ParseLogDate(c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req types.UpdateDailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	logRow, err := h.logService.UpdateDailyLog(c.Request.Context(), userID, date, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, logRow)
}
