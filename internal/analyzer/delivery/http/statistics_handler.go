package http

import (
	"net/http"
	"strconv"
	"strings"

	"climate-narrative-analyzer/internal/analyzer/dto"
	"climate-narrative-analyzer/internal/analyzer/service"
	"climate-narrative-analyzer/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StatisticsHandler handles HTTP requests for aggregations.
type StatisticsHandler struct {
	statisticsService service.StatisticsService
	logger            *logger.Logger
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(statisticsService service.StatisticsService, logger *logger.Logger) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, logger: logger}
}

// RegisterRoutes registers the statistics routes to the Echo group.
func (h *StatisticsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/statistics", h.GetStatistics)
	g.GET("/trends", h.GetTrends)
}

// GetStatistics godoc
// @Summary Get classification distributions
// @Description Counts by source, week bucket and classification label over the filtered set
// @Tags statistics
// @Produce json
// @Param year query int false "ISO week-based year"
// @Param weeks query string false "Comma-separated ISO week numbers"
// @Param bias query string false "Source bias filter"
// @Success 200 {object} dto.Statistics
// @Failure 500 {object} dto.ErrorResponse
// @Router /statistics [get]
func (h *StatisticsHandler) GetStatistics(c echo.Context) error {
	filter := dto.StatisticsFilter{Bias: c.QueryParam("bias")}
	if yearStr := c.QueryParam("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid year"})
		}
		filter.Year = year
	}
	if weeksStr := c.QueryParam("weeks"); weeksStr != "" {
		for _, w := range strings.Split(weeksStr, ",") {
			week, err := strconv.Atoi(strings.TrimSpace(w))
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid weeks"})
			}
			filter.Weeks = append(filter.Weeks, week)
		}
	}

	stats, err := h.statisticsService.Statistics(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to calculate statistics", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to calculate statistics"})
	}

	return c.JSON(http.StatusOK, stats)
}

// GetTrends godoc
// @Summary Get weekly trends
// @Description Per-bucket summaries ordered newest week first
// @Tags statistics
// @Produce json
// @Param weeks query int false "Number of week buckets" default(12)
// @Param bias query string false "Source bias filter"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} dto.ErrorResponse
// @Router /trends [get]
func (h *StatisticsHandler) GetTrends(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("weeks"))
	bias := c.QueryParam("bias")

	trends, err := h.statisticsService.Trends(c.Request().Context(), limit, bias)
	if err != nil {
		h.logger.Error("Failed to calculate trends", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to calculate trends"})
	}

	return c.JSON(http.StatusOK, echo.Map{"trends": trends})
}
