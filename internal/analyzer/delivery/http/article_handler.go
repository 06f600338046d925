package http

import (
	"errors"
	"net/http"
	"strconv"

	"climate-narrative-analyzer/internal/analyzer/dto"
	"climate-narrative-analyzer/internal/analyzer/service"
	"climate-narrative-analyzer/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ArticleHandler handles HTTP requests for stored and manual analyses.
type ArticleHandler struct {
	articleService service.ArticleService
	logger         *logger.Logger
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService service.ArticleService, logger *logger.Logger) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, logger: logger}
}

// RegisterRoutes registers the article routes to the Echo group.
func (h *ArticleHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListArticles)
	g.POST("/analyze", h.AnalyzeManual)
}

// ListArticles godoc
// @Summary List recent analyzed articles
// @Description Returns stored analyses ordered by publish date descending
// @Tags articles
// @Produce json
// @Param limit query int false "Maximum number of articles" default(10)
// @Param bias query string false "Source bias filter (Left/Center/Right, 'all' for no filter)"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} dto.ErrorResponse
// @Router /articles [get]
func (h *ArticleHandler) ListArticles(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	bias := c.QueryParam("bias")

	articles, err := h.articleService.ListRecent(c.Request().Context(), limit, bias)
	if err != nil {
		h.logger.Error("Failed to list articles", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch articles"})
	}

	return c.JSON(http.StatusOK, echo.Map{"articles": articles})
}

// AnalyzeManual godoc
// @Summary Analyze a pasted article
// @Description Runs the three classification axes synchronously; the result is not persisted
// @Tags articles
// @Accept json
// @Produce json
// @Param article body dto.ManualAnalyzeRequest true "Article to analyze"
// @Success 200 {object} dto.ManualAnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /articles/analyze [post]
func (h *ArticleHandler) AnalyzeManual(c echo.Context) error {
	var req dto.ManualAnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	analysis, err := h.articleService.AnalyzeManual(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Manual analysis failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Analysis failed",
			Details: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, analysis)
}
