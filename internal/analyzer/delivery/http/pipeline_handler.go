package http

import (
	"context"
	"net/http"

	"climate-narrative-analyzer/internal/analyzer/config"
	"climate-narrative-analyzer/internal/analyzer/dto"
	"climate-narrative-analyzer/internal/analyzer/service"
	"climate-narrative-analyzer/pkg/logger"
	"climate-narrative-analyzer/pkg/postgres"
	"climate-narrative-analyzer/pkg/utils"

	"github.com/labstack/echo/v4"
)

// PipelineHandler handles the manual trigger and health endpoints.
type PipelineHandler struct {
	cfg             *config.Config
	pipelineService service.PipelineService
	db              *postgres.DB
	logger          *logger.Logger
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(cfg *config.Config, pipelineService service.PipelineService, db *postgres.DB, logger *logger.Logger) *PipelineHandler {
	return &PipelineHandler{
		cfg:             cfg,
		pipelineService: pipelineService,
		db:              db,
		logger:          logger,
	}
}

// RegisterRoutes registers the pipeline routes to the Echo group.
func (h *PipelineHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/pipeline/trigger", h.TriggerAnalysis)
	g.GET("/health", h.Health)
}

// TriggerAnalysis godoc
// @Summary Trigger an analysis run
// @Description Acknowledges immediately and runs the full ingestion pipeline in the background
// @Tags pipeline
// @Produce json
// @Success 202 {object} map[string]string
// @Failure 409 {object} dto.ErrorResponse
// @Router /pipeline/trigger [post]
func (h *PipelineHandler) TriggerAnalysis(c echo.Context) error {
	if h.pipelineService.Running() {
		return c.JSON(http.StatusConflict, echo.Map{"error": service.ErrRunInProgress.Error()})
	}

	utils.GoSafe(func() {
		// The run outlives the HTTP request.
		if _, err := h.pipelineService.Run(context.Background()); err != nil {
			if err == service.ErrRunInProgress {
				h.logger.Warn("Manual trigger rejected, run already in progress")
				return
			}
			h.logger.Error("Triggered analysis run failed", logger.ErrorField(err))
		}
	})

	return c.JSON(http.StatusAccepted, echo.Map{"message": "Analysis triggered"})
}

// Health godoc
// @Summary Pipeline readiness
// @Description Reports storage connectivity, the configured model and hosted API credential presence
// @Tags pipeline
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *PipelineHandler) Health(c echo.Context) error {
	dbStatus := "connected"
	if err := h.db.Ping(); err != nil {
		dbStatus = "disconnected"
	}

	model := h.cfg.Anthropic.Model
	switch h.cfg.AI.Provider {
	case "gemini":
		model = h.cfg.Gemini.Model
	case "ollama":
		model = h.cfg.Ollama.Model
	}

	hostedKey := "missing"
	if h.cfg.Anthropic.APIKey != "" || h.cfg.Gemini.APIKey != "" {
		hostedKey = "configured"
	}

	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:      "ok",
		Database:    dbStatus,
		Provider:    h.cfg.AI.Provider,
		Model:       model,
		HostedAPIUp: hostedKey,
	})
}
