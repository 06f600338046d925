package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"climate-narrative-analyzer/internal/analyzer/config"
	"climate-narrative-analyzer/internal/analyzer/dto"
	"climate-narrative-analyzer/internal/analyzer/repository"
	"climate-narrative-analyzer/internal/entity"
	"climate-narrative-analyzer/pkg/common"
	"climate-narrative-analyzer/pkg/logger"
)

// ErrMissingFields is returned when a manual analysis request lacks a title
// or excerpt.
var ErrMissingFields = errors.New("title and excerpt are required")

// ArticleService serves stored analyses and the manual analysis path.
type ArticleService interface {
	ListRecent(ctx context.Context, limit int, bias string) ([]entity.ArticleAnalysis, error)
	AnalyzeManual(ctx context.Context, req *dto.ManualAnalyzeRequest) (*dto.ManualAnalysisResponse, error)
}

// NewArticleService creates a new ArticleService.
func NewArticleService(
	cfg *config.Config,
	log *logger.Logger,
	analysisRepo repository.ArticleAnalysisRepository,
	classifier ClassifierService,
) ArticleService {
	return &articleService{
		cfg:          cfg,
		logger:       log,
		analysisRepo: analysisRepo,
		classifier:   classifier,
	}
}

type articleService struct {
	cfg          *config.Config
	logger       *logger.Logger
	analysisRepo repository.ArticleAnalysisRepository
	classifier   ClassifierService
}

// ListRecent returns stored analyses ordered by publish date descending,
// optionally filtered to sources carrying the given bias label.
func (s *articleService) ListRecent(ctx context.Context, limit int, bias string) ([]entity.ArticleAnalysis, error) {
	if limit <= 0 {
		limit = 10
	}
	sources := biasSources(s.cfg, bias)
	return s.analysisRepo.FindRecent(ctx, limit, sources)
}

// AnalyzeManual classifies a pasted article synchronously. The result is
// returned to the caller and never persisted.
func (s *articleService) AnalyzeManual(ctx context.Context, req *dto.ManualAnalyzeRequest) (*dto.ManualAnalysisResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Excerpt) == "" {
		return nil, ErrMissingFields
	}

	source := req.Source
	if source == "" {
		source = "User Provided"
	}

	s.logger.Info("Analyzing manual article", logger.StringField("title", req.Title))

	articleText := repository.BuildArticleText(req.Title, source, "", req.Excerpt)
	classification := s.classifier.ClassifyArticle(ctx, articleText)

	return &dto.ManualAnalysisResponse{
		Title:        req.Title,
		Source:       source,
		Characters:   classification.Characters,
		Action:       classification.Action,
		Story:        classification.Story,
		AnalyzedAt:   time.Now(),
		AnalysisType: common.AnalysisTypeManual,
	}, nil
}

// biasSources maps a bias label to the configured source names sharing it.
// Returns nil (no filter) for empty or "all".
func biasSources(cfg *config.Config, bias string) []string {
	if bias == "" || strings.EqualFold(bias, common.BiasAll) {
		return nil
	}
	sources := cfg.SourcesForBias(bias)
	if len(sources) == 0 {
		// Unknown bias label matches no sources at all.
		return []string{""}
	}
	return sources
}
