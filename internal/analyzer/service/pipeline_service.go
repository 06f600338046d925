package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"climate-narrative-analyzer/internal/analyzer/config"
	"climate-narrative-analyzer/internal/analyzer/dto"
	"climate-narrative-analyzer/internal/analyzer/repository"
	"climate-narrative-analyzer/internal/entity"
	"climate-narrative-analyzer/pkg/common"
	"climate-narrative-analyzer/pkg/logger"
	"climate-narrative-analyzer/pkg/telegram"
	"climate-narrative-analyzer/pkg/utils"

	"gorm.io/datatypes"
)

// ErrRunInProgress is returned when a trigger arrives while a pipeline run
// is already active. Triggers are serialized, not queued.
var ErrRunInProgress = errors.New("an analysis run is already in progress")

// PipelineService orchestrates one ingestion run: fetch, filter, dedupe,
// classify, bucket, persist.
type PipelineService interface {
	Run(ctx context.Context) (*dto.PipelineRunResult, error)
	Running() bool
}

// NewPipelineService creates a new PipelineService. The notifier may be nil.
func NewPipelineService(
	cfg *config.Config,
	log *logger.Logger,
	feedRepo repository.NewsFeedRepository,
	analysisRepo repository.ArticleAnalysisRepository,
	classifier ClassifierService,
	notifier telegram.Notifier,
) PipelineService {
	return &pipelineService{
		cfg:          cfg,
		logger:       log,
		feedRepo:     feedRepo,
		analysisRepo: analysisRepo,
		classifier:   classifier,
		notifier:     notifier,
	}
}

type pipelineService struct {
	cfg          *config.Config
	logger       *logger.Logger
	feedRepo     repository.NewsFeedRepository
	analysisRepo repository.ArticleAnalysisRepository
	classifier   ClassifierService
	notifier     telegram.Notifier
	running      atomic.Bool
}

// Run executes the full ingestion pipeline. Articles are processed in feed
// order, one at a time, with a fixed delay between them to respect external
// rate limits. A failure on one article is counted and the run continues.
func (s *pipelineService) Run(ctx context.Context) (*dto.PipelineRunResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer s.running.Store(false)

	startedAt := time.Now()
	s.logger.Info("Starting analysis run")

	articles := s.feedRepo.FetchAll(ctx)
	s.logger.Info("Fetched articles", logger.IntField("count", len(articles)))

	result := &dto.PipelineRunResult{
		Fetched:   len(articles),
		StartedAt: startedAt,
	}

	for i, article := range articles {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}

		status, err := s.processArticle(ctx, article)
		if err != nil {
			s.logger.Error("Failed to process article",
				logger.ErrorField(err),
				logger.StringField("title", article.Title),
			)
			result.Errors++
		} else if status == articleSkipped {
			s.logger.Info("Skipping duplicate article", logger.StringField("title", article.Title))
			result.Skipped++
		} else {
			s.logger.Info("Analyzed article", logger.StringField("title", article.Title))
			result.Analyzed++
		}

		if i < len(articles)-1 {
			utils.SleepContext(ctx, s.cfg.Pipeline.ArticleDelay)
		}
	}

	result.Duration = time.Since(startedAt).Round(time.Millisecond).String()
	s.logger.Info("Analysis run complete",
		logger.IntField("fetched", result.Fetched),
		logger.IntField("analyzed", result.Analyzed),
		logger.IntField("skipped", result.Skipped),
		logger.IntField("errors", result.Errors),
	)

	s.notifyRunSummary(result)

	return result, nil
}

// Running reports whether a run currently holds the lock.
func (s *pipelineService) Running() bool {
	return s.running.Load()
}

type articleStatus int

const (
	articleAnalyzed articleStatus = iota
	articleSkipped
)

// processArticle handles one candidate: dedupe check, three concurrent axis
// classifications, week bucketing and persistence. A per-axis failure is
// embedded as an error marker; the article still counts as analyzed.
func (s *pipelineService) processArticle(ctx context.Context, article dto.RawArticle) (articleStatus, error) {
	exists, err := s.analysisRepo.ExistsByTitleAndSource(ctx, article.Title, article.Source)
	if err != nil {
		return 0, fmt.Errorf("failed to check for existing analysis: %w", err)
	}
	if exists {
		return articleSkipped, nil
	}

	publishedAt := time.Now()
	publishedStr := ""
	if article.PublishedAt != nil {
		publishedAt = *article.PublishedAt
		publishedStr = publishedAt.Format(time.RFC3339)
	}

	articleText := repository.BuildArticleText(article.Title, article.Source, publishedStr, article.Excerpt)
	classification := s.classifier.ClassifyArticle(ctx, articleText)

	analysis := &entity.ArticleAnalysis{
		Title:        article.Title,
		Source:       article.Source,
		PublishedAt:  publishedAt,
		Excerpt:      article.Excerpt,
		Link:         article.Link,
		Characters:   mustMarshalAxis(classification.Characters),
		Action:       mustMarshalAxis(classification.Action),
		Story:        mustMarshalAxis(classification.Story),
		AnalyzedAt:   time.Now(),
		AnalysisType: common.AnalysisTypeAutomated,
	}
	// Year/WeekNumber are derived from PublishedAt by the entity's save hook.

	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		return 0, fmt.Errorf("failed to persist analysis: %w", err)
	}

	return articleAnalyzed, nil
}

// mustMarshalAxis encodes an axis result for storage. A marshal failure is
// stored as an error marker so the record stays readable.
func mustMarshalAxis(r dto.AxisResult) datatypes.JSON {
	b, err := json.Marshal(r)
	if err != nil {
		b = []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	return datatypes.JSON(b)
}

func (s *pipelineService) notifyRunSummary(result *dto.PipelineRunResult) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendMessage(telegram.FormatRunSummary(result)); err != nil {
		s.logger.Warn("Failed to send run summary notification", logger.ErrorField(err))
	}
}
