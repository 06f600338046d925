package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"climate-narrative-analyzer/internal/analyzer/config"
	"climate-narrative-analyzer/internal/analyzer/dto"
	"climate-narrative-analyzer/internal/analyzer/repository"
	"climate-narrative-analyzer/internal/entity"
	"climate-narrative-analyzer/pkg/common"
	"climate-narrative-analyzer/pkg/logger"
	"climate-narrative-analyzer/pkg/utils"

	"github.com/patrickmn/go-cache"
)

// StatisticsService computes distribution and trend summaries over stored
// analyses.
type StatisticsService interface {
	Statistics(ctx context.Context, filter dto.StatisticsFilter) (*dto.Statistics, error)
	Trends(ctx context.Context, limit int, bias string) ([]dto.WeeklyTrend, error)
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(cfg *config.Config, log *logger.Logger, analysisRepo repository.ArticleAnalysisRepository) StatisticsService {
	return &statisticsService{
		cfg:          cfg,
		logger:       log,
		analysisRepo: analysisRepo,
		resultCache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

type statisticsService struct {
	cfg          *config.Config
	logger       *logger.Logger
	analysisRepo repository.ArticleAnalysisRepository
	resultCache  *cache.Cache
}

// Statistics aggregates the filtered record set into flat distribution
// counts. Only non-NONE labels are tallied; error markers contribute nothing.
func (s *statisticsService) Statistics(ctx context.Context, filter dto.StatisticsFilter) (*dto.Statistics, error) {
	cacheKey := fmt.Sprintf("stats|%d|%v|%s", filter.Year, filter.Weeks, strings.ToLower(filter.Bias))
	if cached, found := s.resultCache.Get(cacheKey); found {
		return cached.(*dto.Statistics), nil
	}

	sources := biasSources(s.cfg, filter.Bias)
	analyses, err := s.analysisRepo.FindFiltered(ctx, filter.Year, filter.Weeks, sources)
	if err != nil {
		return nil, fmt.Errorf("failed to load analyses for statistics: %w", err)
	}

	stats := &dto.Statistics{
		TotalArticles: len(analyses),
		BySource:      map[string]int{},
		ByWeek:        map[string]int{},
		Characters: dto.CharacterStats{
			Heroes:   map[string]int{},
			Villains: map[string]int{},
			Victims:  map[string]int{},
			Focus:    map[string]int{},
		},
		Actions: map[string]int{},
		Stories: map[string]int{},
	}

	for i := range analyses {
		a := &analyses[i]
		stats.BySource[a.Source]++
		stats.ByWeek[utils.WeekKey(a.Year, a.WeekNumber)]++

		characters, action, story := decodeAxes(a, s.logger)

		tallyCharacterSlot(stats.Characters.Heroes, characters, "hero_class")
		tallyCharacterSlot(stats.Characters.Villains, characters, "villain_class")
		tallyCharacterSlot(stats.Characters.Victims, characters, "victim_class")
		tallyField(stats.Characters.Focus, characters, "focus")
		tallyField(stats.Actions, action, "action")
		tallyField(stats.Stories, story, "story")
	}

	s.resultCache.Set(cacheKey, stats, cache.DefaultExpiration)
	return stats, nil
}

// Trends groups the filtered records into per-bucket summaries, newest
// bucket first, truncated to limit.
func (s *statisticsService) Trends(ctx context.Context, limit int, bias string) ([]dto.WeeklyTrend, error) {
	if limit <= 0 {
		limit = 12
	}

	sources := biasSources(s.cfg, bias)
	analyses, err := s.analysisRepo.FindAllSortedByBucket(ctx, sources)
	if err != nil {
		return nil, fmt.Errorf("failed to load analyses for trends: %w", err)
	}

	trends := make([]dto.WeeklyTrend, 0, limit)
	var current *dto.WeeklyTrend

	for i := range analyses {
		a := &analyses[i]
		key := utils.WeekKey(a.Year, a.WeekNumber)

		if current == nil || current.Week != key {
			if len(trends) == limit {
				break
			}
			trends = append(trends, dto.WeeklyTrend{
				Week:       key,
				Year:       a.Year,
				WeekNumber: a.WeekNumber,
				Heroes:     map[string]int{},
				Villains:   map[string]int{},
				Victims:    map[string]int{},
				Actions:    map[string]int{},
				Stories:    map[string]int{},
			})
			current = &trends[len(trends)-1]
		}
		current.Count++

		characters, action, story := decodeAxes(a, s.logger)
		tallyCharacterSlot(current.Heroes, characters, "hero_class")
		tallyCharacterSlot(current.Villains, characters, "villain_class")
		tallyCharacterSlot(current.Victims, characters, "victim_class")
		tallyField(current.Actions, action, "action")
		tallyField(current.Stories, story, "story")
	}

	return trends, nil
}

// decodeAxes restores the three stored axis documents. A record that fails
// to decode is treated as an error marker and excluded from tallies.
func decodeAxes(a *entity.ArticleAnalysis, log *logger.Logger) (characters, action, story dto.AxisResult) {
	var err error
	if characters, err = dto.AxisResultFromJSON(a.Characters); err != nil {
		log.Warn("Skipping unreadable characters record", logger.ErrorField(err), logger.Field("id", a.ID))
		characters = dto.ErrorAxisResult(err.Error())
	}
	if action, err = dto.AxisResultFromJSON(a.Action); err != nil {
		log.Warn("Skipping unreadable action record", logger.ErrorField(err), logger.Field("id", a.ID))
		action = dto.ErrorAxisResult(err.Error())
	}
	if story, err = dto.AxisResultFromJSON(a.Story); err != nil {
		log.Warn("Skipping unreadable story record", logger.ErrorField(err), logger.Field("id", a.ID))
		story = dto.ErrorAxisResult(err.Error())
	}
	return characters, action, story
}

// tallyCharacterSlot counts a character class, skipping NONE and failures.
func tallyCharacterSlot(counts map[string]int, r dto.AxisResult, slot string) {
	if r.Failed() {
		return
	}
	label := r.Label(slot)
	if label == common.SentinelNone {
		return
	}
	counts[label]++
}

// tallyField counts a plain axis field when present.
func tallyField(counts map[string]int, r dto.AxisResult, field string) {
	if r.Failed() {
		return
	}
	if v := r.Fields[field]; v != "" {
		counts[v]++
	}
}
