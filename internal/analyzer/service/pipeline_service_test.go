package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"climate-narrative-analyzer/internal/analyzer/config"
	"climate-narrative-analyzer/internal/analyzer/dto"
	"climate-narrative-analyzer/internal/analyzer/repository"
	"climate-narrative-analyzer/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memAnalysisRepo is an in-memory ArticleAnalysisRepository. Create applies
// the same week-bucket derivation the persistence hook applies.
type memAnalysisRepo struct {
	mu      sync.Mutex
	records []entity.ArticleAnalysis
}

func (m *memAnalysisRepo) Create(ctx context.Context, analysis *entity.ArticleAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	analysis.SetWeekBucket()
	analysis.ID = uint(len(m.records) + 1)
	m.records = append(m.records, *analysis)
	return nil
}

func (m *memAnalysisRepo) ExistsByTitleAndSource(ctx context.Context, title, source string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.Title == title && r.Source == source {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAnalysisRepo) FindRecent(ctx context.Context, limit int, sources []string) ([]entity.ArticleAnalysis, error) {
	out := m.filtered(0, nil, sources)
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memAnalysisRepo) FindFiltered(ctx context.Context, year int, weeks []int, sources []string) ([]entity.ArticleAnalysis, error) {
	return m.filtered(year, weeks, sources), nil
}

func (m *memAnalysisRepo) FindAllSortedByBucket(ctx context.Context, sources []string) ([]entity.ArticleAnalysis, error) {
	out := m.filtered(0, nil, sources)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].WeekNumber > out[j].WeekNumber
	})
	return out, nil
}

func (m *memAnalysisRepo) filtered(year int, weeks []int, sources []string) []entity.ArticleAnalysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.ArticleAnalysis
	for _, r := range m.records {
		if year > 0 && r.Year != year {
			continue
		}
		if len(weeks) > 0 && !containsInt(weeks, r.WeekNumber) {
			continue
		}
		if len(sources) > 0 && !containsStr(sources, r.Source) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsStr(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

type stubFeedRepo struct {
	articles []dto.RawArticle
}

func (s *stubFeedRepo) FetchAll(ctx context.Context) []dto.RawArticle {
	return s.articles
}

// blockingAIRepository holds every call until released.
type blockingAIRepository struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingAIRepository) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return `{"action": "FUEL_RESOLUTION"}`, nil
}

func pipelineConfig() *config.Config {
	return &config.Config{
		Pipeline: config.Pipeline{
			MaxArticlesPerFeed: 5,
			ArticleDelay:       time.Millisecond,
		},
	}
}

func goodAI() *fakeAIRepository {
	return &fakeAIRepository{responses: map[string]string{
		repository.PromptCharacters: `{"hero_class": "ENV.ORGS_ACTIVISTS", "villain_class": "NONE", "victim_class": "ANIMALS_NATURE_ENVIRONMENT", "focus": "VICTIM"}`,
		repository.PromptAction:     `{"action": "FUEL_CONFLICT"}`,
		repository.PromptStory:      `{"story": "INDIVIDUALISTIC"}`,
	}}
}

func publishedAt(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestRun_AnalyzesDeduplicatesAndCounts(t *testing.T) {
	store := &memAnalysisRepo{}
	feed := &stubFeedRepo{articles: []dto.RawArticle{
		{Title: "Wildfires spread north", Source: "Test Wire", PublishedAt: publishedAt("2025-07-04T10:00:00Z"), Excerpt: "Drought conditions worsen."},
		{Title: "Old climate summit story", Source: "Test Wire", PublishedAt: publishedAt("2025-07-03T08:00:00Z"), Excerpt: "Negotiations stalled."},
	}}

	// The second article is already stored from a prior run.
	seed := &entity.ArticleAnalysis{
		Title:       "Old climate summit story",
		Source:      "Test Wire",
		PublishedAt: *publishedAt("2025-07-03T08:00:00Z"),
	}
	require.NoError(t, store.Create(context.Background(), seed))

	log := testLogger()
	classifier := NewClassifierService(goodAI(), log)
	svc := NewPipelineService(pipelineConfig(), log, feed, store, classifier, nil)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Analyzed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Errors)
	assert.NotEmpty(t, result.Duration)

	stored, err := store.FindRecent(context.Background(), 10, nil)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	newest := stored[0]
	assert.Equal(t, "Wildfires spread north", newest.Title)
	assert.Equal(t, "automated", newest.AnalysisType)
	assert.Equal(t, 2025, newest.Year)
	assert.Equal(t, 27, newest.WeekNumber)
	assert.JSONEq(t, `{"action": "FUEL_CONFLICT"}`, string(newest.Action))
}

func TestRun_SecondRunSkipsEverything(t *testing.T) {
	store := &memAnalysisRepo{}
	feed := &stubFeedRepo{articles: []dto.RawArticle{
		{Title: "Glacier retreat accelerates", Source: "Test Wire", PublishedAt: publishedAt("2025-02-10T09:00:00Z"), Excerpt: "New measurements."},
	}}

	log := testLogger()
	classifier := NewClassifierService(goodAI(), log)
	svc := NewPipelineService(pipelineConfig(), log, feed, store, classifier, nil)

	first, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Analyzed)

	second, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Analyzed)
	assert.Equal(t, 1, second.Skipped)

	stored, err := store.FindRecent(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestRun_PerAxisFailureStillPersists(t *testing.T) {
	ai := goodAI()
	ai.responses[repository.PromptStory] = "no json here"

	store := &memAnalysisRepo{}
	feed := &stubFeedRepo{articles: []dto.RawArticle{
		{Title: "Methane leak detected", Source: "Test Wire", PublishedAt: publishedAt("2025-03-01T12:00:00Z"), Excerpt: "Satellite data shows a plume."},
	}}

	log := testLogger()
	classifier := NewClassifierService(ai, log)
	svc := NewPipelineService(pipelineConfig(), log, feed, store, classifier, nil)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Analyzed)
	assert.Equal(t, 0, result.Errors)

	stored, err := store.FindRecent(context.Background(), 10, nil)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	story, err := dto.AxisResultFromJSON(stored[0].Story)
	require.NoError(t, err)
	assert.True(t, story.Failed())

	action, err := dto.AxisResultFromJSON(stored[0].Action)
	require.NoError(t, err)
	assert.False(t, action.Failed())
}

func TestRun_MissingPublishDateFallsBackToNow(t *testing.T) {
	store := &memAnalysisRepo{}
	feed := &stubFeedRepo{articles: []dto.RawArticle{
		{Title: "Coal plant closure announced", Source: "Test Wire", Excerpt: "Operator cites costs."},
	}}

	log := testLogger()
	classifier := NewClassifierService(goodAI(), log)
	svc := NewPipelineService(pipelineConfig(), log, feed, store, classifier, nil)

	before := time.Now()
	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	stored, err := store.FindRecent(context.Background(), 10, nil)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].PublishedAt.Before(before))

	wantYear, wantWeek := stored[0].PublishedAt.ISOWeek()
	assert.Equal(t, wantYear, stored[0].Year)
	assert.Equal(t, wantWeek, stored[0].WeekNumber)
}

func TestRun_RejectsConcurrentRun(t *testing.T) {
	ai := &blockingAIRepository{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	store := &memAnalysisRepo{}
	feed := &stubFeedRepo{articles: []dto.RawArticle{
		{Title: "Arctic ice report", Source: "Test Wire", PublishedAt: publishedAt("2025-05-05T00:00:00Z"), Excerpt: "Extent at a new low."},
	}}

	log := testLogger()
	classifier := NewClassifierService(ai, log)
	svc := NewPipelineService(pipelineConfig(), log, feed, store, classifier, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := svc.Run(context.Background())
		assert.NoError(t, err)
	}()

	<-ai.started
	assert.True(t, svc.Running())

	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(ai.release)
	<-done
	assert.False(t, svc.Running())
}
