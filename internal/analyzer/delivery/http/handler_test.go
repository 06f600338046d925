package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"climate-narrative-analyzer/internal/analyzer/dto"
	"climate-narrative-analyzer/internal/analyzer/service"
	"climate-narrative-analyzer/internal/entity"
	"climate-narrative-analyzer/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

type fakePipelineService struct {
	running bool
	ran     chan struct{}
}

func (f *fakePipelineService) Run(ctx context.Context) (*dto.PipelineRunResult, error) {
	if f.ran != nil {
		close(f.ran)
	}
	return &dto.PipelineRunResult{}, nil
}

func (f *fakePipelineService) Running() bool {
	return f.running
}

type fakeArticleService struct {
	articles []entity.ArticleAnalysis
	manual   *dto.ManualAnalysisResponse
	err      error
}

func (f *fakeArticleService) ListRecent(ctx context.Context, limit int, bias string) ([]entity.ArticleAnalysis, error) {
	return f.articles, f.err
}

func (f *fakeArticleService) AnalyzeManual(ctx context.Context, req *dto.ManualAnalyzeRequest) (*dto.ManualAnalysisResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.manual, nil
}

type fakeStatisticsService struct {
	lastFilter dto.StatisticsFilter
	stats      *dto.Statistics
	trends     []dto.WeeklyTrend
}

func (f *fakeStatisticsService) Statistics(ctx context.Context, filter dto.StatisticsFilter) (*dto.Statistics, error) {
	f.lastFilter = filter
	return f.stats, nil
}

func (f *fakeStatisticsService) Trends(ctx context.Context, limit int, bias string) ([]dto.WeeklyTrend, error) {
	return f.trends, nil
}

func doRequest(h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

func TestTriggerAnalysis_AcceptsWhenIdle(t *testing.T) {
	svc := &fakePipelineService{ran: make(chan struct{})}
	h := NewPipelineHandler(nil, svc, nil, testLogger())

	rec := doRequest(h.TriggerAnalysis, http.MethodPost, "/api/v1/pipeline/trigger", "")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analysis triggered")

	select {
	case <-svc.ran:
	case <-time.After(time.Second):
		t.Fatal("background run never started")
	}
}

func TestTriggerAnalysis_ConflictWhenBusy(t *testing.T) {
	svc := &fakePipelineService{running: true}
	h := NewPipelineHandler(nil, svc, nil, testLogger())

	rec := doRequest(h.TriggerAnalysis, http.MethodPost, "/api/v1/pipeline/trigger", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrRunInProgress.Error())
}

func TestListArticles_WrapsResultInEnvelope(t *testing.T) {
	svc := &fakeArticleService{articles: []entity.ArticleAnalysis{
		{Title: "Wildfires spread", Source: "Test Wire"},
	}}
	h := NewArticleHandler(svc, testLogger())

	rec := doRequest(h.ListArticles, http.MethodGet, "/api/v1/articles", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]entity.ArticleAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["articles"], 1)
	assert.Equal(t, "Wildfires spread", body["articles"][0].Title)
}

func TestAnalyzeManual_MissingFieldsIsBadRequest(t *testing.T) {
	svc := &fakeArticleService{err: service.ErrMissingFields}
	h := NewArticleHandler(svc, testLogger())

	rec := doRequest(h.AnalyzeManual, http.MethodPost, "/api/v1/articles/analyze", `{"title": "x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrMissingFields.Error())
}

func TestAnalyzeManual_UpstreamFailureIsServerError(t *testing.T) {
	svc := &fakeArticleService{err: errors.New("model unreachable")}
	h := NewArticleHandler(svc, testLogger())

	rec := doRequest(h.AnalyzeManual, http.MethodPost, "/api/v1/articles/analyze", `{"title": "x", "excerpt": "y"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analysis failed")
}

func TestGetStatistics_ParsesFilterParams(t *testing.T) {
	svc := &fakeStatisticsService{stats: &dto.Statistics{}}
	h := NewStatisticsHandler(svc, testLogger())

	rec := doRequest(h.GetStatistics, http.MethodGet, "/api/v1/statistics?year=2025&weeks=26,27&bias=Left", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2025, svc.lastFilter.Year)
	assert.Equal(t, []int{26, 27}, svc.lastFilter.Weeks)
	assert.Equal(t, "Left", svc.lastFilter.Bias)
}

func TestGetStatistics_RejectsBadParams(t *testing.T) {
	svc := &fakeStatisticsService{stats: &dto.Statistics{}}
	h := NewStatisticsHandler(svc, testLogger())

	rec := doRequest(h.GetStatistics, http.MethodGet, "/api/v1/statistics?year=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h.GetStatistics, http.MethodGet, "/api/v1/statistics?weeks=26,x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTrends_WrapsResultInEnvelope(t *testing.T) {
	svc := &fakeStatisticsService{trends: []dto.WeeklyTrend{{Week: "2025-W27", Count: 2}}}
	h := NewStatisticsHandler(svc, testLogger())

	rec := doRequest(h.GetTrends, http.MethodGet, "/api/v1/trends?weeks=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]dto.WeeklyTrend
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["trends"], 1)
	assert.Equal(t, "2025-W27", body["trends"][0].Week)
}
