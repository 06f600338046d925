package dto

import "time"

// ManualAnalyzeRequest is the payload for the manual analysis endpoint.
type ManualAnalyzeRequest struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Excerpt string `json:"excerpt"`
}

// ManualAnalysisResponse is the transient result of a manual analysis. It is
// returned to the caller and never persisted.
type ManualAnalysisResponse struct {
	Title        string     `json:"title"`
	Source       string     `json:"source"`
	Characters   AxisResult `json:"characters"`
	Action       AxisResult `json:"action"`
	Story        AxisResult `json:"story"`
	AnalyzedAt   time.Time  `json:"analyzed_at"`
	AnalysisType string     `json:"analysis_type"`
}

// PipelineRunResult reports the accounting of one ingestion run.
type PipelineRunResult struct {
	Fetched   int       `json:"fetched"`
	Analyzed  int       `json:"analyzed"`
	Skipped   int       `json:"skipped"`
	Errors    int       `json:"errors"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
}

// StatisticsFilter narrows which analyses feed the aggregation.
type StatisticsFilter struct {
	Year  int
	Weeks []int
	Bias  string
}

// CharacterStats tallies character classes per slot across the filtered set.
type CharacterStats struct {
	Heroes   map[string]int `json:"heroes"`
	Villains map[string]int `json:"villains"`
	Victims  map[string]int `json:"victims"`
	Focus    map[string]int `json:"focus"`
}

// Statistics is the flat distribution summary for the dashboard.
type Statistics struct {
	TotalArticles int            `json:"total_articles"`
	BySource      map[string]int `json:"by_source"`
	ByWeek        map[string]int `json:"by_week"`
	Characters    CharacterStats `json:"characters"`
	Actions       map[string]int `json:"actions"`
	Stories       map[string]int `json:"stories"`
}

// WeeklyTrend is one (year, week) bucket in the trends series.
type WeeklyTrend struct {
	Week       string         `json:"week"`
	Year       int            `json:"year"`
	WeekNumber int            `json:"week_number"`
	Count      int            `json:"count"`
	Heroes     map[string]int `json:"heroes"`
	Villains   map[string]int `json:"villains"`
	Victims    map[string]int `json:"victims"`
	Actions    map[string]int `json:"actions"`
	Stories    map[string]int `json:"stories"`
}

// HealthResponse reports pipeline readiness.
type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	HostedAPIUp string `json:"hosted_api_key"`
}
