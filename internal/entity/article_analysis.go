package entity

import (
	"time"

	"climate-narrative-analyzer/pkg/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ArticleAnalysis is one classified news article. Records are append-only:
// the pipeline inserts them once per unique (title, source) pair and nothing
// updates or deletes them afterwards.
type ArticleAnalysis struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null;index:idx_article_analyses_identity" json:"title"`
	Source      string    `gorm:"not null;index:idx_article_analyses_identity" json:"source"`
	PublishedAt time.Time `gorm:"not null;index" json:"published_at"`
	Excerpt     string    `gorm:"type:text" json:"excerpt"`
	Link        string    `json:"link,omitempty"`

	// Per-axis classification documents. Each holds either the axis fields
	// or an {"error": message} marker.
	Characters datatypes.JSON `json:"characters"`
	Action     datatypes.JSON `json:"action"`
	Story      datatypes.JSON `json:"story"`

	AnalyzedAt   time.Time `gorm:"not null" json:"analyzed_at"`
	AnalysisType string    `gorm:"type:varchar(20);not null;default:automated" json:"analysis_type"`

	// ISO week bucket, derived from PublishedAt. Never set by callers.
	Year       int `gorm:"not null;index:idx_article_analyses_bucket" json:"year"`
	WeekNumber int `gorm:"not null;index:idx_article_analyses_bucket" json:"week_number"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the ArticleAnalysis model.
func (ArticleAnalysis) TableName() string {
	return "article_analyses"
}

// SetWeekBucket recomputes the (year, week_number) bucket from PublishedAt.
func (a *ArticleAnalysis) SetWeekBucket() {
	a.Year, a.WeekNumber = utils.WeekBucket(a.PublishedAt)
}

// BeforeSave keeps the week bucket consistent with the publish date on every
// write, so the stored bucket can never go stale.
func (a *ArticleAnalysis) BeforeSave(tx *gorm.DB) error {
	a.SetWeekBucket()
	return nil
}
