package repository

import (
	"context"

	"climate-narrative-analyzer/internal/entity"

	"gorm.io/gorm"
)

// ArticleAnalysisRepository defines the persistence contract for analyzed
// articles. The store is append-only: there is no update or delete path.
type ArticleAnalysisRepository interface {
	Create(ctx context.Context, analysis *entity.ArticleAnalysis) error
	ExistsByTitleAndSource(ctx context.Context, title, source string) (bool, error)
	FindRecent(ctx context.Context, limit int, sources []string) ([]entity.ArticleAnalysis, error)
	FindFiltered(ctx context.Context, year int, weeks []int, sources []string) ([]entity.ArticleAnalysis, error)
	FindAllSortedByBucket(ctx context.Context, sources []string) ([]entity.ArticleAnalysis, error)
}

// NewArticleAnalysisRepository creates a new instance of ArticleAnalysisRepository.
func NewArticleAnalysisRepository(db *gorm.DB) ArticleAnalysisRepository {
	return &articleAnalysisRepository{db: db}
}

type articleAnalysisRepository struct {
	db *gorm.DB
}

// Create inserts a new analysis record.
func (r *articleAnalysisRepository) Create(ctx context.Context, analysis *entity.ArticleAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

// ExistsByTitleAndSource checks for a prior record with the same identity
// pair. The pipeline calls this before inserting.
func (r *articleAnalysisRepository) ExistsByTitleAndSource(ctx context.Context, title, source string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ArticleAnalysis{}).
		Where("title = ? AND source = ?", title, source).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindRecent returns analyses ordered by publish date descending, optionally
// restricted to the given source names.
func (r *articleAnalysisRepository) FindRecent(ctx context.Context, limit int, sources []string) ([]entity.ArticleAnalysis, error) {
	var analyses []entity.ArticleAnalysis
	q := r.db.WithContext(ctx).Order("published_at DESC").Limit(limit)
	if len(sources) > 0 {
		q = q.Where("source IN ?", sources)
	}
	err := q.Find(&analyses).Error
	return analyses, err
}

// FindFiltered returns all analyses matching the statistics filter.
func (r *articleAnalysisRepository) FindFiltered(ctx context.Context, year int, weeks []int, sources []string) ([]entity.ArticleAnalysis, error) {
	var analyses []entity.ArticleAnalysis
	q := r.db.WithContext(ctx)
	if year > 0 {
		q = q.Where("year = ?", year)
	}
	if len(weeks) > 0 {
		q = q.Where("week_number IN ?", weeks)
	}
	if len(sources) > 0 {
		q = q.Where("source IN ?", sources)
	}
	err := q.Find(&analyses).Error
	return analyses, err
}

// FindAllSortedByBucket returns analyses ordered by (year desc, week desc)
// for trend grouping.
func (r *articleAnalysisRepository) FindAllSortedByBucket(ctx context.Context, sources []string) ([]entity.ArticleAnalysis, error) {
	var analyses []entity.ArticleAnalysis
	q := r.db.WithContext(ctx).Order("year DESC, week_number DESC")
	if len(sources) > 0 {
		q = q.Where("source IN ?", sources)
	}
	err := q.Find(&analyses).Error
	return analyses, err
}
