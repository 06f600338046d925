package repository

import (
	"context"
	"strings"

	"climate-narrative-analyzer/internal/analyzer/config"
	"climate-narrative-analyzer/internal/analyzer/dto"
	"climate-narrative-analyzer/pkg/logger"
	"climate-narrative-analyzer/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// maxExcerptLength bounds excerpts derived from full-content fields.
const maxExcerptLength = 500

// climateKeywords gates articles to climate and environment topics. Matching
// is case-insensitive substring search over title plus excerpt.
var climateKeywords = []string{
	"climate", "environment", "emission", "carbon", "fossil fuel", "renewable",
	"greenhouse", "global warming", "net zero", "biodiversity", "deforestation",
	"pollution", "sustainability", "energy transition", "sea level", "wildfire",
	"drought", "flood", "extreme weather", "paris agreement", "cop", "methane",
	"solar", "wind power", "electric vehicle", "oil", "gas", "coal", "arctic",
	"glacier", "ecosystem", "species", "extinction",
}

// IsClimateRelated reports whether the article's title or excerpt mentions
// any climate keyword.
func IsClimateRelated(title, excerpt string) bool {
	text := strings.ToLower(title + " " + excerpt)
	for _, kw := range climateKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// NewsFeedRepository fetches and parses the configured RSS/Atom feeds.
type NewsFeedRepository interface {
	FetchAll(ctx context.Context) []dto.RawArticle
}

// NewNewsFeedRepository creates a new instance of NewsFeedRepository.
func NewNewsFeedRepository(cfg *config.Config, log *logger.Logger) NewsFeedRepository {
	return &newsFeedRepository{
		cfg:    cfg,
		logger: log,
		parser: gofeed.NewParser(),
	}
}

type newsFeedRepository struct {
	cfg    *config.Config
	logger *logger.Logger
	parser *gofeed.Parser
}

// FetchAll fetches every configured feed in order, filters each to relevant
// items and caps the per-feed count. A failing feed is logged and contributes
// zero articles; it never aborts the remaining feeds.
func (r *newsFeedRepository) FetchAll(ctx context.Context) []dto.RawArticle {
	var articles []dto.RawArticle

	for _, feedCfg := range r.cfg.Feeds {
		feed, err := r.parser.ParseURLWithContext(feedCfg.URL, ctx)
		if err != nil {
			r.logger.Error("Failed to fetch RSS feed",
				logger.ErrorField(err),
				logger.StringField("url", feedCfg.URL),
				logger.StringField("source", feedCfg.Name),
			)
			continue
		}

		count := 0
		for _, item := range feed.Items {
			if count >= r.cfg.Pipeline.MaxArticlesPerFeed {
				break
			}
			excerpt := excerptFromItem(item)
			if !IsClimateRelated(item.Title, excerpt) {
				continue
			}
			articles = append(articles, dto.RawArticle{
				Title:       utils.CleanToValidUTF8(item.Title),
				Source:      feedCfg.Name,
				PublishedAt: item.PublishedParsed,
				Excerpt:     utils.CleanToValidUTF8(excerpt),
				Link:        item.Link,
				Bias:        feedCfg.Bias,
			})
			count++
		}

		r.logger.Info("Fetched feed",
			logger.StringField("source", feedCfg.Name),
			logger.IntField("items", len(feed.Items)),
			logger.IntField("relevant", count),
		)
	}

	return articles
}

// excerptFromItem derives the excerpt: the snippet/description when present,
// otherwise a bounded prefix of the full content, otherwise empty. Empty is
// valid input downstream.
func excerptFromItem(item *gofeed.Item) string {
	if desc := strings.TrimSpace(stripHTML(item.Description)); desc != "" {
		return desc
	}
	if item.Content != "" {
		return utils.TruncateText(strings.TrimSpace(stripHTML(item.Content)), maxExcerptLength)
	}
	return ""
}

// stripHTML reduces feed-provided HTML to plain text.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}
