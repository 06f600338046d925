package dto

import "time"

// RawArticle is one feed item after parsing, before classification. It only
// lives for the duration of a pipeline run.
type RawArticle struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Excerpt     string     `json:"excerpt"`
	Link        string     `json:"link,omitempty"`
	Bias        string     `json:"bias"`
}
