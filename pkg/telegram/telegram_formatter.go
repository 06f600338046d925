package telegram

import (
	"fmt"
	"strings"

	"climate-narrative-analyzer/internal/analyzer/dto"
)

// FormatRunSummary renders a pipeline run result as a Markdown message.
func FormatRunSummary(result *dto.PipelineRunResult) string {
	var b strings.Builder
	b.WriteString("*Climate narrative analysis run complete*\n\n")
	b.WriteString(fmt.Sprintf("Fetched: %d\n", result.Fetched))
	b.WriteString(fmt.Sprintf("Analyzed: %d\n", result.Analyzed))
	b.WriteString(fmt.Sprintf("Skipped (duplicate): %d\n", result.Skipped))
	b.WriteString(fmt.Sprintf("Errors: %d\n", result.Errors))
	b.WriteString(fmt.Sprintf("Duration: %s\n", result.Duration))
	return b.String()
}
