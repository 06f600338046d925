package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"climate-narrative-analyzer/internal/analyzer/dto"
	"climate-narrative-analyzer/internal/analyzer/repository"
	"climate-narrative-analyzer/pkg/common"
	"climate-narrative-analyzer/pkg/jsonextract"
	"climate-narrative-analyzer/pkg/logger"
)

// ClassifierService runs the three narrative classification axes for one
// article.
type ClassifierService interface {
	ClassifyArticle(ctx context.Context, articleText string) dto.ArticleClassification
}

// NewClassifierService creates a new ClassifierService.
func NewClassifierService(aiRepo repository.AIRepository, log *logger.Logger) ClassifierService {
	return &classifierService{
		aiRepo: aiRepo,
		logger: log,
	}
}

type classifierService struct {
	aiRepo repository.AIRepository
	logger *logger.Logger
}

// ClassifyArticle issues the three axis prompts concurrently and waits for
// all of them. A failed axis yields an error marker; it never aborts the
// other two.
func (s *classifierService) ClassifyArticle(ctx context.Context, articleText string) dto.ArticleClassification {
	userText := fmt.Sprintf("Article:\n%s", articleText)

	var (
		wg         sync.WaitGroup
		characters dto.AxisResult
		action     dto.AxisResult
		story      dto.AxisResult
	)

	axes := []struct {
		name   string
		prompt string
		out    *dto.AxisResult
	}{
		{common.AxisCharacters, repository.PromptCharacters, &characters},
		{common.AxisAction, repository.PromptAction, &action},
		{common.AxisStory, repository.PromptStory, &story},
	}

	wg.Add(len(axes))
	for _, axis := range axes {
		go func(name, prompt string, out *dto.AxisResult) {
			defer wg.Done()
			*out = s.classifyAxis(ctx, name, prompt, userText)
		}(axis.name, axis.prompt, axis.out)
	}
	wg.Wait()

	result := dto.ArticleClassification{
		Characters: characters,
		Action:     action,
		Story:      story,
	}
	applyCharacterDefaults(&result.Characters)
	return result
}

// classifyAxis runs one model call and parses its response, converting any
// failure into an error marker.
func (s *classifierService) classifyAxis(ctx context.Context, axis, prompt, userText string) dto.AxisResult {
	raw, err := s.aiRepo.Complete(ctx, prompt, userText)
	if err != nil {
		s.logger.Error("Classification request failed",
			logger.ErrorField(err),
			logger.StringField("axis", axis),
		)
		return dto.ErrorAxisResult(err.Error())
	}

	obj, err := jsonextract.Extract(raw)
	if err != nil {
		s.logger.Error("Failed to extract JSON from model response",
			logger.ErrorField(err),
			logger.StringField("axis", axis),
		)
		return dto.ErrorAxisResult(err.Error())
	}

	fields, err := flattenObject(obj)
	if err != nil {
		s.logger.Error("Model response is not a flat record",
			logger.ErrorField(err),
			logger.StringField("axis", axis),
		)
		return dto.ErrorAxisResult(err.Error())
	}

	return dto.ValidAxisResult(fields)
}

// flattenObject converts a parsed JSON object into a flat string-keyed
// record. Non-string scalar values are kept as their printed form.
func flattenObject(obj json.RawMessage) (map[string]string, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(obj, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode extracted object: %w", err)
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			fields[k] = val
		case nil:
			fields[k] = ""
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("field %q is not a scalar value", k)
		default:
			fields[k] = fmt.Sprint(val)
		}
	}
	return fields, nil
}

// applyCharacterDefaults fills the character slots with the NONE sentinel
// when the model omitted them.
func applyCharacterDefaults(r *dto.AxisResult) {
	if r.Failed() {
		return
	}
	if r.Fields == nil {
		r.Fields = make(map[string]string, 3)
	}
	for _, slot := range []string{"hero_class", "villain_class", "victim_class"} {
		if r.Fields[slot] == "" {
			r.Fields[slot] = common.SentinelNone
		}
	}
}
