package repository

import "context"

// AIRepository is the uniform contract for a model provider. Implementations
// send a fixed system instruction plus the article text and return the raw
// response text for the caller to parse.
type AIRepository interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}
