package service

import "context"

// TextGenerator defines the interface for text generation backends.
type TextGenerator interface {
	// GenerateText returns the model's raw text completion for prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
