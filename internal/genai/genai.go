// Package genai defines the text capabilities consumed by concepts.
//
// Concepts take these as injected interfaces so they stay testable without a
// live external service.
package genai

import "context"

// Generator produces a short text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Classifier labels a text as flagged or not.
type Classifier interface {
	Classify(ctx context.Context, text string) (bool, error)
}
