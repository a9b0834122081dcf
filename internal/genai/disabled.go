package genai

import (
	"context"

	"github.com/pkg/errors"
)

// ErrDisabled is returned by the disabled provider for every call.
var ErrDisabled = errors.New("genai: provider disabled")

// Disabled satisfies both capabilities while refusing every call. Callers
// that can degrade (notification composition) fall back; callers that cannot
// (moderation review) leave their work queued for a later run.
type Disabled struct{}

func (Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	return "", ErrDisabled
}

func (Disabled) Classify(ctx context.Context, text string) (bool, error) {
	return false, ErrDisabled
}
