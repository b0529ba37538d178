package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// The fixed label set. Classify never returns anything else.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Generator is the external model boundary used for classification.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Classifier struct {
	llm    Generator
	logger *slog.Logger
}

func New(llm Generator, logger *slog.Logger) *Classifier {
	return &Classifier{llm: llm, logger: logger}
}

// Classify labels a single user utterance. Classification must never block
// or fail the conversation: any call failure or unrecognized reply falls
// back to neutral and is only logged. No retries.
func (c *Classifier) Classify(ctx context.Context, utterance string) string {
	prompt := fmt.Sprintf(classifyPrompt, utterance)

	raw, err := c.llm.GenerateContent(ctx, prompt)
	if err != nil {
		c.logger.Warn("sentiment classification failed, defaulting to neutral", "error", err)
		return Neutral
	}

	label := strings.ToLower(strings.TrimSpace(raw))
	switch label {
	case Positive, Negative, Neutral:
		return label
	}

	c.logger.Warn("sentiment reply not a known label, defaulting to neutral", "reply", raw)
	return Neutral
}

// Known reports whether s is one of the three fixed labels.
func Known(s string) bool {
	switch s {
	case Positive, Negative, Neutral:
		return true
	}
	return false
}
