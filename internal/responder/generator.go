package responder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// GenerationError means the model call for an answer failed. The caller
// must leave the session history unchanged and keep the question available
// for retry.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("answer generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Generator is the external model boundary used for answering.
type ModelClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Generator struct {
	llm    ModelClient
	md     goldmark.Markdown
	logger *slog.Logger
}

func New(llm ModelClient, logger *slog.Logger) *Generator {
	return &Generator{
		llm: llm,
		// goldmark escapes raw HTML by default, which keeps the rendered
		// form display-safe.
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		logger: logger,
	}
}

// Generate calls the model once with the built prompt and returns both the
// display-safe HTML form and the raw text. On failure no turn is created.
func (g *Generator) Generate(ctx context.Context, prompt string) (html string, raw string, err error) {
	raw, err = g.llm.GenerateContent(ctx, prompt)
	if err != nil {
		return "", "", &GenerationError{Err: err}
	}

	html, err = g.Render(raw)
	if err != nil {
		return "", "", &GenerationError{Err: err}
	}

	g.logger.Debug("answer generated", "raw_len", len(raw), "html_len", len(html))
	return html, raw, nil
}

// Render converts model output markdown into safe HTML. Pure transform, no
// session state.
func (g *Generator) Render(raw string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(raw), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
