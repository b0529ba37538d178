package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ingelean/docent/internal/chatlog"
	"github.com/ingelean/docent/internal/conversation"
	"github.com/ingelean/docent/internal/events"
	"github.com/ingelean/docent/internal/knowledge"
	"github.com/ingelean/docent/internal/prompt"
	"github.com/ingelean/docent/internal/responder"
	"github.com/ingelean/docent/internal/sentiment"
)

// ErrEmptyQuestion rejects blank input before any model call.
var ErrEmptyQuestion = errors.New("question must not be empty")

// Notifier is the optional event boundary; nil disables notifications.
type Notifier interface {
	Publish(subject string, data any) error
}

// Processor orchestrates one conversational request: classify the question,
// window the history, build the grounded prompt, generate the answer, and
// append the completed turn. Classification and generation are two ordered
// blocking calls; generation depends on the classification result.
type Processor struct {
	classifier *sentiment.Classifier
	builder    *prompt.Builder
	generator  *responder.Generator
	kb         *knowledge.Base
	chatLog    *chatlog.Logger
	notifier   Notifier
	logger     *slog.Logger
}

func New(classifier *sentiment.Classifier, builder *prompt.Builder, generator *responder.Generator, kb *knowledge.Base, chatLog *chatlog.Logger, notifier Notifier, logger *slog.Logger) *Processor {
	return &Processor{
		classifier: classifier,
		builder:    builder,
		generator:  generator,
		kb:         kb,
		chatLog:    chatLog,
		notifier:   notifier,
		logger:     logger,
	}
}

// Answer runs the conversation pipeline for one question. On success the
// new turn has been appended to the session; on failure the history is
// untouched so the question can be retried.
func (p *Processor) Answer(ctx context.Context, sess *conversation.Session, question string) (conversation.Turn, error) {
	if p.kb == nil {
		return conversation.Turn{}, knowledge.ErrUnavailable
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return conversation.Turn{}, ErrEmptyQuestion
	}

	label := p.classifier.Classify(ctx, question)

	windowed := conversation.Window(sess.History())
	built := p.builder.Build(p.kb.Text(), windowed, label, question)

	html, raw, err := p.generator.Generate(ctx, built)
	if err != nil {
		p.logger.Error("generation failed", "session_id", sess.ID(), "error", err)
		return conversation.Turn{}, err
	}

	turn := conversation.Turn{
		Prompt:       question,
		ResponseRaw:  raw,
		ResponseHTML: html,
		Sentiment:    label,
	}
	sess.Append(turn)

	p.logger.Info("question answered",
		"session_id", sess.ID(),
		"sentiment", label,
		"turns", sess.Len(),
	)
	return turn, nil
}

// Rate validates and logs the rated session, announces it, and clears the
// session. Precondition failures (invalid rating, empty history) return
// before anything is written and leave the session intact; a log write
// failure still clears the session — transcript loss must not block the
// user from starting over.
func (p *Processor) Rate(ctx context.Context, sess *conversation.Session, rating int) error {
	logErr := p.chatLog.Log(sess, rating)
	if errors.Is(logErr, chatlog.ErrInvalidRating) || errors.Is(logErr, chatlog.ErrEmptyHistory) {
		return logErr
	}

	if p.notifier != nil {
		evt := events.SessionRated{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			SessionID: sess.ID(),
			UserInfo:  sess.UserInfo(),
			Rating:    rating,
			Turns:     sess.Len(),
			Logged:    logErr == nil,
		}
		if err := p.notifier.Publish(events.SubjectSessionRated, evt); err != nil {
			p.logger.Warn("failed to publish rated-session event", "error", err)
		}
	}

	sess.Clear()

	if logErr != nil {
		return fmt.Errorf("log rated session: %w", logErr)
	}
	return nil
}
