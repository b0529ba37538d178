package chatlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/ingelean/docent/internal/conversation"
)

var (
	// ErrInvalidRating rejects out-of-range or non-numeric ratings before
	// an entry is constructed.
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")

	// ErrEmptyHistory rejects rating a conversation that never happened.
	ErrEmptyHistory = errors.New("cannot log a session with no turns")
)

// ParseRating validates a user-supplied rating string.
func ParseRating(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	if n < 1 || n > 5 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRating, n)
	}
	return n, nil
}

// Logger appends rated transcripts to the shared JSONL log. The log file is
// the one resource shared across concurrent requests, so every record goes
// out as a single write on an O_APPEND handle, serialized by a mutex.
type Logger struct {
	path   string
	logger *slog.Logger
	now    func() time.Time

	mu   sync.Mutex
	file *os.File
}

func NewLogger(path string, logger *slog.Logger) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open chat log: %w", err)
	}
	return &Logger{
		path:   path,
		logger: logger,
		now:    time.Now,
		file:   f,
	}, nil
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// Path returns the log file location, for readers.
func (l *Logger) Path() string {
	return l.path
}

// Log serializes the session with the given rating and appends it as one
// self-contained record. The caller clears the session regardless of the
// outcome here; a write failure must not block a new conversation.
func (l *Logger) Log(sess *conversation.Session, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}
	if sess.Len() == 0 {
		return ErrEmptyHistory
	}

	entry := newEntry(sess, rating, l.now())
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.file.Write(line); err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}

	l.logger.Info("conversation logged",
		"session_id", sess.ID(),
		"rating", rating,
		"turns", sess.Len(),
	)
	return nil
}
