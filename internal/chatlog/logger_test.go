package chatlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ingelean/docent/internal/conversation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	l, err := NewLogger(filepath.Join(t.TempDir(), "chat_logs.jsonl"), discardLogger())
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func ratedSession(id string, turns int) *conversation.Session {
	sess := conversation.NewSession(id)
	for i := 0; i < turns; i++ {
		sess.Append(conversation.Turn{
			Prompt:      fmt.Sprintf("q%d", i),
			ResponseRaw: fmt.Sprintf("a%d", i),
			Sentiment:   "neutral",
		})
	}
	return sess
}

func TestParseRating(t *testing.T) {
	for _, s := range []string{"1", "2", "3", "4", "5"} {
		if _, err := ParseRating(s); err != nil {
			t.Errorf("rating %s should be valid: %v", s, err)
		}
	}
	for _, s := range []string{"0", "6", "-1", "abc", "", "4.5"} {
		if _, err := ParseRating(s); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("rating %q should be rejected, got %v", s, err)
		}
	}
}

func TestLog_WritesOneParseableLine(t *testing.T) {
	l := newTestLogger(t)
	l.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }

	sess := ratedSession("sess-1", 2)
	sess.SetUserInfo(map[string]string{"full_name": "Ana"})

	if err := l.Log(sess, 5); err != nil {
		t.Fatalf("log: %v", err)
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatal(err)
	}

	var entry Entry
	if err := json.Unmarshal(data[:len(data)-1], &entry); err != nil {
		t.Fatalf("line not independently parseable: %v", err)
	}
	if entry.Timestamp != "2026-08-28T12:00:00Z" {
		t.Errorf("timestamp = %q", entry.Timestamp)
	}
	if entry.SessionID != "sess-1" || entry.Rating != 5 {
		t.Errorf("entry = %+v", entry)
	}
	if len(entry.Conversation) != 2 {
		t.Errorf("expected full history, got %d turns", len(entry.Conversation))
	}
	if entry.UserInfo["full_name"] != "Ana" {
		t.Errorf("user info lost: %+v", entry.UserInfo)
	}
}

func TestLog_KeepsFullHistoryBeyondWindow(t *testing.T) {
	l := newTestLogger(t)

	if err := l.Log(ratedSession("sess-1", 9), 3); err != nil {
		t.Fatalf("log: %v", err)
	}

	data, _ := os.ReadFile(l.Path())
	var entry Entry
	if err := json.Unmarshal(data[:len(data)-1], &entry); err != nil {
		t.Fatal(err)
	}
	if len(entry.Conversation) != 9 {
		t.Errorf("log must not truncate history to the context window, got %d turns", len(entry.Conversation))
	}
}

func TestLog_RejectsInvalidInput(t *testing.T) {
	l := newTestLogger(t)

	if err := l.Log(ratedSession("s", 1), 6); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("expected ErrInvalidRating for 6, got %v", err)
	}
	if err := l.Log(ratedSession("s", 0), 4); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("expected ErrEmptyHistory, got %v", err)
	}

	// Nothing must be written on rejection.
	data, _ := os.ReadFile(l.Path())
	if len(data) != 0 {
		t.Errorf("rejected ratings must not produce records, file has %d bytes", len(data))
	}
}

func TestLog_ConcurrentWritersDoNotInterleave(t *testing.T) {
	l := newTestLogger(t)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := l.Log(ratedSession(fmt.Sprintf("sess-%d", i), 3), 1+i%5); err != nil {
				t.Errorf("log: %v", err)
			}
		}(i)
	}
	wg.Wait()

	f, err := os.Open(l.Path())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("interleaved or corrupt record: %v", err)
		}
		count++
	}
	if count != writers {
		t.Errorf("expected %d records, got %d", writers, count)
	}
}
