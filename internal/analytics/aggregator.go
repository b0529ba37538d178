package analytics

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ingelean/docent/internal/chatlog"
	"github.com/ingelean/docent/internal/sentiment"
)

// SentimentUnknown buckets turns whose records predate per-turn sentiment.
const SentimentUnknown = "unknown"

// Summary is the dashboard aggregate, recomputed from scratch on every
// request. The log is append-only and small enough to rescan, which also
// sidesteps cache invalidation entirely.
type Summary struct {
	TotalConversations    int            `json:"total_conversations"`
	AvgRating             float64        `json:"avg_rating"`
	AvgTurns              float64        `json:"avg_turns"`
	RatingDistribution    map[int]int    `json:"rating_distribution"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
}

// NoData reports whether the log was absent, empty, or all-invalid.
func (s *Summary) NoData() bool {
	return s.TotalConversations == 0
}

// AvgRatingDisplay formats the mean rating to two decimals.
func (s *Summary) AvgRatingDisplay() string {
	return fmt.Sprintf("%.2f", s.AvgRating)
}

// AvgTurnsDisplay formats the mean turn count to two decimals.
func (s *Summary) AvgTurnsDisplay() string {
	return fmt.Sprintf("%.2f", s.AvgTurns)
}

// Parse reads newline-delimited log records, skipping anything that fails
// to parse or carries an out-of-range rating. Partially written and
// legacy-schema lines must never break aggregation.
func Parse(r io.Reader) []chatlog.Entry {
	var entries []chatlog.Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB line buffer
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry chatlog.Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue // skip malformed lines
		}
		if entry.Rating < 1 || entry.Rating > 5 {
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}

// LoadFile parses the persisted log. A missing file is a "no log yet"
// condition, not an error.
func LoadFile(path string) ([]chatlog.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open chat log: %w", err)
	}
	defer f.Close()
	return Parse(f), nil
}

// Summarize computes the dashboard aggregate over valid entries.
func Summarize(entries []chatlog.Entry) *Summary {
	summary := &Summary{
		RatingDistribution:    make(map[int]int),
		SentimentDistribution: make(map[string]int),
	}

	if len(entries) == 0 {
		return summary
	}

	var ratingSum, turnSum int
	for _, entry := range entries {
		ratingSum += entry.Rating
		turnSum += len(entry.Conversation)
		summary.RatingDistribution[entry.Rating]++

		for _, turn := range entry.Conversation {
			label := turn.Sentiment
			if !sentiment.Known(label) {
				label = SentimentUnknown
			}
			summary.SentimentDistribution[label]++
		}
	}

	summary.TotalConversations = len(entries)
	summary.AvgRating = float64(ratingSum) / float64(len(entries))
	summary.AvgTurns = float64(turnSum) / float64(len(entries))
	return summary
}

// SummarizeFile is the full aggregation pipeline: rescan the log, skip bad
// records, compute the summary.
func SummarizeFile(path string) (*Summary, error) {
	entries, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Summarize(entries), nil
}
