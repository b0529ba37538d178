package chatlog

import (
	"time"

	"github.com/ingelean/docent/internal/conversation"
)

// Entry is one persisted, immutable record of a rated session. Entries are
// appended as single JSON lines and never mutated or deleted. Older records
// may lack user_info or per-turn sentiment; readers must tolerate both.
type Entry struct {
	Timestamp    string              `json:"timestamp"`
	SessionID    string              `json:"session_id"`
	UserInfo     map[string]string   `json:"user_info,omitempty"`
	Rating       int                 `json:"rating"`
	Conversation []conversation.Turn `json:"conversation"`
}

func newEntry(sess *conversation.Session, rating int, now time.Time) Entry {
	return Entry{
		Timestamp:    now.UTC().Format(time.RFC3339),
		SessionID:    sess.ID(),
		UserInfo:     sess.UserInfo(),
		Rating:       rating,
		Conversation: sess.History(),
	}
}
