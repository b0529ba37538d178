package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectSessionRated announces a freshly logged transcript so external
// collaborators (mail sender, live dashboards) can react. Published inside
// the rating request, fire-and-forget.
const SubjectSessionRated = "docent.session.rated"

// SessionRated is the payload for SubjectSessionRated.
type SessionRated struct {
	Timestamp string            `json:"timestamp"`
	SessionID string            `json:"session_id"`
	UserInfo  map[string]string `json:"user_info,omitempty"`
	Rating    int               `json:"rating"`
	Turns     int               `json:"turns"`
	Logged    bool              `json:"logged"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.conn.Publish(subject, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
