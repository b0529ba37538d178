package config

import (
	"os"
	"strconv"
)

// Missing-information policies for the grounded prompt. Proactive asks the
// model to offer related knowledge when the direct answer is absent; refuse
// asks it to state politely that no information is available.
const (
	PolicyProactive = "proactive"
	PolicyRefuse    = "refuse"
)

type Config struct {
	Port              int
	LogLevel          string
	GeminiAPIKey      string
	GeminiModel       string
	KnowledgePath     string
	ChatLogPath       string
	SessionBackend    string
	SessionDBPath     string
	RedisURL          string
	NatsURL           string
	NatsToken         string
	MissingInfoPolicy string
}

func Load() Config {
	return Config{
		Port:              envInt("DOCENT_PORT", 8620),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		GeminiAPIKey:      envStr("GEMINI_API_KEY", ""),
		GeminiModel:       envStr("DOCENT_MODEL", "gemini-1.5-flash"),
		KnowledgePath:     envStr("KNOWLEDGE_PATH", "knowledge.txt"),
		ChatLogPath:       envStr("CHAT_LOG_PATH", "chat_logs.jsonl"),
		SessionBackend:    envStr("SESSION_BACKEND", "memory"),
		SessionDBPath:     envStr("SESSION_DB_PATH", "sessions.bolt"),
		RedisURL:          envStr("REDIS_URL", ""),
		NatsURL:           envStr("NATS_URL", ""),
		NatsToken:         envStr("NATS_TOKEN", ""),
		MissingInfoPolicy: envStr("MISSING_INFO_POLICY", PolicyProactive),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
