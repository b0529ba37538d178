package knowledge

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnavailable means the knowledge document is missing or empty. The
// predict path refuses to answer rather than building a prompt around a
// broken knowledge base.
var ErrUnavailable = errors.New("knowledge base unavailable")

// Base holds the extracted knowledge document. It is loaded once at startup
// and immutable for the process lifetime; text extraction from the source
// document happens upstream.
type Base struct {
	text string
}

// Load reads the extracted knowledge text from disk.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s not found", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("read knowledge document: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrUnavailable, path)
	}

	return &Base{text: text}, nil
}

// Text returns the full knowledge document.
func (b *Base) Text() string {
	return b.text
}
