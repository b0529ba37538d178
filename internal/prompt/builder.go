package prompt

import (
	"fmt"
	"strings"

	"github.com/ingelean/docent/internal/config"
	"github.com/ingelean/docent/internal/conversation"
	"github.com/ingelean/docent/internal/sentiment"
)

// Builder composes the grounded instruction block sent to the model for
// every question. The knowledge text is immutable for the process lifetime;
// the missing-information policy is fixed at construction.
type Builder struct {
	missingInfoRule string
}

func NewBuilder(missingInfoPolicy string) *Builder {
	rule := proactiveRule
	if missingInfoPolicy == config.PolicyRefuse {
		rule = refuseRule
	}
	return &Builder{missingInfoRule: rule}
}

// Build renders the full prompt: persona, tone-adaptation rule for the
// detected sentiment, windowed history, the knowledge text between explicit
// markers, the grounding instruction, and the literal question.
func (b *Builder) Build(knowledge string, windowed []conversation.Turn, sentimentLabel, question string) string {
	return fmt.Sprintf(promptTemplate,
		sentimentLabel,
		renderHistory(windowed),
		toneRule(sentimentLabel),
		b.missingInfoRule,
		knowledge,
		question,
	)
}

// renderHistory renders windowed turns as alternating user/model lines,
// using the raw response text rather than the HTML form.
func renderHistory(windowed []conversation.Turn) string {
	if len(windowed) == 0 {
		return "(no previous turns)"
	}
	var sb strings.Builder
	for _, turn := range windowed {
		sb.WriteString("User: ")
		sb.WriteString(turn.Prompt)
		sb.WriteString("\nModel: ")
		sb.WriteString(turn.ResponseRaw)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func toneRule(label string) string {
	switch label {
	case sentiment.Negative:
		return toneNegative
	case sentiment.Positive:
		return tonePositive
	default:
		return toneNeutral
	}
}
