package prompt

import (
	"strings"
	"testing"

	"github.com/ingelean/docent/internal/config"
	"github.com/ingelean/docent/internal/conversation"
	"github.com/ingelean/docent/internal/sentiment"
)

func TestBuild_ContainsAllSections(t *testing.T) {
	b := NewBuilder(config.PolicyProactive)
	windowed := []conversation.Turn{
		{Prompt: "what do you sell?", ResponseRaw: "We build automation systems.", ResponseHTML: "<p>We build automation systems.</p>"},
	}

	got := b.Build("KNOWLEDGE BODY", windowed, sentiment.Positive, "do you serve Cali?")

	for _, want := range []string{
		"INGE LEAN",
		"**positive**",
		"User: what do you sell?",
		"Model: We build automation systems.",
		KnowledgeBegin,
		"KNOWLEDGE BODY",
		KnowledgeEnd,
		"User: do you serve Cali?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// History must use the raw response, never the HTML form.
	if strings.Contains(got, "<p>") {
		t.Error("prompt leaked HTML response form into history")
	}
}

func TestBuild_ToneRulePerSentiment(t *testing.T) {
	b := NewBuilder(config.PolicyProactive)

	cases := []struct {
		label string
		want  string
	}{
		{sentiment.Negative, "empathetic"},
		{sentiment.Positive, "enthusiastic"},
		{sentiment.Neutral, "professional"},
	}
	for _, tc := range cases {
		got := b.Build("doc", nil, tc.label, "q")
		if !strings.Contains(got, tc.want) {
			t.Errorf("label %s: prompt missing tone keyword %q", tc.label, tc.want)
		}
	}
}

func TestBuild_MissingInfoPolicy(t *testing.T) {
	proactive := NewBuilder(config.PolicyProactive).Build("doc", nil, sentiment.Neutral, "q")
	if !strings.Contains(proactive, "Offer related information") {
		t.Error("proactive policy not rendered")
	}

	refuse := NewBuilder(config.PolicyRefuse).Build("doc", nil, sentiment.Neutral, "q")
	if !strings.Contains(refuse, "Do not speculate") {
		t.Error("refuse policy not rendered")
	}
	if strings.Contains(refuse, "Offer related information") {
		t.Error("refuse policy must not include the proactive rule")
	}
}

func TestBuild_EmptyHistoryPlaceholder(t *testing.T) {
	b := NewBuilder(config.PolicyProactive)
	got := b.Build("doc", nil, sentiment.Neutral, "first question")
	if !strings.Contains(got, "(no previous turns)") {
		t.Error("expected placeholder for empty history")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	b := NewBuilder(config.PolicyProactive)
	windowed := []conversation.Turn{{Prompt: "a", ResponseRaw: "b"}}

	first := b.Build("doc", windowed, sentiment.Neutral, "q")
	second := b.Build("doc", windowed, sentiment.Neutral, "q")
	if first != second {
		t.Error("Build must be deterministic for identical inputs")
	}
}
