package conversation

// Turn is one question/answer exchange. It is created only after a
// successful generation and never mutated afterwards.
type Turn struct {
	Prompt       string `json:"prompt"`
	ResponseRaw  string `json:"response_raw"`
	ResponseHTML string `json:"response_html"`
	Sentiment    string `json:"sentiment,omitempty"`
}
