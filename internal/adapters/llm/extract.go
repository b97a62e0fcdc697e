package llm

import (
	"encoding/json"
	"strings"
)

// The generative backend has shipped several envelope shapes over
// time: a flat reply field from the proxy, a flat response field from
// the older chatbot route, and the nested candidates structure from
// the generative-language API itself. Each strategy is a pure probe of
// the raw envelope; the first one that yields a non-empty string wins.

type extractFunc func(raw []byte) (string, bool)

var extractors = []extractFunc{
	extractFlatField("reply"),
	extractFlatField("response"),
	extractCandidates,
}

// ExtractText runs the prioritized extraction strategies against a raw
// response envelope. ok is false when no known shape matched.
func ExtractText(raw []byte) (string, bool) {
	for _, fn := range extractors {
		if text, ok := fn(raw); ok {
			return text, true
		}
	}
	return "", false
}

func extractFlatField(field string) extractFunc {
	return func(raw []byte) (string, bool) {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return "", false
		}
		var text string
		if err := json.Unmarshal(envelope[field], &text); err != nil {
			return "", false
		}
		if strings.TrimSpace(text) == "" {
			return "", false
		}
		return text, true
	}
}

func extractCandidates(raw []byte) (string, bool) {
	var envelope struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", false
	}
	for _, c := range envelope.Candidates {
		for _, p := range c.Content.Parts {
			if strings.TrimSpace(p.Text) != "" {
				return p.Text, true
			}
		}
	}
	return "", false
}
