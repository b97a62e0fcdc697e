package insight

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/careerbridge/careerbridge-core/internal/adapters/llm"
	"github.com/careerbridge/careerbridge-core/internal/domain"
	"github.com/careerbridge/careerbridge-core/internal/observability"
)

// Analyzer runs single-shot job-market analyses: one prompt, one
// response carrying an embedded JSON payload.
type Analyzer struct {
	gateway domain.Gateway
	timeout time.Duration
}

// NewAnalyzer builds an analyzer. The timeout should be generous:
// structured analysis is allowed to take longer than a chat turn.
func NewAnalyzer(gateway domain.Gateway, timeout time.Duration) *Analyzer {
	return &Analyzer{
		gateway: gateway,
		timeout: timeout,
	}
}

// Analyze asks the backend for insights on a job title and parses the
// reply into an InsightResult. Gateway failures propagate with their
// kind untouched; a reply that does not parse or validate comes back
// as malformed_insight so callers can tell "the model returned
// something we could not understand" apart from a transport failure.
func (a *Analyzer) Analyze(ctx context.Context, jobTitle string) (*domain.InsightResult, error) {
	jobTitle = strings.TrimSpace(jobTitle)
	if jobTitle == "" {
		return nil, domain.NewInvalidInput("job title is required")
	}

	log := observability.LoggerFromContext(ctx).With("job_title", jobTitle)

	text, err := a.gateway.Send(ctx, llm.BuildInsightPrompt(jobTitle), a.timeout)
	if err != nil {
		log.Warn("insight request failed", "kind", domain.KindOf(err), "error", err)
		return nil, err
	}

	result, err := Parse(text)
	if err != nil {
		log.Warn("insight payload rejected", "error", err)
		return nil, err
	}

	log.Info("insight analysis completed", "skill_count", len(result.TopSkills))
	return result, nil
}

// Parse strips code fences from a model reply, decodes the remaining
// text as an InsightResult, validates it, and orders the skills
// descending by importance.
func Parse(text string) (*domain.InsightResult, error) {
	cleaned := StripFences(text)

	var result domain.InsightResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, domain.NewMalformedInsight("payload is not valid JSON: " + err.Error())
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	result.SortSkills()
	return &result, nil
}

// StripFences removes markdown code-fence markers so a payload wrapped
// in triple backticks parses the same as an unfenced one.
func StripFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
