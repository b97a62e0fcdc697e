package advice_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/careerbridge/careerbridge-core/internal/app/advice"
	"github.com/careerbridge/careerbridge-core/internal/domain"
)

type fakeGateway struct {
	reply  string
	err    error
	calls  int
	prompt domain.Prompt
}

func (g *fakeGateway) Send(ctx context.Context, prompt domain.Prompt, timeout time.Duration) (string, error) {
	g.calls++
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func TestResumeReviewRequiresResumeText(t *testing.T) {
	gw := &fakeGateway{reply: "feedback"}
	svc := advice.NewService(gw, time.Second)

	_, err := svc.ResumeReview(context.Background(), advice.ResumeReviewInput{ResumeText: "  "})
	if domain.KindOf(err) != domain.ErrInvalidInput {
		t.Fatalf("expected invalid_input, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("expected no gateway call, got %d", gw.calls)
	}
}

func TestResumeReviewFramesResumeIntoPrompt(t *testing.T) {
	gw := &fakeGateway{reply: "### Overall Impression\nSolid start."}
	svc := advice.NewService(gw, time.Second)

	text, err := svc.ResumeReview(context.Background(), advice.ResumeReviewInput{
		ResumeText:  "Built data pipelines at Acme.",
		CollegeTier: "Tier 2",
		Skills:      []string{"SQL", "Python"},
	})
	if err != nil {
		t.Fatalf("ResumeReview failed: %v", err)
	}
	if text == "" {
		t.Fatalf("expected feedback text")
	}
	if !strings.Contains(gw.prompt.User, "Built data pipelines at Acme.") {
		t.Fatalf("resume text missing from prompt: %q", gw.prompt.User)
	}
	if !strings.Contains(gw.prompt.User, "SQL, Python") {
		t.Fatalf("skills missing from prompt: %q", gw.prompt.User)
	}
	if gw.prompt.System == "" {
		t.Fatalf("expected a system instruction for resume review")
	}
}

func TestCareerPathRequiresJobTitle(t *testing.T) {
	svc := advice.NewService(&fakeGateway{}, time.Second)

	_, err := svc.CareerPath(context.Background(), "")
	if domain.KindOf(err) != domain.ErrInvalidInput {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestInterviewFeedbackRequiresBothFields(t *testing.T) {
	svc := advice.NewService(&fakeGateway{}, time.Second)

	if _, err := svc.InterviewFeedback(context.Background(), "", "an answer"); domain.KindOf(err) != domain.ErrInvalidInput {
		t.Fatalf("expected invalid_input for empty question, got %v", err)
	}
	if _, err := svc.InterviewFeedback(context.Background(), "a question", ""); domain.KindOf(err) != domain.ErrInvalidInput {
		t.Fatalf("expected invalid_input for empty answer, got %v", err)
	}
}

func TestAdvicePropagatesGatewayErrors(t *testing.T) {
	gw := &fakeGateway{err: domain.NewBackendStatus(503, "overloaded")}
	svc := advice.NewService(gw, time.Second)

	_, err := svc.CareerTip(context.Background())
	if domain.KindOf(err) != domain.ErrBackendStatus {
		t.Fatalf("expected backend_status to propagate, got %v", err)
	}
}
