package advice

import (
	"context"
	"strings"
	"time"

	"github.com/careerbridge/careerbridge-core/internal/adapters/llm"
	"github.com/careerbridge/careerbridge-core/internal/domain"
	"github.com/careerbridge/careerbridge-core/internal/observability"
)

// Service bundles the one-shot advice flows: each one is a single
// prompt/response exchange returning free-form markdown text.
type Service struct {
	gateway domain.Gateway
	timeout time.Duration
}

// NewService builds the advice service. The timeout is the generous
// one: resume reviews and roadmaps run longer than a chat turn.
func NewService(gateway domain.Gateway, timeout time.Duration) *Service {
	return &Service{
		gateway: gateway,
		timeout: timeout,
	}
}

// ResumeReviewInput carries the material the resume analyzer collects.
type ResumeReviewInput struct {
	ResumeText  string
	CollegeTier string
	Skills      []string
}

// ResumeReview asks for recruiter-style feedback on a resume.
func (s *Service) ResumeReview(ctx context.Context, in ResumeReviewInput) (string, error) {
	if strings.TrimSpace(in.ResumeText) == "" {
		return "", domain.NewInvalidInput("resume text is required")
	}
	return s.run(ctx, "resume_review", llm.BuildResumeReviewPrompt(in.ResumeText, in.CollegeTier, in.Skills))
}

// CareerPath asks for a structured roadmap toward a target role.
func (s *Service) CareerPath(ctx context.Context, jobTitle string) (string, error) {
	if strings.TrimSpace(jobTitle) == "" {
		return "", domain.NewInvalidInput("job title is required")
	}
	return s.run(ctx, "career_path", llm.BuildCareerPathPrompt(jobTitle))
}

// InterviewFeedback asks for feedback on one question/answer pair.
func (s *Service) InterviewFeedback(ctx context.Context, question, answer string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", domain.NewInvalidInput("question is required")
	}
	if strings.TrimSpace(answer) == "" {
		return "", domain.NewInvalidInput("answer is required")
	}
	return s.run(ctx, "interview_feedback", llm.BuildInterviewFeedbackPrompt(question, answer))
}

// CareerTip asks for a single short tip.
func (s *Service) CareerTip(ctx context.Context) (string, error) {
	return s.run(ctx, "career_tip", llm.BuildCareerTipPrompt())
}

func (s *Service) run(ctx context.Context, flow string, prompt domain.Prompt) (string, error) {
	log := observability.LoggerFromContext(ctx).With("flow", flow)

	text, err := s.gateway.Send(ctx, prompt, s.timeout)
	if err != nil {
		log.Warn("advice request failed", "kind", domain.KindOf(err), "error", err)
		return "", err
	}

	log.Info("advice request completed")
	return text, nil
}
