package llm

import (
	"strings"

	"github.com/careerbridge/careerbridge-core/internal/domain"
)

const chatSystemPrompt = `You are a career assistant for the CareerBridge platform.

Your role:
- Answer questions about careers, jobs, the job market, and skills.
- If the question is outside this scope, politely decline and steer the
  conversation back to careers.

Style guidelines:
- Be concise and practical.
- Prefer concrete, actionable advice over generic encouragement.
- When suggesting skills or roles, mention why they matter.
`

const insightSystemPrompt = `You are a job market analyst.
Provide key insights for a specific job title.
Respond ONLY with valid JSON in this format:
{
  "averageSalary": "string (e.g. '$120,000 USD')",
  "demand": "string (e.g. 'High' or 'Growing by 15%')",
  "topSkills": [
    { "name": "string", "importance": number (1-100) }
  ]
}
Provide 5-10 top skills dynamically based on the role.
`

const resumeReviewSystemPrompt = `You are an expert career coach and recruiter specializing in helping students from Tier 2/3 colleges land jobs at top companies.
Your feedback must be constructive, encouraging, and highly actionable.
Analyze the resume for ATS compatibility, impact metrics, action verbs, and clarity.
Provide feedback in simple markdown format.
`

// BuildChatPrompt frames a chat turn: the fixed career-domain system
// instruction plus the recent conversation and the new message.
func BuildChatPrompt(userMessage string, history []domain.Message) domain.Prompt {
	var historyParts []string
	for _, m := range history {
		role := "user"
		if m.Role == domain.RoleAssistant {
			role = "assistant"
		}
		historyParts = append(historyParts, role+": "+m.Text)
	}

	var userContent strings.Builder
	if len(historyParts) > 0 {
		userContent.WriteString("Conversation so far:\n")
		userContent.WriteString(strings.Join(historyParts, "\n"))
		userContent.WriteString("\n\n")
	}
	userContent.WriteString("New user message:\n")
	userContent.WriteString(userMessage)

	return domain.Prompt{
		System: chatSystemPrompt,
		User:   userContent.String(),
	}
}

// BuildInsightPrompt asks for the structured job-market payload.
func BuildInsightPrompt(jobTitle string) domain.Prompt {
	return domain.Prompt{
		System: insightSystemPrompt,
		User:   `Provide job market insights for a "` + jobTitle + `".`,
	}
}

// BuildResumeReviewPrompt asks for recruiter-style resume feedback.
func BuildResumeReviewPrompt(resumeText, collegeTier string, skills []string) domain.Prompt {
	if collegeTier == "" {
		collegeTier = "Tier 2/3"
	}
	skillsLine := "Not specified"
	if len(skills) > 0 {
		skillsLine = strings.Join(skills, ", ")
	}

	var b strings.Builder
	b.WriteString("Please review the following resume for a student from a ")
	b.WriteString(collegeTier)
	b.WriteString(" college.\nTheir target skills are: ")
	b.WriteString(skillsLine)
	b.WriteString(".\n\nResume Text:\n---\n")
	b.WriteString(resumeText)
	b.WriteString("\n---\n\nProvide a review with the following structure:\n")
	b.WriteString("### Overall Impression\n(A brief, encouraging summary)\n\n")
	b.WriteString("### ATS Compatibility Score: [Give a score out of 10]\n(Briefly explain why, mentioning keywords and formatting)\n\n")
	b.WriteString("### Actionable Feedback (Bulleted List)\n- Point 1\n- Point 2\n- Point 3")

	return domain.Prompt{
		System: resumeReviewSystemPrompt,
		User:   b.String(),
	}
}

// BuildCareerPathPrompt asks for a structured markdown roadmap toward
// a target role.
func BuildCareerPathPrompt(jobTitle string) domain.Prompt {
	var b strings.Builder
	b.WriteString("Act as an expert career coach. A user wants to become a '")
	b.WriteString(jobTitle)
	b.WriteString("'.\nProvide a clear, encouraging, and structured career roadmap for them.\n")
	b.WriteString("The response must be in Markdown format and include these three sections exactly as titled below:\n\n")
	b.WriteString("### Potential Career Path\nList 3-5 potential roles, starting from an entry-level position and progressing upwards.\n\n")
	b.WriteString("### Key Skills to Master\nList 5-7 crucial technical and soft skills required for a '")
	b.WriteString(jobTitle)
	b.WriteString("'. Briefly explain why each is important.\n\n")
	b.WriteString("### Sample Interview Questions\nProvide 3 insightful interview questions for a '")
	b.WriteString(jobTitle)
	b.WriteString("' role: one behavioral, one technical, and one situational.")

	return domain.Prompt{User: b.String()}
}

// BuildInterviewFeedbackPrompt asks for interviewer feedback on one
// question/answer pair.
func BuildInterviewFeedbackPrompt(question, answer string) domain.Prompt {
	var b strings.Builder
	b.WriteString("Act as a friendly but professional interviewer. A candidate was asked the following question:\n")
	b.WriteString("**Question:** \"")
	b.WriteString(question)
	b.WriteString("\"\n\nHere is their answer:\n**Answer:** \"")
	b.WriteString(answer)
	b.WriteString("\"\n\nPlease provide constructive feedback on their answer in Markdown format. The feedback should include:\n")
	b.WriteString("1. **Overall Impression:** A brief summary of how they did.\n")
	b.WriteString("2. **Strengths:** 2-3 bullet points on what was good about their answer.\n")
	b.WriteString("3. **Areas for Improvement:** 2-3 bullet points with concrete suggestions.")

	return domain.Prompt{User: b.String()}
}

// BuildCareerTipPrompt asks for the login-page tip widget content.
func BuildCareerTipPrompt() domain.Prompt {
	return domain.Prompt{
		User: "Give a single, concise, and inspiring career tip for a tech professional. Do not use quotes.",
	}
}
