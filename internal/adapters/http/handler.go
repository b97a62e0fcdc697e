package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/careerbridge/careerbridge-core/internal/app/advice"
	"github.com/careerbridge/careerbridge-core/internal/app/conversation"
	"github.com/careerbridge/careerbridge-core/internal/app/insight"
	"github.com/careerbridge/careerbridge-core/internal/app/session"
	"github.com/careerbridge/careerbridge-core/internal/domain"
)

type Server struct {
	conversations *conversation.Registry
	insights      *insight.Analyzer
	advice        *advice.Service
	session       *session.Store
}

func NewServer(
	conversations *conversation.Registry,
	insights *insight.Analyzer,
	adviceSvc *advice.Service,
	sessionStore *session.Store,
) http.Handler {
	s := &Server{
		conversations: conversations,
		insights:      insights,
		advice:        adviceSvc,
		session:       sessionStore,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /conversations            → POST: create conversation
	// /conversations/{id}       → GET: transcript
	// /conversations/{id}/messages → POST: submit a message
	// /conversations/{id}/reset    → POST: reseed the transcript
	mux.HandleFunc("/conversations", s.handleConversations)
	mux.HandleFunc("/conversations/", s.handleConversationWithID)

	mux.HandleFunc("/insights", s.handleInsights)

	mux.HandleFunc("/advice/resume-review", s.handleResumeReview)
	mux.HandleFunc("/advice/career-path", s.handleCareerPath)
	mux.HandleFunc("/advice/interview-feedback", s.handleInterviewFeedback)
	mux.HandleFunc("/advice/career-tip", s.handleCareerTip)

	mux.HandleFunc("/auth/register", s.handleRegister)
	mux.HandleFunc("/auth/login", s.handleLogin)
	mux.HandleFunc("/auth/logout", s.handleLogout)
	mux.HandleFunc("/auth/session", s.handleSession)

	return chainMiddlewares(mux, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type messageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type conversationResponse struct {
	ID       string            `json:"id"`
	Busy     bool              `json:"busy"`
	Messages []messageResponse `json:"messages"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type insightRequest struct {
	JobTitle string `json:"job_title"`
}

type skillResponse struct {
	Name       string `json:"name"`
	Importance int    `json:"importance"`
}

type insightResponse struct {
	AverageSalary string          `json:"averageSalary"`
	Demand        string          `json:"demand"`
	TopSkills     []skillResponse `json:"topSkills"`
}

type resumeReviewRequest struct {
	ResumeText  string   `json:"resume_text"`
	CollegeTier string   `json:"college_tier,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

type careerPathRequest struct {
	JobTitle string `json:"job_title"`
}

type interviewFeedbackRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type adviceResponse struct {
	Text string `json:"text"`
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

// ─────────────────────────────────────────────
// Conversations
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	id, m := s.conversations.Create()
	writeJSON(w, http.StatusCreated, toConversationResponse(id, m))
}

func (s *Server) handleConversationWithID(w http.ResponseWriter, r *http.Request) {
	// expected path:
	// /conversations/{id}
	// /conversations/{id}/messages
	// /conversations/{id}/reset
	path := strings.TrimPrefix(r.URL.Path, "/conversations/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}

	id := domain.ConversationID(parts[0])
	m, err := s.conversations.Get(id)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		writeJSON(w, http.StatusOK, toConversationResponse(id, m))
		return
	}

	if len(parts) == 2 && parts[1] == "messages" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleSendMessage(w, r, id, m)
		return
	}

	if len(parts) == 2 && parts[1] == "reset" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		m.Reset()
		writeJSON(w, http.StatusOK, toConversationResponse(id, m))
		return
	}

	http.NotFound(w, r)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, id domain.ConversationID, m *conversation.Manager) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	if m.Busy() {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "a message is already being processed",
		})
		return
	}

	if !m.Submit(r.Context(), req.Text) {
		// Lost the race with another submit or a reset.
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "the conversation changed while processing",
		})
		return
	}

	writeJSON(w, http.StatusOK, toConversationResponse(id, m))
}

// ─────────────────────────────────────────────
// Insights and advice
// ─────────────────────────────────────────────

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req insightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	result, err := s.insights.Analyze(r.Context(), req.JobTitle)
	if err != nil {
		writeKindError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInsightResponse(result))
}

func (s *Server) handleResumeReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req resumeReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	text, err := s.advice.ResumeReview(r.Context(), advice.ResumeReviewInput{
		ResumeText:  req.ResumeText,
		CollegeTier: req.CollegeTier,
		Skills:      req.Skills,
	})
	if err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Text: text})
}

func (s *Server) handleCareerPath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req careerPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	text, err := s.advice.CareerPath(r.Context(), req.JobTitle)
	if err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Text: text})
}

func (s *Server) handleInterviewFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req interviewFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	text, err := s.advice.InterviewFeedback(r.Context(), req.Question, req.Answer)
	if err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Text: text})
}

func (s *Server) handleCareerTip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	text, err := s.advice.CareerTip(r.Context())
	if err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Text: text})
}

// ─────────────────────────────────────────────
// Auth
// ─────────────────────────────────────────────

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		badRequest(w, "full_name, email and password are required")
		return
	}

	err := s.session.Register(r.Context(), domain.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"msg": "Registration successful! Please proceed to login.",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(w, "email and password are required")
		return
	}

	if err := s.session.Login(r.Context(), req.Email, req.Password); err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	s.session.Logout(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: s.session.IsAuthenticated()})
}

// ─────────────────────────────────────────────
// Response helpers
// ─────────────────────────────────────────────

func toConversationResponse(id domain.ConversationID, m *conversation.Manager) conversationResponse {
	msgs := m.Transcript()
	out := make([]messageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, messageResponse{
			ID:        string(msg.ID),
			Role:      string(msg.Role),
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
		})
	}
	return conversationResponse{
		ID:       string(id),
		Busy:     m.Busy(),
		Messages: out,
	}
}

func toInsightResponse(r *domain.InsightResult) insightResponse {
	skills := make([]skillResponse, 0, len(r.TopSkills))
	for _, s := range r.TopSkills {
		skills = append(skills, skillResponse{Name: s.Name, Importance: s.Importance})
	}
	return insightResponse{
		AverageSalary: r.AverageSalary,
		Demand:        r.Demand,
		TopSkills:     skills,
	}
}

// writeKindError maps a tagged error to an HTTP status. The server-
// reported auth status passes through; everything else follows the
// kind.
func writeKindError(w http.ResponseWriter, err error) {
	var tagged *domain.Error
	if !errors.As(err, &tagged) {
		internalError(w, err)
		return
	}

	status := http.StatusBadGateway
	switch tagged.Kind {
	case domain.ErrInvalidInput:
		status = http.StatusBadRequest
	case domain.ErrMalformedInsight:
		status = http.StatusUnprocessableEntity
	case domain.ErrTimeout:
		status = http.StatusGatewayTimeout
	case domain.ErrAuth:
		status = http.StatusUnauthorized
		if tagged.Status >= 400 && tagged.Status <= 599 {
			status = tagged.Status
		}
	}

	writeJSON(w, status, map[string]string{
		"error": tagged.Detail,
		"kind":  string(tagged.Kind),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
