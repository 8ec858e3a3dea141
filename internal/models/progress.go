package models

import "time"

// ── Progress Records ─────────────────────────────────────

// QuestionRecord is one logged tutor exchange. Append-only.
type QuestionRecord struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// ChallengeRecord is one submitted challenge solution with the tutor's
// feedback. Append-only.
type ChallengeRecord struct {
	ID        int64     `json:"id"`
	Challenge string    `json:"challenge"`
	Solution  string    `json:"solution"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackVote is one helpfulness vote on a displayed answer. Append-only.
type FeedbackVote struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Helpful   bool      `json:"helpful"`
	CreatedAt time.Time `json:"created_at"`
}

// ProgressResponse is the Progress page payload: both histories, newest
// first.
type ProgressResponse struct {
	Questions  []QuestionRecord  `json:"questions"`
	Challenges []ChallengeRecord `json:"challenges"`
}

// ── Chat / Tutor Types ───────────────────────────────────

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

// ChatMessage is one turn of the in-session transcript.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "chatbot"
	Content string `json:"content"`
}

type TranscriptResponse struct {
	Conversation  []ChatMessage `json:"conversation"`
	PracticeLinks []string      `json:"practice_links"`
}

type FeedbackRequest struct {
	Helpful bool `json:"helpful"`
}

type GenerateRequest struct {
	Language string `json:"language"`
	Topic    string `json:"topic"`
	Level    string `json:"level"`
}

type GenerateResponse struct {
	Content string `json:"content"`
}

type SolutionRequest struct {
	Solution string `json:"solution"`
}

type SolutionResponse struct {
	Challenge string `json:"challenge"`
	Feedback  string `json:"feedback"`
}

// ── Assessment Types ─────────────────────────────────────

// AssessmentQuestion is one quiz question as served to the client. The
// correct option is never included.
type AssessmentQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type AssessmentResponse struct {
	Interest  string               `json:"interest"`
	Questions []AssessmentQuestion `json:"questions"`
}

type SubmitAssessmentRequest struct {
	Answers map[string]string `json:"answers"`
}

type AssessmentResult struct {
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Message string `json:"message"`
	Page    string `json:"page"`
}

// ── Session / Flow Types ─────────────────────────────────

type SessionResponse struct {
	Username string `json:"username"`
	Page     string `json:"page"`
	Sidebar  bool   `json:"sidebar"`
}

type NavigateRequest struct {
	Page string `json:"page"`
}
