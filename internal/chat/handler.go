// Package chat serves the tutor-facing pages: the chat conversation,
// generated tutorials, and generated challenges with solution feedback.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/techitup/backend/internal/flow"
	"github.com/techitup/backend/internal/models"
	"github.com/techitup/backend/internal/tutor"
)

// UserStore is the slice of the credential store these handlers need.
type UserStore interface {
	GetByID(userID int64) (*models.User, error)
}

// ConversationLog is the append-only log the handlers write to.
type ConversationLog interface {
	LogQuestion(userID int64, question, answer string) error
	LogChallenge(userID int64, challenge, solution, feedback string) error
	LogFeedback(userID int64, vote models.FeedbackVote) error
}

// TutorClient generates tutor responses. *tutor.Tutor satisfies it.
type TutorClient interface {
	Ask(ctx context.Context, prompt, interest string, score *int) (string, error)
	Tutorial(ctx context.Context, topic, level, language string) (string, error)
	Challenge(ctx context.Context, topic, level, language string) (string, error)
	SolutionFeedback(ctx context.Context, solution string) (string, error)
}

// practiceLinks are the external practice sites surfaced on the chat page.
var practiceLinks = []string{
	"https://edabit.com/challenges",
	"https://www.codeconquest.com/coding-quizzes/",
}

var validLevels = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

type Handler struct {
	users    UserStore
	logs     ConversationLog
	tutor    TutorClient
	sessions *flow.Registry
}

func NewHandler(users UserStore, logs ConversationLog, t TutorClient, sessions *flow.Registry) *Handler {
	return &Handler{users: users, logs: logs, tutor: t, sessions: sessions}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// session loads the user and their flow session, enforcing that the tutor
// pages are only reachable once the assessment is complete.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*models.User, *flow.Session, bool) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return nil, nil, false
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		log.Printf("[handler] load user error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return nil, nil, false
	}

	if !user.HasCompletedAssessment() {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Assessment must be completed first"})
		return nil, nil, false
	}

	sess := h.sessions.GetOrStart(user.ID, user.Username, flow.PageChat)
	return user, sess, true
}

// Ask sends one chat question to the tutor, personalized by the user's
// interest and assessment score. The exchange is logged only after a
// successful completion response.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	user, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "message is required"})
		return
	}

	// Re-sending text already anywhere in the transcript is a double
	// submit.
	for _, m := range sess.Conversation {
		if m.Content == req.Message {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Question already asked in this conversation"})
			return
		}
	}

	answer, err := h.tutor.Ask(r.Context(), req.Message, user.Interest, user.AssessmentScore)
	if err != nil {
		if errors.Is(err, tutor.ErrServiceUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "There was an issue with the AI service. Please try again later."})
			return
		}
		log.Printf("[handler] Ask error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if err := h.logs.LogQuestion(user.ID, req.Message, answer); err != nil {
		log.Printf("[handler] Ask log error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save the exchange"})
		return
	}

	sess.Conversation = append(sess.Conversation,
		models.ChatMessage{Role: "user", Content: req.Message},
		models.ChatMessage{Role: "chatbot", Content: answer},
	)
	sess.LastQuestion = req.Message
	sess.LastAnswer = answer
	// A fresh answer may be voted on, even if an earlier one already was.
	sess.FeedbackCollected = false

	writeJSON(w, http.StatusOK, models.ChatResponse{Answer: answer})
}

// Transcript returns the in-session conversation.
func (h *Handler) Transcript(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	conversation := sess.Conversation
	if conversation == nil {
		conversation = []models.ChatMessage{}
	}

	writeJSON(w, http.StatusOK, models.TranscriptResponse{
		Conversation:  conversation,
		PracticeLinks: practiceLinks,
	})
}

// Vote records one helpfulness vote for the answer currently on screen.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	user, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if sess.LastAnswer == "" {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "No answer to vote on"})
		return
	}
	if sess.FeedbackCollected {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Feedback already collected for this answer"})
		return
	}

	vote := models.FeedbackVote{
		Question: sess.LastQuestion,
		Answer:   sess.LastAnswer,
		Helpful:  req.Helpful,
	}
	if err := h.logs.LogFeedback(user.ID, vote); err != nil {
		log.Printf("[handler] Vote error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save feedback"})
		return
	}

	sess.FeedbackCollected = true
	writeJSON(w, http.StatusOK, map[string]string{"message": "feedback recorded"})
}

// Tutorial generates a tutorial for an explicit language, topic, and
// level. Tutorials are not persisted.
func (h *Handler) Tutorial(w http.ResponseWriter, r *http.Request) {
	_, _, ok := h.session(w, r)
	if !ok {
		return
	}

	req, ok := decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	content, err := h.tutor.Tutorial(r.Context(), req.Topic, req.Level, req.Language)
	if err != nil {
		writeServiceError(w, "Tutorial", err)
		return
	}

	writeJSON(w, http.StatusOK, models.GenerateResponse{Content: content})
}

// Challenge generates a coding challenge and holds it in the session so a
// solution can be submitted against it.
func (h *Handler) Challenge(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	req, ok := decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	content, err := h.tutor.Challenge(r.Context(), req.Topic, req.Level, req.Language)
	if err != nil {
		writeServiceError(w, "Challenge", err)
		return
	}

	sess.Challenge = content
	sess.SolutionSubmitted = false

	writeJSON(w, http.StatusOK, models.GenerateResponse{Content: content})
}

// SubmitSolution grades a solution to the pending challenge. One graded
// submission per generated challenge; the record is written only after
// feedback generation succeeds.
func (h *Handler) SubmitSolution(w http.ResponseWriter, r *http.Request) {
	user, sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.SolutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Solution = strings.TrimSpace(req.Solution)
	if req.Solution == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "solution is required"})
		return
	}

	if sess.Challenge == "" {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Generate a challenge first"})
		return
	}
	if sess.SolutionSubmitted {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Solution already submitted for this challenge"})
		return
	}

	feedback, err := h.tutor.SolutionFeedback(r.Context(), req.Solution)
	if err != nil {
		writeServiceError(w, "SubmitSolution", err)
		return
	}

	if err := h.logs.LogChallenge(user.ID, sess.Challenge, req.Solution, feedback); err != nil {
		log.Printf("[handler] SubmitSolution log error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save the challenge record"})
		return
	}

	sess.SolutionSubmitted = true
	writeJSON(w, http.StatusOK, models.SolutionResponse{Challenge: sess.Challenge, Feedback: feedback})
}

func decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (models.GenerateRequest, bool) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return req, false
	}

	req.Language = strings.TrimSpace(req.Language)
	req.Topic = strings.TrimSpace(req.Topic)

	if req.Language == "" || req.Topic == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "language and topic are required"})
		return req, false
	}
	if !validLevels[req.Level] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "level must be 'beginner', 'intermediate', or 'advanced'"})
		return req, false
	}
	return req, true
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, tutor.ErrServiceUnavailable) {
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "There was an issue with the AI service. Please try again later."})
		return
	}
	log.Printf("[handler] %s error: %v", op, err)
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
