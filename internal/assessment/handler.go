package assessment

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/techitup/backend/internal/flow"
	"github.com/techitup/backend/internal/models"
)

// UserStore is the slice of the credential store these handlers need.
// *users.Store satisfies it.
type UserStore interface {
	GetByID(userID int64) (*models.User, error)
	RecordScore(userID int64, score int) error
	HasCompletedAssessment(userID int64) (bool, error)
}

type Handler struct {
	store    UserStore
	sessions *flow.Registry
}

func NewHandler(store UserStore, sessions *flow.Registry) *Handler {
	return &Handler{store: store, sessions: sessions}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// GetAssessment serves the quiz for the user's declared interest. The
// answer key never leaves the server. A user with a score on file is
// routed away, never back into the quiz.
func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	user, err := h.store.GetByID(userID)
	if err != nil {
		log.Printf("[handler] GetAssessment error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if user.HasCompletedAssessment() {
		sess := h.sessions.GetOrStart(userID, user.Username, flow.PageChat)
		writeJSON(w, http.StatusConflict, models.AssessmentResult{
			Score:   *user.AssessmentScore,
			Total:   5,
			Message: "Assessment already completed",
			Page:    string(flow.Route(sess.Page, true, true)),
		})
		return
	}

	bankQuestions, err := QuestionsFor(user.Interest)
	if err != nil {
		log.Printf("[handler] GetAssessment: no bank for interest %q", user.Interest)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "No question bank configured for interest " + user.Interest})
		return
	}

	questions := make([]models.AssessmentQuestion, 0, len(bankQuestions))
	for _, q := range bankQuestions {
		questions = append(questions, models.AssessmentQuestion{Question: q.Text, Options: q.Options})
	}

	writeJSON(w, http.StatusOK, models.AssessmentResponse{Interest: user.Interest, Questions: questions})
}

// SubmitAssessment grades the submitted answers, persists the score, and
// routes the user to the feedback page.
func (h *Handler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.store.GetByID(userID)
	if err != nil {
		log.Printf("[handler] SubmitAssessment error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	// The score is set exactly once; a regrade attempt is routed away.
	if user.HasCompletedAssessment() {
		sess := h.sessions.GetOrStart(userID, user.Username, flow.PageChat)
		writeJSON(w, http.StatusConflict, models.AssessmentResult{
			Score:   *user.AssessmentScore,
			Total:   5,
			Message: "Assessment already completed",
			Page:    string(flow.Route(sess.Page, true, true)),
		})
		return
	}

	key, err := AnswerKey(user.Interest)
	if err != nil {
		log.Printf("[handler] SubmitAssessment: no key for interest %q", user.Interest)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "No question bank configured for interest " + user.Interest})
		return
	}

	score := Score(req.Answers, key)

	if err := h.store.RecordScore(userID, score); err != nil {
		log.Printf("[handler] SubmitAssessment error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save assessment result"})
		return
	}

	sess := h.sessions.GetOrStart(userID, user.Username, flow.PageFeedback)
	sess.Page = flow.PageFeedback

	writeJSON(w, http.StatusOK, models.AssessmentResult{
		Score:   score,
		Total:   len(key),
		Message: feedbackMessage(score, len(key)),
		Page:    string(flow.PageFeedback),
	})
}

// Proceed acknowledges the feedback page and moves the user into chat.
func (h *Handler) Proceed(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	completed, err := h.store.HasCompletedAssessment(userID)
	if err != nil {
		log.Printf("[handler] Proceed error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	if !completed {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Assessment must be completed first"})
		return
	}

	// The session usually exists by now; a cold one needs the username.
	sess, ok := h.sessions.Get(userID)
	if !ok {
		user, err := h.store.GetByID(userID)
		if err != nil {
			log.Printf("[handler] Proceed error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
			return
		}
		sess = h.sessions.GetOrStart(userID, user.Username, flow.PageChat)
	}
	if err := flow.Navigate(sess, flow.PageChat, true); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"page": string(flow.PageChat)})
}

// feedbackMessage mirrors the assessment feedback page copy: the praise
// branch opens strictly above a score of 2.
func feedbackMessage(score, total int) string {
	msg := fmt.Sprintf("You answered %d out of %d questions correctly! ", score, total)
	if score > 2 {
		return msg + "Great job! You have a good understanding of basic programming concepts."
	}
	return msg + "Keep practicing! You'll get better with time."
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
