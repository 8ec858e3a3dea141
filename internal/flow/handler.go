package flow

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/techitup/backend/internal/models"
	"github.com/techitup/backend/internal/users"
)

type Handler struct {
	store    *users.Store
	sessions *Registry
}

func NewHandler(store *users.Store, sessions *Registry) *Handler {
	return &Handler{store: store, sessions: sessions}
}

// GetSession reports the page the client should render, re-derived from
// the persisted facts on every call.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	user, err := h.store.GetByID(userID)
	if err != nil {
		log.Printf("[handler] GetSession error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	completed := user.HasCompletedAssessment()
	sess := h.sessions.GetOrStart(userID, user.Username, Route("", true, completed))

	page := Route(sess.Page, true, completed)
	sess.Page = page

	writeJSON(w, http.StatusOK, models.SessionResponse{
		Username: user.Username,
		Page:     string(page),
		Sidebar:  completed,
	})
}

// Navigate applies a sidebar selection. The sidebar is only offered once
// the assessment is complete.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.store.GetByID(userID)
	if err != nil {
		log.Printf("[handler] Navigate error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	completed := user.HasCompletedAssessment()
	sess := h.sessions.GetOrStart(userID, user.Username, Route("", true, completed))

	if err := Navigate(sess, Page(req.Page), completed); err != nil {
		switch {
		case errors.Is(err, ErrUnknownPage):
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Unknown page: " + req.Page})
		case errors.Is(err, ErrAssessmentRequired):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Assessment must be completed first"})
		default:
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, models.SessionResponse{
		Username: user.Username,
		Page:     string(sess.Page),
		Sidebar:  completed,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
