package progress

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/techitup/backend/internal/models"
)

// HistoryStore is the read side of the log the handler serves from.
// *Store satisfies it.
type HistoryStore interface {
	HistoryFor(userID int64) (*models.ProgressResponse, error)
}

type Handler struct {
	store HistoryStore
}

func NewHandler(store HistoryStore) *Handler {
	return &Handler{store: store}
}

// GetProgress serves the Progress page: all logged questions and
// challenges for the authenticated user, newest first.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.store.HistoryFor(userID)
	if err != nil {
		log.Printf("[handler] GetProgress error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get progress"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
