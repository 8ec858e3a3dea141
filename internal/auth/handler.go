package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/techitup/backend/internal/assessment"
	"github.com/techitup/backend/internal/flow"
	"github.com/techitup/backend/internal/models"
	"github.com/techitup/backend/internal/users"
)

// JWTSecret is the HMAC signing key for auth tokens.
// This is a server-side secret — it never leaves the backend.
var JWTSecret = []byte("techitup-staging-signing-key-2026")

// UserStore is the slice of the credential store these handlers need.
// *users.Store satisfies it.
type UserStore interface {
	Create(username, password, interest, goal string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetByID(userID int64) (*models.User, error)
}

type Handler struct {
	store    UserStore
	sessions *flow.Registry
}

func NewHandler(store UserStore, sessions *flow.Registry) *Handler {
	return &Handler{store: store, sessions: sessions}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Username and password are required"})
		return
	}
	if req.Password != req.ConfirmPassword {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Passwords do not match!"})
		return
	}
	if !assessment.KnownInterest(req.Interest) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Interest must be one of: " + strings.Join(assessment.Categories, ", ")})
		return
	}

	user, err := h.store.Create(req.Username, req.Password, req.Interest, req.Goal)
	if err != nil {
		if errors.Is(err, users.ErrAlreadyExists) {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "User already exists!"})
			return
		}
		log.Printf("[auth] register error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create account"})
		return
	}

	token, err := generateToken(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	// A new account has no score on file, so the flow pins it to the
	// assessment.
	sess := h.sessions.Start(user.ID, user.Username, flow.Route("", true, false))

	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: *user, Page: string(sess.Page)})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Username and password are required"})
		return
	}

	user, err := h.store.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid username or password"})
			return
		}
		log.Printf("[auth] login error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	token, err := generateToken(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	// Returning users with a score on file land in chat; everyone else
	// takes the assessment first.
	sess := h.sessions.Start(user.ID, user.Username, flow.Route(flow.PageChat, true, user.HasCompletedAssessment()))

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: *user, Page: string(sess.Page)})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	h.sessions.End(userID)
	writeJSON(w, http.StatusOK, map[string]string{"page": string(flow.PageLoggedOut)})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	user, err := h.store.GetByID(userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func generateToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
