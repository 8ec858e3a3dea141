package flow

import (
	"sync"

	"github.com/techitup/backend/internal/models"
)

// Session is the ephemeral per-user state: the next-page directive, the
// in-progress conversation transcript, the pending challenge, and the
// one-shot flags that guard double-submitting side effects. It lives only
// in process memory; persisted facts (score, history) belong to the stores.
//
// Each session serves a single interactive user and each user action is
// one synchronous pass through a handler, so sessions are not individually
// locked; the registry lock guards the map itself.
type Session struct {
	UserID   int64
	Username string
	Page     Page

	Conversation []models.ChatMessage
	LastQuestion string
	LastAnswer   string

	Challenge         string
	SolutionSubmitted bool
	FeedbackCollected bool
}

// ResetOneShots clears the flags that gate one-shot actions. Called on
// navigation transitions only, never mid-page.
func (s *Session) ResetOneShots() {
	s.SolutionSubmitted = false
	s.FeedbackCollected = false
}

// Registry holds the live sessions, keyed by user ID.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]*Session)}
}

// Start creates (or replaces) the session for a user, e.g. on login or
// registration. A fresh login always starts with a clean transcript.
func (r *Registry) Start(userID int64, username string, page Page) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &Session{UserID: userID, Username: username, Page: page}
	r.sessions[userID] = s
	return s
}

func (r *Registry) Get(userID int64) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// GetOrStart returns the user's session, creating one with the given page
// if the process has no record of them (e.g. after a restart with a still
// valid token).
func (r *Registry) GetOrStart(userID int64, username string, page Page) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[userID]; ok {
		return s
	}
	s := &Session{UserID: userID, Username: username, Page: page}
	r.sessions[userID] = s
	return s
}

// End destroys the session. Logout clears all ephemeral state; the next
// request from this user is anonymous.
func (r *Registry) End(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}
