package models

import "time"

type User struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Password        string    `json:"-"`
	Interest        string    `json:"interest"`
	Goal            string    `json:"goal"`
	AssessmentScore *int      `json:"assessment_score,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasCompletedAssessment reports whether the initial skill assessment has
// been graded for this user. The score is set exactly once.
func (u User) HasCompletedAssessment() bool {
	return u.AssessmentScore != nil
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Interest        string `json:"interest"`
	Goal            string `json:"goal"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the token plus the page the flow controller routed
// the user to, so the client never has to guess where to land.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
	Page  string `json:"page"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
