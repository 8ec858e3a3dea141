// Package users is the credential store: account records, password
// digests, and the persisted assessment score.
package users

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/techitup/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAlreadyExists      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create registers a new account. The password is stored as a salted
// bcrypt digest, never as plaintext. The assessment score is left unset.
func (s *Store) Create(username, password, interest, goal string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user models.User
	err = s.db.QueryRow(
		`INSERT INTO users (username, password, interest, goal, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, username, interest, goal, created_at, updated_at`,
		username, string(hashed), interest, goal, time.Now(), time.Now(),
	).Scan(&user.ID, &user.Username, &user.Interest, &user.Goal, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate verifies a password against the stored digest and returns
// the account. ErrInvalidCredentials covers both unknown usernames and
// wrong passwords so a caller cannot distinguish the two.
func (s *Store) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	var hashed string
	err := s.db.QueryRow(
		`SELECT id, username, password, interest, COALESCE(goal, ''), assessment_score, created_at, updated_at
		 FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &hashed, &user.Interest, &user.Goal,
		&user.AssessmentScore, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetByID fetches an account without its digest.
func (s *Store) GetByID(userID int64) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		`SELECT id, username, interest, COALESCE(goal, ''), assessment_score, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.Username, &user.Interest, &user.Goal,
		&user.AssessmentScore, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// RecordScore persists the assessment score. The flow only grades once,
// but the write itself is an idempotent overwrite.
func (s *Store) RecordScore(userID int64, score int) error {
	_, err := s.db.Exec(
		`UPDATE users SET assessment_score = $1, updated_at = NOW() WHERE id = $2`,
		score, userID,
	)
	if err != nil {
		return fmt.Errorf("record score: %w", err)
	}
	return nil
}

// HasCompletedAssessment reports whether a score is on file.
func (s *Store) HasCompletedAssessment(userID int64) (bool, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		`SELECT assessment_score FROM users WHERE id = $1`, userID,
	).Scan(&score)
	if err != nil {
		return false, fmt.Errorf("check assessment: %w", err)
	}
	return score.Valid, nil
}
