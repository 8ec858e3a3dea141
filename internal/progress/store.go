// Package progress is the append-only conversation log: tutor exchanges,
// graded challenge solutions, and helpfulness votes.
package progress

import (
	"database/sql"
	"fmt"

	"github.com/techitup/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// LogQuestion records one tutor exchange. Called only after a successful
// completion response.
func (s *Store) LogQuestion(userID int64, question, answer string) error {
	_, err := s.db.Exec(
		`INSERT INTO user_questions (user_id, question, answer) VALUES ($1, $2, $3)`,
		userID, question, answer,
	)
	if err != nil {
		return fmt.Errorf("log question: %w", err)
	}
	return nil
}

// LogChallenge records a submitted solution with the tutor's feedback.
func (s *Store) LogChallenge(userID int64, challenge, solution, feedback string) error {
	_, err := s.db.Exec(
		`INSERT INTO user_challenges (user_id, challenge, solution, feedback) VALUES ($1, $2, $3, $4)`,
		userID, challenge, solution, feedback,
	)
	if err != nil {
		return fmt.Errorf("log challenge: %w", err)
	}
	return nil
}

// LogFeedback records one helpfulness vote on a displayed answer.
func (s *Store) LogFeedback(userID int64, vote models.FeedbackVote) error {
	_, err := s.db.Exec(
		`INSERT INTO user_feedback (user_id, question, answer, helpful) VALUES ($1, $2, $3, $4)`,
		userID, vote.Question, vote.Answer, vote.Helpful,
	)
	if err != nil {
		return fmt.Errorf("log feedback: %w", err)
	}
	return nil
}

// HistoryFor returns a user's logged questions and challenges, newest
// first.
func (s *Store) HistoryFor(userID int64) (*models.ProgressResponse, error) {
	rows, err := s.db.Query(
		`SELECT id, question, answer, created_at
		 FROM user_questions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.QuestionRecord
	for rows.Next() {
		var q models.QuestionRecord
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	chRows, err := s.db.Query(
		`SELECT id, challenge, solution, feedback, created_at
		 FROM user_challenges WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query challenges: %w", err)
	}
	defer chRows.Close()

	var challenges []models.ChallengeRecord
	for chRows.Next() {
		var c models.ChallengeRecord
		if err := chRows.Scan(&c.ID, &c.Challenge, &c.Solution, &c.Feedback, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		challenges = append(challenges, c)
	}
	if err := chRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate challenges: %w", err)
	}

	if questions == nil {
		questions = []models.QuestionRecord{}
	}
	if challenges == nil {
		challenges = []models.ChallengeRecord{}
	}

	return &models.ProgressResponse{Questions: questions, Challenges: challenges}, nil
}
