package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theplug/theplug/internal/models"
)

type QuestionRepository struct {
	db *DB
}

func NewQuestionRepository(db *DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Insert(sessionID string, qa models.QA) error {
	if qa.AskedAt.IsZero() {
		qa.AskedAt = time.Now()
	}

	query := `
		INSERT INTO questions (id, session_id, question, answer, asked_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.conn.Exec(query,
		uuid.New().String(),
		sessionID,
		qa.Question,
		qa.Answer,
		qa.AskedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

func (r *QuestionRepository) ListBySession(sessionID string) ([]models.QA, error) {
	query := `
		SELECT question, answer, asked_at
		FROM questions
		WHERE session_id = ?
		ORDER BY asked_at ASC`

	rows, err := r.db.conn.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var history []models.QA
	for rows.Next() {
		var qa models.QA
		if err := rows.Scan(&qa.Question, &qa.Answer, &qa.AskedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		history = append(history, qa)
	}
	return history, rows.Err()
}

// Recent returns the newest answered questions across all sessions.
func (r *QuestionRepository) Recent(limit int) ([]models.QA, error) {
	query := `
		SELECT question, answer, asked_at
		FROM questions
		ORDER BY asked_at DESC
		LIMIT ?`

	rows, err := r.db.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent questions: %w", err)
	}
	defer rows.Close()

	var recent []models.QA
	for rows.Next() {
		var qa models.QA
		if err := rows.Scan(&qa.Question, &qa.Answer, &qa.AskedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		recent = append(recent, qa)
	}
	return recent, rows.Err()
}

func (r *QuestionRepository) Count() (int, error) {
	var count int
	if err := r.db.conn.QueryRow("SELECT COUNT(*) FROM questions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}
