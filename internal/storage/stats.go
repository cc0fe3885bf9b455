package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CategoryStat aggregates one user's finished quizzes in one category.
type CategoryStat struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	CategoryID   string    `json:"categoryId"`
	Attempts     int       `json:"attempts"`
	Completed    int       `json:"completed"`
	AverageScore float64   `json:"averageScore"`
	LastAttempt  time.Time `json:"lastAttempt"`
}

// Attempt is one finished quiz.
type Attempt struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	CategoryID string    `json:"categoryId"`
	QuizID     string    `json:"quizId"`
	Score      float64   `json:"score"`
	Correct    int       `json:"correct"`
	Total      int       `json:"total"`
	Difficulty string    `json:"difficulty,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

const statColumns = `id, user_id, category_id, attempts, completed, average_score, last_attempt`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStat(r rowScanner) (CategoryStat, error) {
	var (
		st   CategoryStat
		last any
	)
	err := r.Scan(&st.ID, &st.UserID, &st.CategoryID, &st.Attempts, &st.Completed, &st.AverageScore, &last)
	st.LastAttempt = parseTime(last)
	return st, err
}

// CategoryStat returns the stat for (userID, categoryID), or nil when the
// user has not finished a quiz in that category.
func (s *Store) CategoryStat(ctx context.Context, userID, categoryID string) (*CategoryStat, error) {
	st, err := scanStat(s.db.QueryRowContext(ctx,
		`SELECT `+statColumns+` FROM category_stats WHERE user_id = ? AND category_id = ?`,
		userID, categoryID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: category stat: %w", err)
	}
	return &st, nil
}

// CategoryStats returns all of a user's stats, most recent first.
func (s *Store) CategoryStats(ctx context.Context, userID string) ([]CategoryStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+statColumns+` FROM category_stats WHERE user_id = ? ORDER BY last_attempt DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("storage: category stats: %w", err)
	}
	defer rows.Close()

	stats := []CategoryStat{}
	for rows.Next() {
		st, err := scanStat(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: category stats: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: category stats: %w", err)
	}
	return stats, nil
}

// UpdateCategoryStat loads the stat for (userID, categoryID), or a zero
// stat when there is none, lets fn modify it and saves the result, all in
// one transaction.
func (s *Store) UpdateCategoryStat(ctx context.Context, userID, categoryID string, fn func(*CategoryStat)) (CategoryStat, error) {
	var st CategoryStat
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		st, err = updateStat(ctx, tx, userID, categoryID, fn)
		return err
	})
	if err != nil {
		return CategoryStat{}, fmt.Errorf("storage: update category stat: %w", err)
	}
	return st, nil
}

// CompleteQuiz updates the category stat like UpdateCategoryStat and
// records the attempt in the same transaction.
func (s *Store) CompleteQuiz(ctx context.Context, a Attempt, fn func(*CategoryStat)) (CategoryStat, error) {
	if a.ID == "" {
		a.ID = newID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now()
	}

	var st CategoryStat
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if st, err = updateStat(ctx, tx, a.UserID, a.CategoryID, fn); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO quiz_attempts (id, user_id, category_id, quiz_id, score, correct, total, difficulty, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.UserID, a.CategoryID, a.QuizID, a.Score, a.Correct, a.Total, a.Difficulty, a.CreatedAt)
		return err
	})
	if err != nil {
		return CategoryStat{}, fmt.Errorf("storage: complete quiz: %w", err)
	}
	return st, nil
}

func updateStat(ctx context.Context, tx *sql.Tx, userID, categoryID string, fn func(*CategoryStat)) (CategoryStat, error) {
	st, err := scanStat(tx.QueryRowContext(ctx,
		`SELECT `+statColumns+` FROM category_stats WHERE user_id = ? AND category_id = ?`,
		userID, categoryID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		st = CategoryStat{ID: newID(), UserID: userID, CategoryID: categoryID}
	case err != nil:
		return CategoryStat{}, err
	}

	fn(&st)
	st.UserID, st.CategoryID = userID, categoryID

	_, err = tx.ExecContext(ctx,
		`INSERT INTO category_stats (`+statColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, category_id) DO UPDATE SET
			attempts = excluded.attempts,
			completed = excluded.completed,
			average_score = excluded.average_score,
			last_attempt = excluded.last_attempt`,
		st.ID, st.UserID, st.CategoryID, st.Attempts, st.Completed, st.AverageScore, st.LastAttempt)
	if err != nil {
		return CategoryStat{}, err
	}
	return st, nil
}

// RecentAttempts returns a user's latest attempts, newest first.
func (s *Store) RecentAttempts(ctx context.Context, userID string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, category_id, quiz_id, score, correct, total, difficulty, created_at
		 FROM quiz_attempts WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: recent attempts: %w", err)
	}
	defer rows.Close()

	attempts := []Attempt{}
	for rows.Next() {
		var (
			a       Attempt
			created any
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.CategoryID, &a.QuizID, &a.Score, &a.Correct, &a.Total, &a.Difficulty, &created); err != nil {
			return nil, fmt.Errorf("storage: recent attempts: %w", err)
		}
		a.CreatedAt = parseTime(created)
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: recent attempts: %w", err)
	}
	return attempts, nil
}
