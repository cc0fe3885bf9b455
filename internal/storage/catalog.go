package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/quiz-arcade/internal/config"
)

// Category groups quizzes on the home page.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Quizzes     []Quiz `json:"quizzes"`
}

// Quiz is an ordered set of questions in one category.
type Quiz struct {
	ID          string     `json:"id"`
	CategoryID  string     `json:"categoryId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Image       string     `json:"image,omitempty"`
	Questions   []Question `json:"questions"`
}

// Question is one multiple-choice question. Difficulty may be empty.
type Question struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Difficulty string   `json:"difficulty,omitempty"`
	Options    []Option `json:"options"`
}

// Option is one answer to a question.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// SeedResult counts what SeedCatalog wrote.
type SeedResult struct {
	Categories int `json:"categories"`
	Quizzes    int `json:"quizzes"`
	Questions  int `json:"questions"`
}

// ListCategories returns every category with its quizzes, questions and
// options, ordered by name, title and position.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, image FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("storage: list categories: %w", err)
	}
	defer rows.Close()

	var cats []Category
	index := map[string]int{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image); err != nil {
			return nil, fmt.Errorf("storage: list categories: %w", err)
		}
		c.Quizzes = []Quiz{}
		index[c.ID] = len(cats)
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: list categories: %w", err)
	}

	quizzes, err := s.quizzes(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, q := range quizzes {
		if i, ok := index[q.CategoryID]; ok {
			cats[i].Quizzes = append(cats[i].Quizzes, q)
		}
	}
	return cats, nil
}

// Quiz returns one quiz with its questions and options.
func (s *Store) Quiz(ctx context.Context, id string) (Quiz, error) {
	quizzes, err := s.quizzes(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	if len(quizzes) == 0 {
		return Quiz{}, fmt.Errorf("storage: quiz %q: %w", id, ErrNotFound)
	}
	return quizzes[0], nil
}

// quizzes loads quizzes (all, or only id) and fills in questions and
// options with one query each.
func (s *Store) quizzes(ctx context.Context, id string) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category_id, title, description, image FROM quizzes
		 WHERE ? = '' OR id = ? ORDER BY title`, id, id)
	if err != nil {
		return nil, fmt.Errorf("storage: list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []Quiz
	qIndex := map[string]int{}
	for rows.Next() {
		var q Quiz
		if err := rows.Scan(&q.ID, &q.CategoryID, &q.Title, &q.Description, &q.Image); err != nil {
			return nil, fmt.Errorf("storage: list quizzes: %w", err)
		}
		q.Questions = []Question{}
		qIndex[q.ID] = len(quizzes)
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: list quizzes: %w", err)
	}
	if len(quizzes) == 0 {
		return nil, nil
	}

	qrows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, text, difficulty FROM questions
		 WHERE ? = '' OR quiz_id = ? ORDER BY quiz_id, position`, id, id)
	if err != nil {
		return nil, fmt.Errorf("storage: list questions: %w", err)
	}
	defer qrows.Close()

	type ref struct{ quiz, question int }
	questions := map[string]ref{}
	for qrows.Next() {
		var (
			question Question
			quizID   string
		)
		if err := qrows.Scan(&question.ID, &quizID, &question.Text, &question.Difficulty); err != nil {
			return nil, fmt.Errorf("storage: list questions: %w", err)
		}
		qi, ok := qIndex[quizID]
		if !ok {
			continue
		}
		question.Options = []Option{}
		questions[question.ID] = ref{qi, len(quizzes[qi].Questions)}
		quizzes[qi].Questions = append(quizzes[qi].Questions, question)
	}
	if err := qrows.Err(); err != nil {
		return nil, fmt.Errorf("storage: list questions: %w", err)
	}

	orows, err := s.db.QueryContext(ctx,
		`SELECT o.id, o.question_id, o.text, o.is_correct FROM options o
		 JOIN questions q ON q.id = o.question_id
		 WHERE ? = '' OR q.quiz_id = ? ORDER BY o.question_id, o.position`, id, id)
	if err != nil {
		return nil, fmt.Errorf("storage: list options: %w", err)
	}
	defer orows.Close()

	for orows.Next() {
		var (
			o          Option
			questionID string
		)
		if err := orows.Scan(&o.ID, &questionID, &o.Text, &o.IsCorrect); err != nil {
			return nil, fmt.Errorf("storage: list options: %w", err)
		}
		if r, ok := questions[questionID]; ok {
			q := &quizzes[r.quiz].Questions[r.question]
			q.Options = append(q.Options, o)
		}
	}
	if err := orows.Err(); err != nil {
		return nil, fmt.Errorf("storage: list options: %w", err)
	}
	return quizzes, nil
}

// SeedCatalog writes the catalog in one transaction. Categories are
// matched by name and quizzes by title within their category, so ids stay
// stable across reseeds; a matched quiz has its questions replaced.
func (s *Store) SeedCatalog(ctx context.Context, cat config.Catalog) (SeedResult, error) {
	if err := cat.Validate(); err != nil {
		return SeedResult{}, fmt.Errorf("storage: seed catalog: %w", err)
	}

	var res SeedResult
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, c := range cat.Categories {
			var catID string
			err := tx.QueryRowContext(ctx,
				`INSERT INTO categories (id, name, description, image) VALUES (?, ?, ?, ?)
				 ON CONFLICT (name) DO UPDATE SET description = excluded.description, image = excluded.image
				 RETURNING id`,
				newID(), c.Name, c.Description, c.Image,
			).Scan(&catID)
			if err != nil {
				return fmt.Errorf("category %q: %w", c.Name, err)
			}
			res.Categories++

			for _, q := range c.Quizzes {
				n, err := seedQuiz(ctx, tx, catID, q)
				if err != nil {
					return fmt.Errorf("quiz %q: %w", q.Title, err)
				}
				res.Quizzes++
				res.Questions += n
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("storage: seed catalog: %w", err)
	}
	return res, nil
}

func seedQuiz(ctx context.Context, tx *sql.Tx, catID string, q config.CatalogQuiz) (int, error) {
	var quizID string
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM quizzes WHERE category_id = ? AND title = ?`, catID, q.Title,
	).Scan(&quizID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		quizID = newID()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO quizzes (id, category_id, title, description, image) VALUES (?, ?, ?, ?, ?)`,
			quizID, catID, q.Title, q.Description, q.Image)
	case err == nil:
		if _, err = tx.ExecContext(ctx,
			`UPDATE quizzes SET description = ?, image = ? WHERE id = ?`,
			q.Description, q.Image, quizID); err == nil {
			_, err = tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, quizID)
		}
	}
	if err != nil {
		return 0, err
	}

	for i, question := range q.Questions {
		questionID := newID()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (id, quiz_id, position, text, difficulty) VALUES (?, ?, ?, ?, ?)`,
			questionID, quizID, i, question.Text, question.Difficulty); err != nil {
			return 0, err
		}
		for j, o := range question.Options {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO options (id, question_id, position, text, is_correct) VALUES (?, ?, ?, ?, ?)`,
				newID(), questionID, j, o.Text, o.Correct); err != nil {
				return 0, err
			}
		}
	}
	return len(q.Questions), nil
}
