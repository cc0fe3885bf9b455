// Package quiz holds the quiz-finish workflow and the quiz setup rules
// shared by the HTTP API and the terminal front-end.
package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/storage"
)

var (
	// ErrInvalidSubmission is returned for malformed finish requests.
	// Nothing is written when it is returned.
	ErrInvalidSubmission = errors.New("quiz: invalid submission")

	// ErrUnauthenticated is returned when no user identity is supplied.
	ErrUnauthenticated = errors.New("quiz: unauthenticated")
)

// Response is one answered question. Pointer fields distinguish a missing
// value from a zero one.
type Response struct {
	QuestionID string `json:"questionId,omitempty"`
	OptionID   string `json:"optionId"`
	IsCorrect  *bool  `json:"isCorrect"`
}

// Submission is the body of a quiz-finish request.
type Submission struct {
	CategoryID string     `json:"categoryId"`
	QuizID     string     `json:"quizId"`
	Score      *float64   `json:"score"`
	Responses  []Response `json:"responses"`
	Difficulty string     `json:"difficulty,omitempty"`
}

// DecodeSubmission reads a JSON submission. Type mismatches, such as a
// string score, are reported as ErrInvalidSubmission.
func DecodeSubmission(r io.Reader) (Submission, error) {
	var sub Submission
	if err := json.NewDecoder(r).Decode(&sub); err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	return sub, nil
}

// Validate checks the submission shape.
func (s Submission) Validate() error {
	switch {
	case s.CategoryID == "":
		return fmt.Errorf("%w: categoryId is required", ErrInvalidSubmission)
	case s.QuizID == "":
		return fmt.Errorf("%w: quizId is required", ErrInvalidSubmission)
	case s.Score == nil:
		return fmt.Errorf("%w: score is required", ErrInvalidSubmission)
	case math.IsNaN(*s.Score) || *s.Score < 0 || *s.Score > 100:
		return fmt.Errorf("%w: score %v outside [0, 100]", ErrInvalidSubmission, *s.Score)
	case s.Responses == nil:
		return fmt.Errorf("%w: responses must be an array", ErrInvalidSubmission)
	}
	for i, r := range s.Responses {
		if r.OptionID == "" || r.IsCorrect == nil {
			return fmt.Errorf("%w: response %d needs optionId and isCorrect", ErrInvalidSubmission, i)
		}
	}
	return nil
}

// Correct counts the responses marked correct.
func (s Submission) Correct() int {
	n := 0
	for _, r := range s.Responses {
		if r.IsCorrect != nil && *r.IsCorrect {
			n++
		}
	}
	return n
}

// Store is the persistence the service needs.
type Store interface {
	UpsertUser(ctx context.Context, externalID string) (storage.User, error)
	CompleteQuiz(ctx context.Context, a storage.Attempt, fn func(*storage.CategoryStat)) (storage.CategoryStat, error)
}

// Service records finished quizzes.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService returns a service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// FinishQuiz validates sub, ensures the user exists and folds the score
// into the user's category stat. The attempt is recorded alongside.
func (s *Service) FinishQuiz(ctx context.Context, externalID string, sub Submission) (storage.CategoryStat, error) {
	if externalID == "" {
		return storage.CategoryStat{}, ErrUnauthenticated
	}
	if err := sub.Validate(); err != nil {
		return storage.CategoryStat{}, err
	}

	user, err := s.store.UpsertUser(ctx, externalID)
	if err != nil {
		return storage.CategoryStat{}, fmt.Errorf("quiz: finish: %w", err)
	}

	at := s.now()
	score := *sub.Score
	attempt := storage.Attempt{
		UserID:     user.ID,
		CategoryID: sub.CategoryID,
		QuizID:     sub.QuizID,
		Score:      score,
		Correct:    sub.Correct(),
		Total:      len(sub.Responses),
		Difficulty: sub.Difficulty,
		CreatedAt:  at,
	}
	st, err := s.store.CompleteQuiz(ctx, attempt, func(st *storage.CategoryStat) {
		Fold(st, score, at)
	})
	if err != nil {
		return storage.CategoryStat{}, fmt.Errorf("quiz: finish: %w", err)
	}
	return st, nil
}

// Fold adds one completed quiz to st. The average is weighted by the number
// of quizzes already completed, so every score counts equally.
func Fold(st *storage.CategoryStat, score float64, at time.Time) {
	st.AverageScore = (st.AverageScore*float64(st.Completed) + score) / float64(st.Completed+1)
	st.Attempts++
	st.Completed++
	st.LastAttempt = at
}
