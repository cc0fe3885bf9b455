package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/storage"
)

type fakeStore struct {
	users    int
	attempts []storage.Attempt
	stat     *storage.CategoryStat
	err      error
}

func (f *fakeStore) UpsertUser(_ context.Context, ext string) (storage.User, error) {
	f.users++
	return storage.User{ID: "u-" + ext, ExternalID: ext}, nil
}

func (f *fakeStore) CompleteQuiz(_ context.Context, a storage.Attempt, fn func(*storage.CategoryStat)) (storage.CategoryStat, error) {
	if f.err != nil {
		return storage.CategoryStat{}, f.err
	}
	if f.stat == nil {
		f.stat = &storage.CategoryStat{ID: "s1", UserID: a.UserID, CategoryID: a.CategoryID}
	}
	fn(f.stat)
	f.attempts = append(f.attempts, a)
	return *f.stat, nil
}

func ptr[T any](v T) *T { return &v }

func valid(score float64) Submission {
	return Submission{
		CategoryID: "cat",
		QuizID:     "quiz",
		Score:      ptr(score),
		Responses: []Response{
			{OptionID: "o1", IsCorrect: ptr(true)},
			{OptionID: "o2", IsCorrect: ptr(false)},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Submission)
		valid bool
	}{
		{"ok", func(*Submission) {}, true},
		{"score zero", func(s *Submission) { s.Score = ptr(0.0) }, true},
		{"score hundred", func(s *Submission) { s.Score = ptr(100.0) }, true},
		{"empty responses", func(s *Submission) { s.Responses = []Response{} }, true},
		{"missing category", func(s *Submission) { s.CategoryID = "" }, false},
		{"missing quiz", func(s *Submission) { s.QuizID = "" }, false},
		{"missing score", func(s *Submission) { s.Score = nil }, false},
		{"negative score", func(s *Submission) { s.Score = ptr(-1.0) }, false},
		{"score over 100", func(s *Submission) { s.Score = ptr(100.5) }, false},
		{"responses absent", func(s *Submission) { s.Responses = nil }, false},
		{"response without option", func(s *Submission) { s.Responses[0].OptionID = "" }, false},
		{"response without flag", func(s *Submission) { s.Responses[1].IsCorrect = nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := valid(50)
			tt.edit(&sub)
			err := sub.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidSubmission) {
				t.Errorf("Validate = %v, want ErrInvalidSubmission", err)
			}
		})
	}
}

func TestDecodeSubmission(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{"ok", `{"categoryId":"c","quizId":"q","score":80,"responses":[{"optionId":"o","isCorrect":true}]}`, true},
		{"string score", `{"categoryId":"c","quizId":"q","score":"80","responses":[]}`, false},
		{"numeric category", `{"categoryId":1,"quizId":"q","score":80,"responses":[]}`, false},
		{"responses object", `{"categoryId":"c","quizId":"q","score":80,"responses":{}}`, false},
		{"string flag", `{"categoryId":"c","quizId":"q","score":80,"responses":[{"optionId":"o","isCorrect":"yes"}]}`, false},
		{"responses null", `{"categoryId":"c","quizId":"q","score":80,"responses":null}`, false},
		{"not json", `score=80`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := DecodeSubmission(strings.NewReader(tt.body))
			if err == nil {
				err = sub.Validate()
			}
			if tt.valid != (err == nil) {
				t.Fatalf("err = %v, want valid=%v", err, tt.valid)
			}
			if err != nil && !errors.Is(err, ErrInvalidSubmission) {
				t.Errorf("err = %v, want ErrInvalidSubmission", err)
			}
		})
	}
}

func TestFinishQuizRunningMean(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	ctx := context.Background()

	first, err := svc.FinishQuiz(ctx, "ext", valid(80))
	if err != nil {
		t.Fatal(err)
	}
	if first.Attempts != 1 || first.Completed != 1 || first.AverageScore != 80 {
		t.Fatalf("first = %+v", first)
	}

	second, err := svc.FinishQuiz(ctx, "ext", valid(60))
	if err != nil {
		t.Fatal(err)
	}
	if second.Attempts != 2 || second.Completed != 2 || second.AverageScore != 70 {
		t.Fatalf("second = %+v, want avg 70", second)
	}

	third, _ := svc.FinishQuiz(ctx, "ext", valid(100))
	if third.AverageScore != 80 {
		t.Errorf("third avg = %v, want 80", third.AverageScore)
	}
}

func TestFinishQuizRecordsAttempt(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return at }

	sub := valid(50)
	sub.Difficulty = "hard"
	st, err := svc.FinishQuiz(context.Background(), "ext", sub)
	if err != nil {
		t.Fatal(err)
	}
	if !st.LastAttempt.Equal(at) {
		t.Errorf("last attempt = %v, want %v", st.LastAttempt, at)
	}
	if len(store.attempts) != 1 {
		t.Fatalf("attempts = %d", len(store.attempts))
	}
	a := store.attempts[0]
	if a.UserID != "u-ext" || a.QuizID != "quiz" || a.Correct != 1 || a.Total != 2 || a.Difficulty != "hard" {
		t.Errorf("attempt = %+v", a)
	}
}

func TestFinishQuizRejectsWithoutWriting(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	if _, err := svc.FinishQuiz(context.Background(), "", valid(50)); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("anonymous err = %v", err)
	}
	bad := valid(50)
	bad.Score = ptr(150.0)
	if _, err := svc.FinishQuiz(context.Background(), "ext", bad); !errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("invalid err = %v", err)
	}
	if store.users != 0 || len(store.attempts) != 0 {
		t.Errorf("rejected requests wrote: users=%d attempts=%d", store.users, len(store.attempts))
	}
}

func TestFinishQuizStoreFailure(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(&fakeStore{err: boom})

	_, err := svc.FinishQuiz(context.Background(), "ext", valid(50))
	if !errors.Is(err, boom) || errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("err = %v, want wrapped store error", err)
	}
}

func TestFinishQuizWithSQLite(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/quiz.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	svc := NewService(store)
	ctx := context.Background()
	for _, score := range []float64{80, 60} {
		if _, err := svc.FinishQuiz(ctx, "clerk-1", valid(score)); err != nil {
			t.Fatal(err)
		}
	}

	user, err := store.UserByExternalID(ctx, "clerk-1")
	if err != nil {
		t.Fatal(err)
	}
	st, err := store.CategoryStat(ctx, user.ID, "cat")
	if err != nil || st == nil {
		t.Fatalf("stat = %v, %v", st, err)
	}
	if st.Attempts != 2 || st.Completed != 2 || st.AverageScore != 70 {
		t.Errorf("stored stat = %+v", st)
	}
	attempts, _ := store.RecentAttempts(ctx, user.ID, 10)
	if len(attempts) != 2 {
		t.Errorf("attempts = %d, want 2", len(attempts))
	}
}
