package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/quiz-arcade/internal/config"
)

func testCatalog() config.Catalog {
	return config.Catalog{Categories: []config.CatalogCategory{
		{
			Name: "Science",
			Quizzes: []config.CatalogQuiz{{
				Title: "Basics",
				Questions: []config.CatalogQuestion{
					{Text: "Water boils at?", Difficulty: "easy", Options: []config.CatalogOption{
						{Text: "100C", Correct: true}, {Text: "50C"},
					}},
					{Text: "H2O is?", Options: []config.CatalogOption{
						{Text: "Salt"}, {Text: "Water", Correct: true}, {Text: "Air"},
					}},
				},
			}},
		},
		{Name: "Art", Description: "Paintings"},
	}}
}

func TestSeedAndListCategories(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	res, err := store.SeedCatalog(ctx, testCatalog())
	if err != nil {
		t.Fatalf("SeedCatalog: %v", err)
	}
	if res != (SeedResult{Categories: 2, Quizzes: 1, Questions: 2}) {
		t.Errorf("seed result = %+v", res)
	}

	cats, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 || cats[0].Name != "Art" || cats[1].Name != "Science" {
		t.Fatalf("categories = %+v", cats)
	}
	if cats[0].Quizzes == nil || len(cats[0].Quizzes) != 0 {
		t.Errorf("empty category should have an empty quiz list, got %v", cats[0].Quizzes)
	}

	quiz := cats[1].Quizzes[0]
	if quiz.CategoryID != cats[1].ID || len(quiz.Questions) != 2 {
		t.Fatalf("quiz = %+v", quiz)
	}
	q0, q1 := quiz.Questions[0], quiz.Questions[1]
	if q0.Text != "Water boils at?" || q0.Difficulty != "easy" || len(q0.Options) != 2 {
		t.Errorf("question 0 = %+v", q0)
	}
	if len(q1.Options) != 3 || q1.Options[1].Text != "Water" || !q1.Options[1].IsCorrect || q1.Options[0].IsCorrect {
		t.Errorf("question 1 options = %+v", q1.Options)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.SeedCatalog(ctx, testCatalog()); err != nil {
		t.Fatal(err)
	}
	before, _ := store.ListCategories(ctx)

	cat := testCatalog()
	cat.Categories[0].Quizzes[0].Questions = cat.Categories[0].Quizzes[0].Questions[:1]
	if _, err := store.SeedCatalog(ctx, cat); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	after, _ := store.ListCategories(ctx)

	if len(after) != 2 || after[1].ID != before[1].ID {
		t.Fatalf("category ids changed across reseed")
	}
	if after[1].Quizzes[0].ID != before[1].Quizzes[0].ID {
		t.Error("quiz id changed across reseed")
	}
	if n := len(after[1].Quizzes[0].Questions); n != 1 {
		t.Errorf("questions after reseed = %d, want 1", n)
	}
}

func TestSeedRejectsInvalidCatalog(t *testing.T) {
	store := openTestStore(t)
	cat := testCatalog()
	cat.Categories[0].Quizzes[0].Questions[0].Options[1].Correct = true

	if _, err := store.SeedCatalog(context.Background(), cat); err == nil {
		t.Fatal("question with two correct options should be rejected")
	}
	if cats, _ := store.ListCategories(context.Background()); len(cats) != 0 {
		t.Errorf("invalid seed wrote %d categories", len(cats))
	}
}

func TestQuiz(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	store.SeedCatalog(ctx, testCatalog())
	cats, _ := store.ListCategories(ctx)
	id := cats[1].Quizzes[0].ID

	q, err := store.Quiz(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if q.Title != "Basics" || len(q.Questions) != 2 || len(q.Questions[1].Options) != 3 {
		t.Errorf("quiz = %+v", q)
	}

	if _, err := store.Quiz(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing quiz err = %v, want ErrNotFound", err)
	}
}

func TestSeedDefaultCatalog(t *testing.T) {
	store := openTestStore(t)
	cat, err := config.LoadCatalog("")
	if err != nil {
		t.Fatal(err)
	}
	res, err := store.SeedCatalog(context.Background(), cat)
	if err != nil {
		t.Fatal(err)
	}
	if res.Categories != 8 || res.Quizzes != 8 {
		t.Errorf("default seed = %+v", res)
	}
}
