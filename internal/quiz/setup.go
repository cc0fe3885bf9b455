package quiz

import (
	"math"
	"math/rand"
	"slices"
	"strings"

	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/storage"
)

// DefaultQuestionCount is used when a setup leaves Count at zero.
const DefaultQuestionCount = 10

// Setup is what a player picks before starting a quiz.
type Setup struct {
	Count      int    `json:"questionCount"`
	Difficulty string `json:"difficulty"`
}

// AnyDifficulty reports whether d selects questions of every difficulty.
func AnyDifficulty(d string) bool {
	d = strings.TrimSpace(d)
	return d == "" || strings.EqualFold(d, "unspecified")
}

// Prepare returns a copy of q ready to play: questions filtered by
// difficulty, cut to the requested count, then shuffled together with
// each question's options. q is not modified.
func Prepare(q storage.Quiz, setup Setup, rng *rand.Rand) storage.Quiz {
	pool := make([]storage.Question, 0, len(q.Questions))
	for _, question := range q.Questions {
		if AnyDifficulty(setup.Difficulty) || strings.EqualFold(question.Difficulty, setup.Difficulty) {
			question.Options = slices.Clone(question.Options)
			pool = append(pool, question)
		}
	}

	count := setup.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}
	if len(pool) > 0 {
		pool = pool[:core.Clamp(count, 1, len(pool))]
	}

	core.Shuffle(pool, rng)
	for i := range pool {
		core.Shuffle(pool[i].Options, rng)
	}

	q.Questions = pool
	return q
}

// ScorePercent is the rounded share of correct responses, 0 for none.
func ScorePercent(responses []Response) float64 {
	if len(responses) == 0 {
		return 0
	}
	correct := Submission{Responses: responses}.Correct()
	return math.Round(float64(correct) / float64(len(responses)) * 100)
}
