package course

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoQuestions is returned when scoring a quiz without questions
var ErrNoQuestions = errors.New("quiz has no questions")

// UnansweredError rejects a submission that left questions unanswered
type UnansweredError struct {
	Count int
}

func (e *UnansweredError) Error() string {
	return fmt.Sprintf("%d question(s) unanswered", e.Count)
}

// ScoreQuiz scores an answers map (question id -> chosen option index) against
// the given questions. Every question must be answered. The score is the
// percentage of correct answers rounded to the nearest integer, halves away
// from zero.
func ScoreQuiz(questions []QuizQuestion, answers map[uint]int) (score int, correctCount int, err error) {
	if len(questions) == 0 {
		return 0, 0, ErrNoQuestions
	}

	unanswered := 0
	for _, q := range questions {
		chosen, ok := answers[q.ID]
		if !ok {
			unanswered++
			continue
		}
		if chosen == q.CorrectOption {
			correctCount++
		}
	}
	if unanswered > 0 {
		return 0, 0, &UnansweredError{Count: unanswered}
	}

	score = int(math.Round(float64(correctCount) / float64(len(questions)) * 100))
	return score, correctCount, nil
}

// Passed reports whether a score meets the quiz passing threshold
func Passed(score, passingScore int) bool {
	return score >= passingScore
}
