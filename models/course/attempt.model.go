package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizAttempt records one scored quiz submission. Attempts are append-only:
// retries create new rows, never overwrite. The passed flag is fixed at
// submission time and is not re-evaluated if the quiz passing score changes.
type QuizAttempt struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"not null;uniqueIndex:idx_quiz_student_attempt"`
	StudentID     uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_quiz_student_attempt"`
	Answers       datatypes.JSON `json:"answers"` // map of question id -> chosen option index
	Score         int            `json:"score"`   // percentage, 0-100
	Passed        bool           `json:"passed" gorm:"default:false"`
	AttemptNumber int            `json:"attempt_number" gorm:"default:1;uniqueIndex:idx_quiz_student_attempt"`
	CompletedAt   time.Time      `json:"completed_at"`
	IsDeleted     bool           `gorm:"default:false"`
}
