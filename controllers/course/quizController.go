package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetQuiz returns a quiz with its questions in order. Correct answers are
// stripped before sending to students; they only come back in the submit
// response.
func GetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quiz.ModuleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz module not found!", nil)
	}

	var questions []courseModels.QuizQuestion
	if err := database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	type QuestionForStudent struct {
		ID         uint           `json:"id"`
		Question   string         `json:"question"`
		Options    datatypes.JSON `json:"options"`
		OrderIndex int            `json:"order_index"`
	}

	visible := make([]QuestionForStudent, len(questions))
	for i, q := range questions {
		visible[i] = QuestionForStudent{
			ID:         q.ID,
			Question:   q.Question,
			Options:    q.Options,
			OrderIndex: q.OrderIndex,
		}
	}

	// Previous attempts for this student
	var attempts []courseModels.QuizAttempt
	database.Database.Db.Where("quiz_id = ? AND student_id = ? AND is_deleted = ?", quizID, userID, false).Order("completed_at desc").Find(&attempts)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"course_id": module.CourseID,
		"questions": visible,
		"attempts":  attempts,
	})
}

// SubmitQuizAttempt scores a full answers map, stores an immutable attempt and,
// on a pass, marks the owning module complete for the student
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quiz.ModuleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz module not found!", nil)
	}

	// Check enrollment in the owning course
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, module.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	answers, ok := c.Locals("validatedAnswers").(map[uint]int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var questions []courseModels.QuizQuestion
	if err := database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	score, correctCount, err := courseModels.ScoreQuiz(questions, answers)
	if err != nil {
		var unanswered *courseModels.UnansweredError
		if errors.As(err, &unanswered) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, fmt.Sprintf("You still have %d question(s) to answer!", unanswered.Count), fiber.Map{
				"unanswered": unanswered.Count,
			})
		}
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	passed := courseModels.Passed(score, quiz.PassingScore)

	answersJSON, _ := json.Marshal(answers)

	attempt := courseModels.QuizAttempt{
		QuizID:      uint(quizID),
		StudentID:   userID,
		Answers:     datatypes.JSON(answersJSON),
		Score:       score,
		Passed:      passed,
		CompletedAt: time.Now(),
	}

	if err := saveAttempt(database.Database.Db, &attempt); err != nil {
		log.Printf("Error saving quiz attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	// Passing the quiz completes the owning module
	if passed {
		if err := upsertModuleProgress(quiz.ModuleID, userID); err != nil {
			log.Printf("Error updating module progress: %v", err)
		} else {
			updateEnrollmentProgress(userID, module.CourseID)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"attempt":       attempt,
		"score":         score,
		"correct_count": correctCount,
		"total":         len(questions),
		"passed":        passed,
		"passing_score": quiz.PassingScore,
	})
}

// saveAttempt numbers and stores a quiz attempt. Attempts accumulate; retries
// never overwrite. Numbering runs inside the insert transaction and the
// (quiz, student, attempt_number) unique index rejects a duplicate number if
// two submissions race.
func saveAttempt(db *gorm.DB, attempt *courseModels.QuizAttempt) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&courseModels.QuizAttempt{}).
			Where("quiz_id = ? AND student_id = ?", attempt.QuizID, attempt.StudentID).
			Count(&count).Error; err != nil {
			return err
		}
		attempt.AttemptNumber = int(count) + 1
		return tx.Create(attempt).Error
	})
}

// GetQuizAttempts lists the student's attempts for a quiz, newest first
func GetQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var attempts []courseModels.QuizAttempt
	if err := database.Database.Db.Where("quiz_id = ? AND student_id = ? AND is_deleted = ?", quizID, userID, false).Order("completed_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
	})
}
