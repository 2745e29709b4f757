package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateCourseFromDraft persists a course draft as one consistent set of rows.
// Inserts run in dependency order (course, then modules, then quiz and its
// questions) inside a single transaction, so a failure leaves nothing behind.
// Stored order indexes are assigned from slice position, not taken from the
// payload, so they always form a dense 0..N-1 sequence.
func CreateCourseFromDraft(db *gorm.DB, teacherID uint, draft *courseModels.CourseDraft, status string, publishAt *time.Time) (*courseModels.Course, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var created courseModels.Course

	err := db.Transaction(func(tx *gorm.DB) error {
		created = courseModels.Course{
			Title:       draft.Title,
			Description: draft.Description,
			TeacherID:   teacherID,
			Status:      status,
			PublishAt:   publishAt,
		}
		if status == courseModels.StatusPublished {
			now := time.Now()
			created.PublishedAt = &now
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		for i, dm := range draft.Modules {
			module := courseModels.Module{
				CourseID:          created.ID,
				Title:             dm.Title,
				Description:       dm.Description,
				Content:           dm.Content,
				Abstract:          dm.Abstract,
				EstimatedDuration: dm.EstimatedDuration,
				OrderIndex:        i,
			}
			if len(dm.LearningOutcomes) > 0 {
				b, err := json.Marshal(dm.LearningOutcomes)
				if err != nil {
					return err
				}
				module.LearningOutcomes = datatypes.JSON(b)
			}
			if len(dm.Resources) > 0 {
				b, err := json.Marshal(dm.Resources)
				if err != nil {
					return err
				}
				module.Resources = datatypes.JSON(b)
			}
			if err := tx.Create(&module).Error; err != nil {
				return err
			}

			// A quiz without questions is not persisted
			if dm.Quiz == nil || len(dm.Quiz.Questions) == 0 {
				continue
			}

			quizTitle := dm.Quiz.Title
			if quizTitle == "" {
				quizTitle = fmt.Sprintf("Quiz - %s", dm.Title)
			}
			quiz := courseModels.Quiz{
				ModuleID:     module.ID,
				Title:        quizTitle,
				Description:  dm.Quiz.Description,
				PassingScore: clampScore(dm.Quiz.PassingScore),
			}
			if err := tx.Create(&quiz).Error; err != nil {
				return err
			}

			questions := make([]courseModels.QuizQuestion, len(dm.Quiz.Questions))
			for j, dq := range dm.Quiz.Questions {
				b, err := json.Marshal(dq.Options)
				if err != nil {
					return err
				}
				questions[j] = courseModels.QuizQuestion{
					QuizID:        quiz.ID,
					Question:      dq.Question,
					Options:       datatypes.JSON(b),
					CorrectOption: dq.CorrectOption,
					OrderIndex:    j,
				}
			}
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func clampScore(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

// TeacherCreateCourse submits a course draft as draft or published
func TeacherCreateCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	draft, ok := c.Locals("validatedDraft").(*courseModels.CourseDraft)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	status := c.Locals("courseStatus").(string)
	publishAt, _ := c.Locals("publishAt").(*time.Time)

	created, err := CreateCourseFromDraft(database.Database.Db, user.ID, draft, status, publishAt)
	if err != nil {
		switch err {
		case courseModels.ErrTitleRequired, courseModels.ErrTooFewOptions, courseModels.ErrBadCorrectIndex:
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
		}
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	if created.Status == courseModels.StatusPublished {
		go utils.NotifyCoursePublished(created)
	}

	message := "Draft saved successfully!"
	if created.Status == courseModels.StatusPublished {
		message = "Course published successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, message, fiber.Map{
		"course": created,
		"status": created.Status,
	})
}

// TeacherUpdateCourse updates course metadata (owner only)
func TeacherUpdateCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", courseID, user.ID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.Status == courseModels.StatusArchived {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Archived courses cannot be edited!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		PublishAt   *time.Time `json:"publish_at"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.PublishAt != nil {
		course.PublishAt = reqData.PublishAt
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// TeacherPublishCourse transitions a draft course to published
func TeacherPublishCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", courseID, user.ID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.Status != courseModels.StatusDraft {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only draft courses can be published!", nil)
	}

	now := time.Now()
	course.Status = courseModels.StatusPublished
	course.PublishedAt = &now

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	go utils.NotifyCoursePublished(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// TeacherGetMyCourses lists the teacher's courses with enrollment counts
func TeacherGetMyCourses(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("teacher_id = ? AND is_deleted = ?", user.ID, false).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type CourseWithCounts struct {
		courseModels.Course
		ModuleCount     int64 `json:"module_count"`
		EnrollmentCount int64 `json:"enrollment_count"`
	}

	result := make([]CourseWithCounts, len(courses))
	for i, crs := range courses {
		var moduleCount, enrollmentCount int64
		database.Database.Db.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", crs.ID, false).Count(&moduleCount)
		database.Database.Db.Model(&courseModels.Enrollment{}).Where("course_id = ? AND is_deleted = ?", crs.ID, false).Count(&enrollmentCount)
		result[i] = CourseWithCounts{
			Course:          crs,
			ModuleCount:     moduleCount,
			EnrollmentCount: enrollmentCount,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
	})
}

// TeacherGetCourseDetails returns one of the teacher's courses fully reassembled
// (modules in order, each with its quiz and ordered questions)
func TeacherGetCourseDetails(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", courseID, user.ID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	type ModuleWithQuiz struct {
		courseModels.Module
		Quiz      *courseModels.Quiz          `json:"quiz,omitempty"`
		Questions []courseModels.QuizQuestion `json:"questions,omitempty"`
	}

	result := make([]ModuleWithQuiz, len(modules))
	for i, mod := range modules {
		result[i] = ModuleWithQuiz{Module: mod}

		var quiz courseModels.Quiz
		if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).First(&quiz).Error; err != nil {
			continue
		}
		result[i].Quiz = &quiz

		var questions []courseModels.QuizQuestion
		database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Order("order_index asc").Find(&questions)
		result[i].Questions = questions
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":  course,
		"modules": result,
	})
}

// TeacherDeleteCourse soft deletes a course and cascades to its modules
func TeacherDeleteCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", courseID, user.ID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	tx := database.Database.Db.Begin()

	course.IsDeleted = true
	if err := tx.Save(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	// Modules cannot outlive their course
	if err := tx.Model(&courseModels.Module{}).Where("course_id = ?", courseID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course modules!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
