package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	page, _ := c.Locals("page").(int)
	if page < 1 {
		page = 1
	}
	limit, _ := c.Locals("limit").(int)
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var courses []courseModels.Course
	var total int64

	db := database.Database.Db.Model(&courseModels.Course{}).Where("status = ? AND is_deleted = ?", courseModels.StatusPublished, false)
	db.Count(&total)

	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns a published course reassembled into its nested shape:
// modules in order, each with its quiz id and the student's completion flag
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND status = ? AND is_deleted = ?", courseID, courseModels.StatusPublished, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var teacher models.User
	teacherName := ""
	if err := database.Database.Db.Where("id = ?", course.TeacherID).First(&teacher).Error; err == nil {
		teacherName = teacher.FullName
	}

	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	// Check if user is enrolled
	var enrollment courseModels.Enrollment
	isEnrolled := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error == nil

	type ModuleWithState struct {
		courseModels.Module
		QuizID    *uint `json:"quiz_id,omitempty"`
		Completed bool  `json:"completed"`
	}

	result := make([]ModuleWithState, len(modules))
	for i, mod := range modules {
		result[i] = ModuleWithState{Module: mod}

		var quiz courseModels.Quiz
		if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).First(&quiz).Error; err == nil {
			id := quiz.ID
			result[i].QuizID = &id
		}

		var progress courseModels.ModuleProgress
		if err := database.Database.Db.Where("module_id = ? AND student_id = ? AND completed = ?", mod.ID, userID, true).First(&progress).Error; err == nil {
			result[i].Completed = true
		}
	}

	response := fiber.Map{
		"course":       course,
		"teacher_name": teacherName,
		"modules":      result,
		"is_enrolled":  isEnrolled,
	}
	if isEnrolled {
		response["enrollment"] = enrollment
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", response)
}

// EnrollInCourse enrolls the authenticated student into a published course
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND status = ? AND is_deleted = ?", courseID, courseModels.StatusPublished, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	var totalModules int64
	database.Database.Db.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&totalModules)

	enrollment := courseModels.Enrollment{
		StudentID:    userID,
		CourseID:     uint(courseID),
		Status:       "ENROLLED",
		TotalModules: int(totalModules),
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetMyEnrollments lists the student's enrollments with course info
func GetMyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		Course courseModels.Course `json:"course"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, enr := range enrollments {
		result[i] = EnrollmentWithCourse{Enrollment: enr}
		database.Database.Db.Where("id = ?", enr.CourseID).First(&result[i].Course)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
	})
}

// MarkModuleComplete upserts the student's completion for a module and
// recomputes the enrollment progress. Idempotent per (module, student).
func MarkModuleComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if err := upsertModuleProgress(uint(moduleID), userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	updateEnrollmentProgress(userID, uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module marked as complete!", nil)
}

// upsertModuleProgress creates or refreshes the completion row for a
// (module, student) pair
func upsertModuleProgress(moduleID, studentID uint) error {
	db := database.Database.Db
	now := time.Now()

	var progress courseModels.ModuleProgress
	if err := db.Where("module_id = ? AND student_id = ?", moduleID, studentID).First(&progress).Error; err != nil {
		progress = courseModels.ModuleProgress{
			ModuleID:    moduleID,
			StudentID:   studentID,
			Completed:   true,
			CompletedAt: &now,
		}
		return db.Create(&progress).Error
	}

	progress.Completed = true
	progress.CompletedAt = &now
	return db.Save(&progress).Error
}

// updateEnrollmentProgress recomputes the completion percentage after a module completion
func updateEnrollmentProgress(studentID uint, courseID uint) {
	db := database.Database.Db

	var totalModules int64
	db.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&totalModules)

	var completedModules int64
	db.Model(&courseModels.ModuleProgress{}).
		Joins("JOIN modules ON module_progresses.module_id = modules.id").
		Where("module_progresses.student_id = ? AND module_progresses.completed = ? AND modules.course_id = ? AND modules.is_deleted = ?", studentID, true, courseID, false).
		Count(&completedModules)

	var enrollment courseModels.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false).First(&enrollment).Error; err != nil {
		return
	}

	enrollment.CompletedModules = int(completedModules)
	enrollment.TotalModules = int(totalModules)

	if totalModules > 0 {
		enrollment.Progress = int(float64(completedModules) / float64(totalModules) * 100)
	}

	if enrollment.Progress >= 100 {
		enrollment.Status = "COMPLETED"
		now := time.Now()
		enrollment.CompletedAt = &now
	} else if enrollment.Progress > 0 {
		enrollment.Status = "IN_PROGRESS"
	}

	db.Save(&enrollment)
}

// AddModuleComment posts a comment on a module
func AddModuleComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedComment").(*struct {
		Content string `json:"content"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	comment := courseModels.ModuleComment{
		ModuleID: uint(moduleID),
		UserID:   userID,
		Content:  reqData.Content,
	}

	if err := database.Database.Db.Create(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment posted successfully!", comment)
}

// GetModuleComments lists comments on a module with author names
func GetModuleComments(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)

	var comments []courseModels.ModuleComment
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).Order("created_at asc").Find(&comments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	type CommentWithAuthor struct {
		courseModels.ModuleComment
		AuthorName string `json:"author_name"`
	}

	result := make([]CommentWithAuthor, len(comments))
	for i, cm := range comments {
		result[i] = CommentWithAuthor{ModuleComment: cm}
		var author models.User
		if err := database.Database.Db.Where("id = ?", cm.UserID).First(&author).Error; err == nil {
			result[i].AuthorName = author.FullName
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched successfully!", fiber.Map{
		"comments": result,
	})
}

// DeleteModuleComment soft deletes the user's own comment
func DeleteModuleComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	commentID := c.Locals("commentID").(int)

	var comment courseModels.ModuleComment
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", commentID, userID, false).First(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	comment.IsDeleted = true
	if err := database.Database.Db.Save(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment deleted successfully!", nil)
}
