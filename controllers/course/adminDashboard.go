package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminDashboardStats returns platform-wide counters for the admin dashboard
func AdminDashboardStats(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.User); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var totalUsers, totalTeachers, totalStudents int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "TEACHER", false).Count(&totalTeachers)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "STUDENT", false).Count(&totalStudents)

	var totalCourses, publishedCourses, draftCourses int64
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("status = ? AND is_deleted = ?", courseModels.StatusPublished, false).Count(&publishedCourses)
	db.Model(&courseModels.Course{}).Where("status = ? AND is_deleted = ?", courseModels.StatusDraft, false).Count(&draftCourses)

	var totalEnrollments, totalAttempts, passedAttempts int64
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.QuizAttempt{}).Where("is_deleted = ?", false).Count(&totalAttempts)
	db.Model(&courseModels.QuizAttempt{}).Where("passed = ? AND is_deleted = ?", true, false).Count(&passedAttempts)

	// This month's signups and enrollments
	monthStart := now.BeginningOfMonth()
	var signupsThisMonth, enrollmentsThisMonth int64
	db.Model(&models.User{}).Where("created_at >= ? AND is_deleted = ?", monthStart, false).Count(&signupsThisMonth)
	db.Model(&courseModels.Enrollment{}).Where("created_at >= ? AND is_deleted = ?", monthStart, false).Count(&enrollmentsThisMonth)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"total":              totalUsers,
			"teachers":           totalTeachers,
			"students":           totalStudents,
			"signups_this_month": signupsThisMonth,
		},
		"courses": fiber.Map{
			"total":     totalCourses,
			"published": publishedCourses,
			"drafts":    draftCourses,
		},
		"enrollments": fiber.Map{
			"total":      totalEnrollments,
			"this_month": enrollmentsThisMonth,
		},
		"quiz_attempts": fiber.Map{
			"total":  totalAttempts,
			"passed": passedAttempts,
		},
	})
}

// AdminGetAllCourses lists all courses regardless of status
func AdminGetAllCourses(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.User); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
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

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
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

// AdminArchiveCourse moves a course to the terminal archived state
func AdminArchiveCourse(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.User); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.Status == courseModels.StatusArchived {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already archived!", nil)
	}

	course.Status = courseModels.StatusArchived
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to archive course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course archived successfully!", course)
}

// StudentDashboard returns the student's enrollments with progress and recent attempts
func StudentDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	db.Where("student_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&enrollments)

	var completedCourses int64
	db.Model(&courseModels.Enrollment{}).Where("student_id = ? AND status = ? AND is_deleted = ?", userID, "COMPLETED", false).Count(&completedCourses)

	var attempts []courseModels.QuizAttempt
	db.Where("student_id = ? AND is_deleted = ?", userID, false).Order("completed_at desc").Limit(5).Find(&attempts)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"enrollments":       enrollments,
		"completed_courses": completedCourses,
		"recent_attempts":   attempts,
	})
}
