package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Published course listing and details
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)

	// Module completion
	courseGroup.Post("/:course_id/module/:module_id/complete", middleware.JWTMiddleware, validators.ModuleComplete(), controllers.MarkModuleComplete)

	// Module comments
	moduleGroup := app.Group("/module")
	moduleGroup.Get("/:module_id/comments", middleware.JWTMiddleware, validators.ModuleID(), controllers.GetModuleComments)
	moduleGroup.Post("/:module_id/comments", middleware.JWTMiddleware, validators.AddComment(), controllers.AddModuleComment)
	moduleGroup.Delete("/comments/:comment_id", middleware.JWTMiddleware, validators.CommentID(), controllers.DeleteModuleComment)

	// Quiz taking
	quizGroup := app.Group("/quiz")
	quizGroup.Get("/:quiz_id", middleware.JWTMiddleware, validators.QuizID(), controllers.GetQuiz)
	quizGroup.Post("/:quiz_id/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuizAttempt)
	quizGroup.Get("/:quiz_id/attempts", middleware.JWTMiddleware, validators.QuizID(), controllers.GetQuizAttempts)

	// Student dashboard
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetMyEnrollments)
	userGroup.Get("/dashboard", middleware.JWTMiddleware, controllers.StudentDashboard)
}
