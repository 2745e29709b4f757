package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupTeacherCourseRoutes sets up course authoring routes for teachers
func SetupTeacherCourseRoutes(app *fiber.App) {
	teacherGroup := app.Group("/teacher/course", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"))

	teacherGroup.Post("/create", validators.SubmitCourse(), controllers.TeacherCreateCourse)
	teacherGroup.Get("/list", controllers.TeacherGetMyCourses)
	teacherGroup.Get("/:id", validators.CourseID(), controllers.TeacherGetCourseDetails)
	teacherGroup.Put("/:id", validators.UpdateCourse(), controllers.TeacherUpdateCourse)
	teacherGroup.Delete("/:id", validators.CourseID(), controllers.TeacherDeleteCourse)
	teacherGroup.Post("/:id/publish", validators.CourseID(), controllers.TeacherPublishCourse)
}
