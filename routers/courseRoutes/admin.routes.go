package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up admin management routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	adminGroup.Get("/dashboard/stats", controllers.AdminDashboardStats)
	adminGroup.Get("/course/list", validators.CourseList(), controllers.AdminGetAllCourses)
	adminGroup.Post("/course/:id/archive", validators.CourseID(), controllers.AdminArchiveCourse)
}
