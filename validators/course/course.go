package courseValidator

import (
	"strings"
	"time"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// SubmitCourse validates a full course draft submission (draft or publish)
func SubmitCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			courseModels.CourseDraft
			Status    string     `json:"status"`
			PublishAt *time.Time `json:"publish_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		if reqData.Status == "" {
			reqData.Status = courseModels.StatusDraft
		}
		if reqData.Status != courseModels.StatusDraft && reqData.Status != courseModels.StatusPublished {
			errors["status"] = "Status must be draft or published!"
		}

		for i := range reqData.Modules {
			quiz := reqData.Modules[i].Quiz
			if quiz == nil {
				continue
			}
			// Clamp at the boundary; the editor does not
			quiz.SetPassingScore(quiz.PassingScore)
			for j := range quiz.Questions {
				if len(quiz.Questions[j].Options) < 2 {
					errors["modules"] = "Each quiz question needs at least 2 options!"
				} else if quiz.Questions[j].CorrectOption < 0 || quiz.Questions[j].CorrectOption >= len(quiz.Questions[j].Options) {
					errors["modules"] = "Correct option index is out of range!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDraft", &reqData.CourseDraft)
		c.Locals("courseStatus", reqData.Status)
		c.Locals("publishAt", reqData.PublishAt)
		return c.Next()
	}
}

// UpdateCourse validates a course metadata update
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(struct {
			Title       string     `json:"title"`
			Description string     `json:"description"`
			PublishAt   *time.Time `json:"publish_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		return c.Next()
	}
}

// CourseList validates optional pagination query parameters. Defaults are
// resolved here and the plain ints are stashed for the handlers.
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `query:"page"`
			Limit *int `query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		page := 1
		limit := 10
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}

		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}

// ModuleComplete validates the course/module pair for a completion request
func ModuleComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := c.ParamsInt("course_id")
		if err != nil || courseID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		moduleID, err := c.ParamsInt("module_id")
		if err != nil || moduleID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// ModuleID validates the :module_id route parameter
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := c.ParamsInt("module_id")
		if err != nil || moduleID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}
		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// AddComment validates a module comment
func AddComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := c.ParamsInt("module_id")
		if err != nil || moduleID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}
		c.Locals("moduleID", moduleID)

		reqData := new(struct {
			Content string `json:"content"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Content) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"content": "Comment cannot be empty!"})
		}

		c.Locals("validatedComment", reqData)
		return c.Next()
	}
}

// CommentID validates the :comment_id route parameter
func CommentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		commentID, err := c.ParamsInt("comment_id")
		if err != nil || commentID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid comment id!", nil)
		}
		c.Locals("commentID", commentID)
		return c.Next()
	}
}

func parseCourseID(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return fiber.ErrBadRequest
	}
	c.Locals("courseID", courseID)
	return nil
}
