package courseValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// QuizID validates the :quiz_id route parameter
func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := c.ParamsInt("quiz_id")
		if err != nil || quizID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
		}
		c.Locals("quizID", quizID)
		return c.Next()
	}
}

// SubmitQuiz validates a quiz submission body. The answers map comes in with
// string keys (JSON object keys) and is converted to question ids here.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := c.ParamsInt("quiz_id")
		if err != nil || quizID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
		}
		c.Locals("quizID", quizID)

		reqData := new(struct {
			Answers map[string]int `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Answers) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"answers": "Please answer the questions before submitting!"})
		}

		answers := make(map[uint]int, len(reqData.Answers))
		for key, value := range reqData.Answers {
			questionID, err := strconv.ParseUint(key, 10, 64)
			if err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{"answers": "Answer keys must be question ids!"})
			}
			if value < 0 {
				return middleware.ValidationErrorResponse(c, map[string]string{"answers": "Chosen option index cannot be negative!"})
			}
			answers[uint(questionID)] = value
		}

		c.Locals("validatedAnswers", answers)
		return c.Next()
	}
}
