package courseValidator

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courseListApp(t *testing.T) (*fiber.App, *int, *int) {
	t.Helper()

	page := new(int)
	limit := new(int)
	app := fiber.New()
	app.Get("/list", CourseList(), func(c *fiber.Ctx) error {
		*page = c.Locals("page").(int)
		*limit = c.Locals("limit").(int)
		return c.SendStatus(fiber.StatusOK)
	})
	return app, page, limit
}

func TestCourseListStashesQueryParams(t *testing.T) {
	app, page, limit := courseListApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/list?page=3&limit=25", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, *page)
	assert.Equal(t, 25, *limit)
}

func TestCourseListDefaults(t *testing.T) {
	app, page, limit := courseListApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/list", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, *page)
	assert.Equal(t, 10, *limit)
}

func TestCourseListRejectsNonPositiveParams(t *testing.T) {
	app, _, _ := courseListApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/list?page=0", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/list?limit=-5", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
