package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courseDetailsData(t *testing.T, app *fiber.App) map[string]json.RawMessage {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", "/course", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Data
}

func TestGetCourseDetailsEnrollmentOnlyWhenEnrolled(t *testing.T) {
	db := setupTestDb(t)
	database.Database = database.DbInstance{Db: db}

	teacher := models.User{FullName: "Jane Doe", Email: "jane@example.com", Role: "TEACHER"}
	require.NoError(t, db.Create(&teacher).Error)

	student := models.User{FullName: "Sam Student", Email: "sam@example.com", Role: "STUDENT"}
	require.NoError(t, db.Create(&student).Error)

	course := courseModels.Course{Title: "Go Basics", TeacherID: teacher.ID, Status: courseModels.StatusPublished}
	require.NoError(t, db.Create(&course).Error)

	app := fiber.New()
	app.Get("/course", func(c *fiber.Ctx) error {
		c.Locals("userId", student.ID)
		c.Locals("courseID", int(course.ID))
		return GetCourseDetails(c)
	})

	data := courseDetailsData(t, app)

	var isEnrolled bool
	require.NoError(t, json.Unmarshal(data["is_enrolled"], &isEnrolled))
	assert.False(t, isEnrolled)

	_, present := data["enrollment"]
	assert.False(t, present)

	enrollment := courseModels.Enrollment{StudentID: student.ID, CourseID: course.ID, Status: "ENROLLED"}
	require.NoError(t, db.Create(&enrollment).Error)

	data = courseDetailsData(t, app)

	require.NoError(t, json.Unmarshal(data["is_enrolled"], &isEnrolled))
	assert.True(t, isEnrolled)

	var returned courseModels.Enrollment
	require.NoError(t, json.Unmarshal(data["enrollment"], &returned))
	assert.Equal(t, enrollment.ID, returned.ID)
}
