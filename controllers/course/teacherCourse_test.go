package controllers

import (
	"encoding/json"
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Quiz{},
		&courseModels.QuizQuestion{},
		&courseModels.QuizAttempt{},
		&courseModels.Enrollment{},
		&courseModels.ModuleProgress{},
	))

	return db
}

func sampleDraft(t *testing.T) *courseModels.CourseDraft {
	t.Helper()

	draft := &courseModels.CourseDraft{
		Title:       "Go Basics",
		Description: "An introduction to Go",
	}

	draft.AddModule()
	title := "Getting Started"
	content := "Install the toolchain"
	require.NoError(t, draft.UpdateModule(0, courseModels.ModulePatch{Title: &title, Content: &content}))

	draft.AddModule()
	title = "Types and Structs"
	require.NoError(t, draft.UpdateModule(1, courseModels.ModulePatch{Title: &title}))

	require.NoError(t, draft.EnableQuiz(1))
	quiz := draft.Modules[1].Quiz
	quiz.SetPassingScore(80)

	quiz.AddQuestion()
	question := "What declares a variable?"
	options := []string{"var", "let", "def", "dim"}
	correct := 0
	require.NoError(t, quiz.UpdateQuestion(0, courseModels.QuestionPatch{
		Question:      &question,
		Options:       &options,
		CorrectOption: &correct,
	}))

	quiz.AddQuestion()
	question = "Which keyword starts a goroutine?"
	options = []string{"async", "go", "spawn", "run"}
	correct = 1
	require.NoError(t, quiz.UpdateQuestion(1, courseModels.QuestionPatch{
		Question:      &question,
		Options:       &options,
		CorrectOption: &correct,
	}))

	return draft
}

func TestCreateCourseFromDraftRoundTrip(t *testing.T) {
	db := setupTestDb(t)
	draft := sampleDraft(t)

	created, err := CreateCourseFromDraft(db, 7, draft, courseModels.StatusDraft, nil)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, uint(7), created.TeacherID)
	assert.Equal(t, courseModels.StatusDraft, created.Status)
	assert.Nil(t, created.PublishedAt)

	var modules []courseModels.Module
	require.NoError(t, db.Where("course_id = ?", created.ID).Order("order_index asc").Find(&modules).Error)
	require.Len(t, modules, 2)
	assert.Equal(t, "Getting Started", modules[0].Title)
	assert.Equal(t, 0, modules[0].OrderIndex)
	assert.Equal(t, "Types and Structs", modules[1].Title)
	assert.Equal(t, 1, modules[1].OrderIndex)

	// First module has no quiz
	var count int64
	db.Model(&courseModels.Quiz{}).Where("module_id = ?", modules[0].ID).Count(&count)
	assert.Zero(t, count)

	var quiz courseModels.Quiz
	require.NoError(t, db.Where("module_id = ?", modules[1].ID).First(&quiz).Error)
	assert.Equal(t, 80, quiz.PassingScore)

	var questions []courseModels.QuizQuestion
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Order("order_index asc").Find(&questions).Error)
	require.Len(t, questions, 2)
	assert.Equal(t, 0, questions[0].CorrectOption)
	assert.Equal(t, 1, questions[1].CorrectOption)

	var options []string
	require.NoError(t, json.Unmarshal(questions[1].Options, &options))
	assert.Equal(t, []string{"async", "go", "spawn", "run"}, options)
}

func TestCreateCourseFromDraftAssignsOrderFromPosition(t *testing.T) {
	db := setupTestDb(t)

	// A payload without order_index fields must still come back dense
	var draft courseModels.CourseDraft
	body := `{
		"title": "Go Basics",
		"modules": [
			{"title": "A"},
			{"title": "B"},
			{"title": "C", "quiz": {"questions": [
				{"question": "q1", "options": ["a", "b"]},
				{"question": "q2", "options": ["a", "b"]}
			]}}
		]
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &draft))

	created, err := CreateCourseFromDraft(db, 7, &draft, courseModels.StatusDraft, nil)
	require.NoError(t, err)

	var modules []courseModels.Module
	require.NoError(t, db.Where("course_id = ?", created.ID).Order("order_index asc").Find(&modules).Error)
	require.Len(t, modules, 3)
	for i, title := range []string{"A", "B", "C"} {
		assert.Equal(t, title, modules[i].Title)
		assert.Equal(t, i, modules[i].OrderIndex)
	}

	var quiz courseModels.Quiz
	require.NoError(t, db.Where("module_id = ?", modules[2].ID).First(&quiz).Error)

	var questions []courseModels.QuizQuestion
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Order("order_index asc").Find(&questions).Error)
	require.Len(t, questions, 2)
	assert.Equal(t, 0, questions[0].OrderIndex)
	assert.Equal(t, "q1", questions[0].Question)
	assert.Equal(t, 1, questions[1].OrderIndex)
	assert.Equal(t, "q2", questions[1].Question)
}

func TestCreateCourseFromDraftPublishedSetsTimestamp(t *testing.T) {
	db := setupTestDb(t)
	draft := sampleDraft(t)

	created, err := CreateCourseFromDraft(db, 7, draft, courseModels.StatusPublished, nil)
	require.NoError(t, err)
	assert.Equal(t, courseModels.StatusPublished, created.Status)
	assert.NotNil(t, created.PublishedAt)
}

func TestCreateCourseFromDraftRejectsEmptyTitle(t *testing.T) {
	db := setupTestDb(t)
	draft := sampleDraft(t)
	draft.Title = "  "

	_, err := CreateCourseFromDraft(db, 7, draft, courseModels.StatusDraft, nil)
	require.ErrorIs(t, err, courseModels.ErrTitleRequired)

	var count int64
	db.Model(&courseModels.Course{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateCourseFromDraftSkipsEmptyQuiz(t *testing.T) {
	db := setupTestDb(t)

	draft := &courseModels.CourseDraft{Title: "Go Basics"}
	draft.AddModule()
	require.NoError(t, draft.EnableQuiz(0))

	created, err := CreateCourseFromDraft(db, 7, draft, courseModels.StatusDraft, nil)
	require.NoError(t, err)

	var count int64
	db.Model(&courseModels.Quiz{}).Count(&count)
	assert.Zero(t, count)

	db.Model(&courseModels.Module{}).Where("course_id = ?", created.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateCourseFromDraftClampsPassingScore(t *testing.T) {
	db := setupTestDb(t)
	draft := sampleDraft(t)
	draft.Modules[1].Quiz.PassingScore = 250

	created, err := CreateCourseFromDraft(db, 7, draft, courseModels.StatusDraft, nil)
	require.NoError(t, err)

	var modules []courseModels.Module
	require.NoError(t, db.Where("course_id = ?", created.ID).Order("order_index asc").Find(&modules).Error)

	var quiz courseModels.Quiz
	require.NoError(t, db.Where("module_id = ?", modules[1].ID).First(&quiz).Error)
	assert.Equal(t, 100, quiz.PassingScore)
}

func TestCreateCourseFromDraftDefaultsQuizTitle(t *testing.T) {
	db := setupTestDb(t)
	draft := sampleDraft(t)
	draft.Modules[1].Quiz.Title = ""

	created, err := CreateCourseFromDraft(db, 7, draft, courseModels.StatusDraft, nil)
	require.NoError(t, err)

	var modules []courseModels.Module
	require.NoError(t, db.Where("course_id = ?", created.ID).Order("order_index asc").Find(&modules).Error)

	var quiz courseModels.Quiz
	require.NoError(t, db.Where("module_id = ?", modules[1].ID).First(&quiz).Error)
	assert.Equal(t, "Quiz - Types and Structs", quiz.Title)
}
