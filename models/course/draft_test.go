package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func orderIndices(d *CourseDraft) []int {
	indices := make([]int, len(d.Modules))
	for i, m := range d.Modules {
		indices[i] = m.OrderIndex
	}
	return indices
}

func TestAddModuleAssignsDenseOrder(t *testing.T) {
	d := &CourseDraft{Title: "Go Basics"}

	d.AddModule()
	d.AddModule()
	d.AddModule()

	assert.Equal(t, []int{0, 1, 2}, orderIndices(d))
}

func TestUpdateModuleMergesPatch(t *testing.T) {
	d := &CourseDraft{Title: "Go Basics"}
	d.AddModule()
	require.NoError(t, d.UpdateModule(0, ModulePatch{Title: strPtr("Intro"), Content: strPtr("Hello")}))

	// A second patch leaves untouched fields alone
	require.NoError(t, d.UpdateModule(0, ModulePatch{Description: strPtr("First steps")}))

	assert.Equal(t, "Intro", d.Modules[0].Title)
	assert.Equal(t, "Hello", d.Modules[0].Content)
	assert.Equal(t, "First steps", d.Modules[0].Description)
}

func TestUpdateModuleOutOfRange(t *testing.T) {
	d := &CourseDraft{Title: "Go Basics"}
	d.AddModule()

	assert.ErrorIs(t, d.UpdateModule(1, ModulePatch{Title: strPtr("x")}), ErrIndexOutOfRange)
	assert.ErrorIs(t, d.UpdateModule(-1, ModulePatch{Title: strPtr("x")}), ErrIndexOutOfRange)
}

func TestRemoveModuleRenumbers(t *testing.T) {
	d := &CourseDraft{Title: "Go Basics"}
	for _, title := range []string{"A", "B", "C"} {
		d.AddModule()
		require.NoError(t, d.UpdateModule(len(d.Modules)-1, ModulePatch{Title: strPtr(title)}))
	}

	require.NoError(t, d.RemoveModule(1))

	require.Len(t, d.Modules, 2)
	assert.Equal(t, "A", d.Modules[0].Title)
	assert.Equal(t, "C", d.Modules[1].Title)
	assert.Equal(t, []int{0, 1}, orderIndices(d))
}

func TestRemoveModuleOutOfRange(t *testing.T) {
	d := &CourseDraft{Title: "Go Basics"}
	assert.ErrorIs(t, d.RemoveModule(0), ErrIndexOutOfRange)
}

func TestMoveModuleSwapsAndRenumbers(t *testing.T) {
	d := &CourseDraft{Title: "Go Basics"}
	for _, title := range []string{"A", "B", "C"} {
		d.AddModule()
		require.NoError(t, d.UpdateModule(len(d.Modules)-1, ModulePatch{Title: strPtr(title)}))
	}

	require.NoError(t, d.MoveModule(2, MoveUp))

	assert.Equal(t, "A", d.Modules[0].Title)
	assert.Equal(t, "C", d.Modules[1].Title)
	assert.Equal(t, "B", d.Modules[2].Title)
	assert.Equal(t, []int{0, 1, 2}, orderIndices(d))

	require.NoError(t, d.MoveModule(0, MoveDown))
	assert.Equal(t, "C", d.Modules[0].Title)
	assert.Equal(t, "A", d.Modules[1].Title)
}

func TestMoveModuleBoundariesAreNoOps(t *testing.T) {
	d := &CourseDraft{Title: "Go Basics"}
	for _, title := range []string{"A", "B"} {
		d.AddModule()
		require.NoError(t, d.UpdateModule(len(d.Modules)-1, ModulePatch{Title: strPtr(title)}))
	}

	require.NoError(t, d.MoveModule(0, MoveUp))
	require.NoError(t, d.MoveModule(1, MoveDown))

	assert.Equal(t, "A", d.Modules[0].Title)
	assert.Equal(t, "B", d.Modules[1].Title)
	assert.Equal(t, []int{0, 1}, orderIndices(d))
}

func TestMoveModuleInvalidIndex(t *testing.T) {
	d := &CourseDraft{Title: "Go Basics"}
	d.AddModule()
	assert.ErrorIs(t, d.MoveModule(5, MoveUp), ErrIndexOutOfRange)
}

func TestOrderStaysDenseUnderEditSequence(t *testing.T) {
	d := &CourseDraft{Title: "Go Basics"}

	for i := 0; i < 5; i++ {
		d.AddModule()
	}
	require.NoError(t, d.RemoveModule(2))
	require.NoError(t, d.MoveModule(0, MoveDown))
	require.NoError(t, d.MoveModule(3, MoveUp))
	require.NoError(t, d.RemoveModule(0))
	d.AddModule()

	assert.Equal(t, []int{0, 1, 2, 3}, orderIndices(d))
}

func TestEnableAndDisableQuiz(t *testing.T) {
	d := &CourseDraft{Title: "Go Basics"}
	d.AddModule()

	require.NoError(t, d.EnableQuiz(0))
	require.NotNil(t, d.Modules[0].Quiz)
	assert.Equal(t, 70, d.Modules[0].Quiz.PassingScore)

	d.Modules[0].Quiz.AddQuestion()
	d.Modules[0].Quiz.AddQuestion()

	// Enabling again must not reset the quiz
	require.NoError(t, d.EnableQuiz(0))
	assert.Len(t, d.Modules[0].Quiz.Questions, 2)

	// Toggling off discards all questions
	require.NoError(t, d.DisableQuiz(0))
	assert.Nil(t, d.Modules[0].Quiz)
}

func TestAddQuestionDefaults(t *testing.T) {
	q := &DraftQuiz{}
	q.AddQuestion()
	q.AddQuestion()

	require.Len(t, q.Questions, 2)
	assert.Equal(t, []string{"", "", "", ""}, q.Questions[0].Options)
	assert.Equal(t, 0, q.Questions[0].CorrectOption)
	assert.Equal(t, 0, q.Questions[0].OrderIndex)
	assert.Equal(t, 1, q.Questions[1].OrderIndex)
}

func TestRemoveQuestionRenumbers(t *testing.T) {
	q := &DraftQuiz{}
	for i := 0; i < 3; i++ {
		q.AddQuestion()
	}
	require.NoError(t, q.UpdateQuestion(2, QuestionPatch{Question: strPtr("last")}))

	require.NoError(t, q.RemoveQuestion(0))

	require.Len(t, q.Questions, 2)
	assert.Equal(t, 0, q.Questions[0].OrderIndex)
	assert.Equal(t, 1, q.Questions[1].OrderIndex)
	assert.Equal(t, "last", q.Questions[1].Question)
}

func TestUpdateOptionLeavesCorrectOptionAlone(t *testing.T) {
	q := &DraftQuiz{}
	q.AddQuestion()
	require.NoError(t, q.UpdateQuestion(0, QuestionPatch{CorrectOption: intPtr(2)}))

	require.NoError(t, q.UpdateOption(0, 2, "replacement"))

	assert.Equal(t, "replacement", q.Questions[0].Options[2])
	assert.Equal(t, 2, q.Questions[0].CorrectOption)
}

func TestUpdateOptionOutOfRange(t *testing.T) {
	q := &DraftQuiz{}
	q.AddQuestion()

	assert.ErrorIs(t, q.UpdateOption(1, 0, "x"), ErrIndexOutOfRange)
	assert.ErrorIs(t, q.UpdateOption(0, 4, "x"), ErrIndexOutOfRange)
}

func TestSetPassingScoreClamps(t *testing.T) {
	q := &DraftQuiz{}

	q.SetPassingScore(150)
	assert.Equal(t, 100, q.PassingScore)

	q.SetPassingScore(-10)
	assert.Equal(t, 0, q.PassingScore)

	q.SetPassingScore(70)
	assert.Equal(t, 70, q.PassingScore)
}

func TestValidate(t *testing.T) {
	d := &CourseDraft{Title: "   "}
	assert.ErrorIs(t, d.Validate(), ErrTitleRequired)

	d.Title = "Go Basics"
	d.AddModule()
	require.NoError(t, d.EnableQuiz(0))
	d.Modules[0].Quiz.AddQuestion()
	require.NoError(t, d.Validate())

	d.Modules[0].Quiz.Questions[0].Options = []string{"only one"}
	assert.ErrorIs(t, d.Validate(), ErrTooFewOptions)

	d.Modules[0].Quiz.Questions[0].Options = []string{"a", "b"}
	d.Modules[0].Quiz.Questions[0].CorrectOption = 2
	assert.ErrorIs(t, d.Validate(), ErrBadCorrectIndex)
}
