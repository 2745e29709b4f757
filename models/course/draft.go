package course

import (
	"errors"
	"strings"
)

// Draft editing errors
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrTitleRequired   = errors.New("course title is required")
	ErrTooFewOptions   = errors.New("question must have at least 2 options")
	ErrBadCorrectIndex = errors.New("correct option index out of range")
)

// Move directions for MoveModule
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// DraftQuestion is an unsaved quiz question being edited
type DraftQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	OrderIndex    int      `json:"order_index"`
}

// DraftQuiz is an unsaved quiz being edited within a module
type DraftQuiz struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	PassingScore int             `json:"passing_score"`
	Questions    []DraftQuestion `json:"questions"`
}

// DraftModule is an unsaved module being edited within a course draft
type DraftModule struct {
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Content           string           `json:"content"`
	Abstract          string           `json:"abstract"`
	EstimatedDuration string           `json:"estimated_duration"`
	LearningOutcomes  []string         `json:"learning_outcomes"`
	Resources         []ModuleResource `json:"resources"`
	OrderIndex        int              `json:"order_index"`
	Quiz              *DraftQuiz       `json:"quiz,omitempty"`
}

// CourseDraft is the in-memory representation of a course during authoring.
// Nothing is persisted until the draft is submitted.
type CourseDraft struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Modules     []DraftModule `json:"modules"`
}

// ModulePatch carries the fields of a module update. Nil fields are left unchanged.
type ModulePatch struct {
	Title             *string           `json:"title"`
	Description       *string           `json:"description"`
	Content           *string           `json:"content"`
	Abstract          *string           `json:"abstract"`
	EstimatedDuration *string           `json:"estimated_duration"`
	LearningOutcomes  *[]string         `json:"learning_outcomes"`
	Resources         *[]ModuleResource `json:"resources"`
}

// QuestionPatch carries the fields of a question update. Nil fields are left unchanged.
type QuestionPatch struct {
	Question      *string   `json:"question"`
	Options       *[]string `json:"options"`
	CorrectOption *int      `json:"correct_option"`
}

// AddModule appends a new empty module at the end of the draft
func (d *CourseDraft) AddModule() {
	d.Modules = append(d.Modules, DraftModule{
		OrderIndex: len(d.Modules),
	})
}

// UpdateModule merges patch into the module at index
func (d *CourseDraft) UpdateModule(index int, patch ModulePatch) error {
	if index < 0 || index >= len(d.Modules) {
		return ErrIndexOutOfRange
	}
	m := &d.Modules[index]
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Content != nil {
		m.Content = *patch.Content
	}
	if patch.Abstract != nil {
		m.Abstract = *patch.Abstract
	}
	if patch.EstimatedDuration != nil {
		m.EstimatedDuration = *patch.EstimatedDuration
	}
	if patch.LearningOutcomes != nil {
		m.LearningOutcomes = *patch.LearningOutcomes
	}
	if patch.Resources != nil {
		m.Resources = *patch.Resources
	}
	return nil
}

// RemoveModule deletes the module at index and renumbers the remaining modules
func (d *CourseDraft) RemoveModule(index int) error {
	if index < 0 || index >= len(d.Modules) {
		return ErrIndexOutOfRange
	}
	d.Modules = append(d.Modules[:index], d.Modules[index+1:]...)
	d.renumber()
	return nil
}

// MoveModule swaps the module at index with its neighbour in the given
// direction. Moving past either end of the list is a no-op.
func (d *CourseDraft) MoveModule(index int, direction string) error {
	if index < 0 || index >= len(d.Modules) {
		return ErrIndexOutOfRange
	}
	target := index + 1
	if direction == MoveUp {
		target = index - 1
	}
	if target < 0 || target >= len(d.Modules) {
		return nil
	}
	d.Modules[index], d.Modules[target] = d.Modules[target], d.Modules[index]
	d.renumber()
	return nil
}

// renumber reassigns order_index for the whole list so it stays a dense
// 0..N-1 sequence in display order
func (d *CourseDraft) renumber() {
	for i := range d.Modules {
		d.Modules[i].OrderIndex = i
	}
}

// EnableQuiz attaches an empty quiz to the module at index, if it has none
func (d *CourseDraft) EnableQuiz(index int) error {
	if index < 0 || index >= len(d.Modules) {
		return ErrIndexOutOfRange
	}
	if d.Modules[index].Quiz == nil {
		d.Modules[index].Quiz = &DraftQuiz{PassingScore: 70}
	}
	return nil
}

// DisableQuiz removes the quiz from the module at index, discarding its questions
func (d *CourseDraft) DisableQuiz(index int) error {
	if index < 0 || index >= len(d.Modules) {
		return ErrIndexOutOfRange
	}
	d.Modules[index].Quiz = nil
	return nil
}

// Validate checks the draft before submission
func (d *CourseDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	for i := range d.Modules {
		q := d.Modules[i].Quiz
		if q == nil {
			continue
		}
		for j := range q.Questions {
			if len(q.Questions[j].Options) < 2 {
				return ErrTooFewOptions
			}
			if q.Questions[j].CorrectOption < 0 || q.Questions[j].CorrectOption >= len(q.Questions[j].Options) {
				return ErrBadCorrectIndex
			}
		}
	}
	return nil
}

// AddQuestion appends a new question with 4 empty options, the first marked correct
func (q *DraftQuiz) AddQuestion() {
	q.Questions = append(q.Questions, DraftQuestion{
		Options:    []string{"", "", "", ""},
		OrderIndex: len(q.Questions),
	})
}

// UpdateQuestion merges patch into the question at index
func (q *DraftQuiz) UpdateQuestion(index int, patch QuestionPatch) error {
	if index < 0 || index >= len(q.Questions) {
		return ErrIndexOutOfRange
	}
	question := &q.Questions[index]
	if patch.Question != nil {
		question.Question = *patch.Question
	}
	if patch.Options != nil {
		question.Options = *patch.Options
	}
	if patch.CorrectOption != nil {
		question.CorrectOption = *patch.CorrectOption
	}
	return nil
}

// UpdateOption replaces a single option string. The correct option index is
// left alone even when the replaced option was the correct one.
func (q *DraftQuiz) UpdateOption(questionIndex, optionIndex int, value string) error {
	if questionIndex < 0 || questionIndex >= len(q.Questions) {
		return ErrIndexOutOfRange
	}
	opts := q.Questions[questionIndex].Options
	if optionIndex < 0 || optionIndex >= len(opts) {
		return ErrIndexOutOfRange
	}
	opts[optionIndex] = value
	return nil
}

// RemoveQuestion deletes the question at index and renumbers the rest
func (q *DraftQuiz) RemoveQuestion(index int) error {
	if index < 0 || index >= len(q.Questions) {
		return ErrIndexOutOfRange
	}
	q.Questions = append(q.Questions[:index], q.Questions[index+1:]...)
	for i := range q.Questions {
		q.Questions[i].OrderIndex = i
	}
	return nil
}

// SetPassingScore stores the passing threshold, clamped to [0, 100]
func (q *DraftQuiz) SetPassingScore(value int) {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	q.PassingScore = value
}
