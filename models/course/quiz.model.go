package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz belongs to exactly one module (at most one quiz per module)
type Quiz struct {
	gorm.Model
	ModuleID     uint   `json:"module_id" gorm:"uniqueIndex;not null"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	PassingScore int    `json:"passing_score" gorm:"default:70"` // percentage, 0-100
	IsDeleted    bool   `gorm:"default:false"`
}

// QuizQuestion is a multiple-choice question with a single correct option
type QuizQuestion struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	Question      string         `json:"question" gorm:"type:text"`
	Options       datatypes.JSON `json:"options"` // JSON array of option strings
	CorrectOption int            `json:"correct_option" gorm:"default:0"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}
