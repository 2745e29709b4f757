package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Module represents a content unit within a course. order_index is the sole
// ordering key and is kept dense (0..N-1) within its course.
type Module struct {
	gorm.Model
	CourseID          uint           `json:"course_id" gorm:"index;not null"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Content           string         `json:"content" gorm:"type:text"`
	Abstract          string         `json:"abstract" gorm:"type:text"`
	EstimatedDuration string         `json:"estimated_duration"`
	LearningOutcomes  datatypes.JSON `json:"learning_outcomes"` // JSON array of strings
	Resources         datatypes.JSON `json:"resources"`         // JSON array of {name, link, license}
	OrderIndex        int            `json:"order_index" gorm:"default:0"`
	IsDeleted         bool           `gorm:"default:false"`
}

// ModuleResource is the element shape stored in Module.Resources
type ModuleResource struct {
	Name    string `json:"name"`
	Link    string `json:"link"`
	License string `json:"license"`
}
