package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a student's enrollment in a course with progress
type Enrollment struct {
	gorm.Model
	StudentID        uint       `json:"student_id" gorm:"index;not null"`
	CourseID         uint       `json:"course_id" gorm:"index;not null"`
	Status           string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress         int        `json:"progress" gorm:"default:0"`        // completion percentage (0-100)
	CompletedModules int        `json:"completed_modules" gorm:"default:0"`
	TotalModules     int        `json:"total_modules" gorm:"default:0"`
	CompletedAt      *time.Time `json:"completed_at"`
	IsDeleted        bool       `gorm:"default:false"`
}

// ModuleProgress marks a module complete for a student. Upserted, so it is
// idempotent per (module_id, student_id).
type ModuleProgress struct {
	gorm.Model
	ModuleID    uint       `json:"module_id" gorm:"not null;uniqueIndex:idx_module_student"`
	StudentID   uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_module_student"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
}

// ModuleComment is a student or teacher comment on a module
type ModuleComment struct {
	gorm.Model
	ModuleID  uint   `json:"module_id" gorm:"index;not null"`
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Content   string `json:"content" gorm:"type:text"`
	IsDeleted bool   `gorm:"default:false"`
}
