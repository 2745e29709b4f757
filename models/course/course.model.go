package course

import (
	"time"

	"gorm.io/gorm"
)

// Course status values
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived" // terminal
)

// Course represents a learning course owned by a teacher
type Course struct {
	gorm.Model
	Title       string     `json:"title"`
	Description string     `json:"description" gorm:"type:text"`
	TeacherID   uint       `json:"teacher_id" gorm:"index;not null"`
	Status      string     `json:"status" gorm:"default:'draft'"` // draft, published, archived
	PublishAt   *time.Time `json:"publish_at"`                    // optional scheduled publish time
	PublishedAt *time.Time `json:"published_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
