package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FullName            string     `json:"full_name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Role                string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, TEACHER, ADMIN
	Password            string     `json:"-" gorm:"not null"`
	AvatarURL           string     `json:"avatar_url"`
	Bio                 string     `json:"bio" gorm:"type:text"`
	LastLogin           time.Time  `json:"last_login" gorm:"default:NULL"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	IsDeleted           bool       `gorm:"default:false"`
}
