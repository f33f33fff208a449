package classroom

import (
	"time"

	"github.com/google/uuid"
	"github.com/mentora-app/mentora-backend/internal/domain/user"
	"gorm.io/gorm"
)

type Class struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MentorID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"mentor_id"`
	Mentor       *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:MentorID;references:ID" json:"mentor,omitempty"`
	Name         string     `gorm:"not null;column:name" json:"name"`
	Description  string     `gorm:"column:description" json:"description"`
	ThumbnailURL string     `gorm:"column:thumbnail_url" json:"thumbnail_url"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Class) TableName() string { return "class" }

type Enrollment struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_enrollment_class_student" json:"class_id"`
	Class     *Class     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty"`
	StudentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_enrollment_class_student;index" json:"student_id"`
	Student   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Enrollment) TableName() string { return "enrollment" }
