package classroom

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Meeting struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID     uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id"`
	Class       *Class    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description"`

	// Materials and Assignments ride on the meeting row; deleting a
	// meeting removes both through the FK cascade.
	Materials   []Material   `gorm:"constraint:OnDelete:CASCADE;foreignKey:MeetingID;references:ID" json:"materials,omitempty"`
	Assignments []Assignment `gorm:"constraint:OnDelete:CASCADE;foreignKey:MeetingID;references:ID" json:"assignments,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Meeting) TableName() string { return "meeting" }

type Material struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MeetingID uuid.UUID      `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Title     string         `gorm:"not null;column:title" json:"title"`
	FileURL   string         `gorm:"column:file_url" json:"file_url"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Material) TableName() string { return "material" }

type Assignment struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MeetingID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	DueAt       *time.Time `gorm:"column:due_at" json:"due_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Assignment) TableName() string { return "assignment" }

type Submission struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssignmentID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uniq_submission_assignment_student" json:"assignment_id"`
	Assignment   *Assignment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssignmentID;references:ID" json:"assignment,omitempty"`
	StudentID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uniq_submission_assignment_student;index" json:"student_id"`
	FileURL      string      `gorm:"column:file_url" json:"file_url"`
	Note         string      `gorm:"column:note" json:"note"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Submission) TableName() string { return "submission" }
