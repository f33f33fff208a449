package quiz

import (
	"time"

	"github.com/google/uuid"
	"github.com/mentora-app/mentora-backend/internal/domain/classroom"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionEssay          = "essay"
)

type Quiz struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"class_id"`
	Class       *classroom.Class `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty"`
	Title       string           `gorm:"not null;column:title" json:"title"`
	Description string           `gorm:"column:description" json:"description"`
	Status      string           `gorm:"not null;default:'draft';column:status" json:"status"`

	// Nil bounds mean the window is unbounded on that side.
	OpenAt  *time.Time `gorm:"column:open_at" json:"open_at,omitempty"`
	CloseAt *time.Time `gorm:"column:close_at" json:"close_at,omitempty"`

	TimeLimitMinutes int `gorm:"not null;column:time_limit_minutes" json:"time_limit_minutes"`
	// 0 means unlimited attempts.
	AttemptsAllowed int `gorm:"not null;default:1;column:attempts_allowed" json:"attempts_allowed"`

	Questions []Question `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"questions,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Quiz) TableName() string { return "quiz" }

type Question struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID   uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Position int       `gorm:"not null;column:position" json:"position"`
	Text     string    `gorm:"not null;column:text" json:"text"`
	Type     string    `gorm:"not null;column:type" json:"type"`

	Options []Option `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"options,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Question) TableName() string { return "quiz_question" }

type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Position   int       `gorm:"not null;column:position" json:"position"`
	Text       string    `gorm:"not null;column:text" json:"text"`
	IsCorrect  bool      `gorm:"not null;column:is_correct" json:"is_correct"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Option) TableName() string { return "quiz_option" }

func ValidQuestionType(t string) bool {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionEssay:
		return true
	}
	return false
}

// AutoGradable reports whether a question type participates in scoring.
func AutoGradable(t string) bool {
	return t == QuestionMultipleChoice || t == QuestionTrueFalse
}
