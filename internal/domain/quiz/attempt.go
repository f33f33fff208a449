package quiz

import (
	"time"

	"github.com/google/uuid"
	"github.com/mentora-app/mentora-backend/internal/domain/user"
)

const (
	AttemptInProgress = "in_progress"
	AttemptFinished   = "finished"
)

type Attempt struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID    uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uniq_attempt_in_progress,where:status = 'in_progress'" json:"quiz_id"`
	Quiz      *Quiz      `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
	StudentID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uniq_attempt_in_progress,where:status = 'in_progress'" json:"student_id"`
	Student   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`

	Status    string    `gorm:"not null;default:'in_progress';column:status" json:"status"`
	StartedAt time.Time `gorm:"not null;column:started_at" json:"started_at"`
	// Set once at submission; a finished attempt is immutable.
	FinishedAt *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
	Score      *float64   `gorm:"column:score" json:"score,omitempty"`

	Answers []Answer `gorm:"constraint:OnDelete:CASCADE;foreignKey:AttemptID;references:ID" json:"answers,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Attempt) TableName() string { return "quiz_attempt" }

type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AttemptID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_answer_attempt_question" json:"attempt_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_answer_attempt_question;index" json:"question_id"`
	// Empty string means the question was left unanswered.
	AnswerText string `gorm:"column:answer_text" json:"answer_text"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Answer) TableName() string { return "quiz_answer" }
