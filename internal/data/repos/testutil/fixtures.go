package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, role string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Role:      role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedClass(tb testing.TB, ctx context.Context, tx *gorm.DB, mentorID uuid.UUID) *types.Class {
	tb.Helper()
	c := &types.Class{
		ID:       uuid.New(),
		MentorID: mentorID,
		Name:     "class",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed class: %v", err)
	}
	return c
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{
		ID:        uuid.New(),
		ClassID:   classID,
		StudentID: studentID,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedMeeting(tb testing.TB, ctx context.Context, tx *gorm.DB, classID uuid.UUID) *types.Meeting {
	tb.Helper()
	m := &types.Meeting{
		ID:      uuid.New(),
		ClassID: classID,
		Title:   "meeting",
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed meeting: %v", err)
	}
	return m
}

// SeedQuiz creates a published quiz with two auto-gradable questions
// (correct answers "B" and "True") and one essay question.
func SeedQuiz(tb testing.TB, ctx context.Context, tx *gorm.DB, classID uuid.UUID) *types.Quiz {
	tb.Helper()
	q := &types.Quiz{
		ID:               uuid.New(),
		ClassID:          classID,
		Title:            "quiz",
		Status:           types.QuizPublished,
		TimeLimitMinutes: 30,
		AttemptsAllowed:  0,
		Questions: []types.Question{
			{
				ID:       uuid.New(),
				Position: 0,
				Text:     "pick B",
				Type:     types.QuestionMultipleChoice,
				Options: []types.Option{
					{ID: uuid.New(), Position: 0, Text: "A", IsCorrect: false},
					{ID: uuid.New(), Position: 1, Text: "B", IsCorrect: true},
				},
			},
			{
				ID:       uuid.New(),
				Position: 1,
				Text:     "true or false",
				Type:     types.QuestionTrueFalse,
				Options: []types.Option{
					{ID: uuid.New(), Position: 0, Text: "True", IsCorrect: true},
					{ID: uuid.New(), Position: 1, Text: "False", IsCorrect: false},
				},
			},
			{
				ID:       uuid.New(),
				Position: 2,
				Text:     "explain",
				Type:     types.QuestionEssay,
			},
		},
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	return q
}

func SeedAttempt(tb testing.TB, ctx context.Context, tx *gorm.DB, quizID, studentID uuid.UUID, status string) *types.Attempt {
	tb.Helper()
	a := &types.Attempt{
		ID:        uuid.New(),
		QuizID:    quizID,
		StudentID: studentID,
		Status:    status,
		StartedAt: time.Now().UTC(),
	}
	if status == types.AttemptFinished {
		now := time.Now().UTC()
		score := 0.0
		a.FinishedAt = &now
		a.Score = &score
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed attempt: %v", err)
	}
	return a
}
