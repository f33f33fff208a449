package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentora-app/mentora-backend/internal/data/repos"
	"github.com/mentora-app/mentora-backend/internal/data/repos/testutil"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/domain/apperr"
)

func newQuizService(tb testing.TB, tx *gorm.DB) QuizService {
	tb.Helper()
	log := testutil.Logger(tb)
	return NewQuizService(tx, log, repos.NewClassRepo(tx, log), repos.NewQuizRepo(tx, log))
}

func validQuizPayload(classID uuid.UUID) *QuizPayload {
	return &QuizPayload{
		ClassID:          classID,
		Title:            "Unit 1 checkpoint",
		Status:           types.QuizPublished,
		TimeLimitMinutes: 20,
		AttemptsAllowed:  2,
		Questions: []QuestionPayload{
			{
				Text: "pick B",
				Type: types.QuestionMultipleChoice,
				Options: []OptionPayload{
					{Text: "A"},
					{Text: "B", IsCorrect: true},
				},
			},
			{Text: "explain", Type: types.QuestionEssay},
		},
	}
}

func TestQuizCreateValidation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newQuizService(t, tx)

	mentor := testutil.SeedUser(t, ctx, tx, "authoring-mentor@example.com", types.RoleMentor)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)

	open := time.Now().UTC()
	closed := open.Add(-time.Hour)

	cases := []struct {
		name   string
		mutate func(p *QuizPayload)
	}{
		{"empty title", func(p *QuizPayload) { p.Title = "   " }},
		{"bad status", func(p *QuizPayload) { p.Status = "archived" }},
		{"window inverted", func(p *QuizPayload) { p.OpenAt, p.CloseAt = &open, &closed }},
		{"zero time limit", func(p *QuizPayload) { p.TimeLimitMinutes = 0 }},
		{"negative attempts", func(p *QuizPayload) { p.AttemptsAllowed = -1 }},
		{"no questions", func(p *QuizPayload) { p.Questions = nil }},
		{"question without text", func(p *QuizPayload) { p.Questions[0].Text = "" }},
		{"unknown question type", func(p *QuizPayload) { p.Questions[0].Type = "matching" }},
		{"choice without options", func(p *QuizPayload) { p.Questions[0].Options = nil }},
		{"option without text", func(p *QuizPayload) { p.Questions[0].Options[0].Text = " " }},
		{"no correct option", func(p *QuizPayload) { p.Questions[0].Options[1].IsCorrect = false }},
		{"essay with options", func(p *QuizPayload) {
			p.Questions[1].Options = []OptionPayload{{Text: "A", IsCorrect: true}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validQuizPayload(class.ID)
			tc.mutate(payload)
			_, err := svc.Create(ctx, mentor.ID, types.RoleMentor, payload)
			if !apperr.IsCode(err, apperr.CodeValidation) {
				t.Fatalf("code = %s, want validation (err: %v)", apperr.CodeOf(err), err)
			}
		})
	}
}

func TestQuizCreateAndGet(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newQuizService(t, tx)

	mentor := testutil.SeedUser(t, ctx, tx, "create-mentor@example.com", types.RoleMentor)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)

	created, err := svc.Create(ctx, mentor.ID, types.RoleMentor, validQuizPayload(class.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.Get(ctx, created.ID, mentor.ID, types.RoleMentor)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(got.Questions))
	}
	if len(got.Questions[0].Options) != 2 {
		t.Fatalf("options = %d, want 2", len(got.Questions[0].Options))
	}
}

func TestQuizUpdateReplacesQuestionTree(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newQuizService(t, tx)

	mentor := testutil.SeedUser(t, ctx, tx, "update-mentor@example.com", types.RoleMentor)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)
	created, err := svc.Create(ctx, mentor.ID, types.RoleMentor, validQuizPayload(class.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	payload := validQuizPayload(class.ID)
	payload.Title = "Unit 1 checkpoint (revised)"
	payload.Questions = []QuestionPayload{
		{
			Text: "true or false",
			Type: types.QuestionTrueFalse,
			Options: []OptionPayload{
				{Text: "True", IsCorrect: true},
				{Text: "False"},
			},
		},
	}
	updated, err := svc.Update(ctx, created.ID, mentor.ID, types.RoleMentor, payload)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Unit 1 checkpoint (revised)" {
		t.Fatalf("title = %q", updated.Title)
	}
	if len(updated.Questions) != 1 || updated.Questions[0].Type != types.QuestionTrueFalse {
		t.Fatalf("question tree not replaced: %+v", updated.Questions)
	}

	var orphanOptions int64
	if err := tx.Model(&types.Option{}).
		Joins("JOIN quiz_question ON quiz_question.id = quiz_option.question_id").
		Where("quiz_question.quiz_id = ?", created.ID).
		Count(&orphanOptions).Error; err != nil {
		t.Fatalf("count options: %v", err)
	}
	if orphanOptions != 2 {
		t.Fatalf("options after replace = %d, want 2", orphanOptions)
	}
}

func TestQuizOwnershipEnforced(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newQuizService(t, tx)

	mentor := testutil.SeedUser(t, ctx, tx, "owner-mentor@example.com", types.RoleMentor)
	rival := testutil.SeedUser(t, ctx, tx, "owner-rival@example.com", types.RoleMentor)
	admin := testutil.SeedUser(t, ctx, tx, "owner-admin@example.com", types.RoleAdmin)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)
	created, err := svc.Create(ctx, mentor.ID, types.RoleMentor, validQuizPayload(class.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	payload := validQuizPayload(class.ID)
	payload.Title = "hijacked"
	if _, err := svc.Update(ctx, created.ID, rival.ID, types.RoleMentor, payload); !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("rival update: code = %s, want forbidden", apperr.CodeOf(err))
	}
	if err := svc.Delete(ctx, created.ID, rival.ID, types.RoleMentor); !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("rival delete: code = %s, want forbidden", apperr.CodeOf(err))
	}

	got, err := svc.Get(ctx, created.ID, mentor.ID, types.RoleMentor)
	if err != nil {
		t.Fatalf("Get after rejected update: %v", err)
	}
	if got.Title == "hijacked" {
		t.Fatalf("rejected update still changed the row")
	}

	// Admin bypasses ownership.
	if err := svc.Delete(ctx, created.ID, admin.ID, types.RoleAdmin); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestQuizDraftHiddenFromStudents(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newQuizService(t, tx)

	mentor := testutil.SeedUser(t, ctx, tx, "hidden-mentor@example.com", types.RoleMentor)
	student := testutil.SeedUser(t, ctx, tx, "hidden-student@example.com", types.RoleStudent)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)
	testutil.SeedEnrollment(t, ctx, tx, class.ID, student.ID)

	payload := validQuizPayload(class.ID)
	payload.Status = types.QuizDraft
	draft, err := svc.Create(ctx, mentor.ID, types.RoleMentor, payload)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	published := validQuizPayload(class.ID)
	if _, err := svc.Create(ctx, mentor.ID, types.RoleMentor, published); err != nil {
		t.Fatalf("Create published: %v", err)
	}

	if _, err := svc.Get(ctx, draft.ID, student.ID, types.RoleStudent); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("student draft get: code = %s, want not_found", apperr.CodeOf(err))
	}

	studentList, err := svc.ListByClass(ctx, class.ID, student.ID, types.RoleStudent)
	if err != nil {
		t.Fatalf("student list: %v", err)
	}
	if len(studentList) != 1 {
		t.Fatalf("student sees %d quizzes, want 1 (published only)", len(studentList))
	}

	mentorList, err := svc.ListByClass(ctx, class.ID, mentor.ID, types.RoleMentor)
	if err != nil {
		t.Fatalf("mentor list: %v", err)
	}
	if len(mentorList) != 2 {
		t.Fatalf("mentor sees %d quizzes, want 2", len(mentorList))
	}
}
