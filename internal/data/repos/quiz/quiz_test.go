package quiz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mentora-app/mentora-backend/internal/data/repos/testutil"
	types "github.com/mentora-app/mentora-backend/internal/domain"
)

func TestQuizRepoCreateAndGet(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewQuizRepo(db, testutil.Logger(t))

	mentor := testutil.SeedUser(t, ctx, tx, "quizrepo-mentor@example.com", types.RoleMentor)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)

	q := &types.Quiz{
		ID:               uuid.New(),
		ClassID:          class.ID,
		Title:            "midterm",
		Status:           types.QuizDraft,
		TimeLimitMinutes: 20,
		AttemptsAllowed:  2,
		Questions: []types.Question{
			{
				ID:       uuid.New(),
				Position: 1,
				Text:     "second",
				Type:     types.QuestionTrueFalse,
				Options: []types.Option{
					{ID: uuid.New(), Position: 0, Text: "True", IsCorrect: true},
					{ID: uuid.New(), Position: 1, Text: "False", IsCorrect: false},
				},
			},
			{
				ID:       uuid.New(),
				Position: 0,
				Text:     "first",
				Type:     types.QuestionEssay,
			},
		},
	}
	if _, err := repo.Create(ctx, tx, q); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{q.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(got))
	}
	loaded := got[0]
	if len(loaded.Questions) != 2 {
		t.Fatalf("questions: len=%d, want 2", len(loaded.Questions))
	}
	if loaded.Questions[0].Text != "first" || loaded.Questions[1].Text != "second" {
		t.Fatalf("questions not ordered by position: [%s %s]", loaded.Questions[0].Text, loaded.Questions[1].Text)
	}
	if len(loaded.Questions[1].Options) != 2 {
		t.Fatalf("options: len=%d, want 2", len(loaded.Questions[1].Options))
	}
}

func TestQuizRepoReplaceQuestions(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewQuizRepo(db, testutil.Logger(t))

	mentor := testutil.SeedUser(t, ctx, tx, "quizreplace-mentor@example.com", types.RoleMentor)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)
	quiz := testutil.SeedQuiz(t, ctx, tx, class.ID)

	replacement := []types.Question{
		{
			ID:       uuid.New(),
			Position: 0,
			Text:     "only question",
			Type:     types.QuestionMultipleChoice,
			Options: []types.Option{
				{ID: uuid.New(), Position: 0, Text: "X", IsCorrect: true},
			},
		},
	}
	if err := repo.ReplaceQuestions(ctx, tx, quiz.ID, replacement); err != nil {
		t.Fatalf("ReplaceQuestions: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{quiz.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(got))
	}
	if len(got[0].Questions) != 1 {
		t.Fatalf("questions after replace: len=%d, want 1", len(got[0].Questions))
	}
	if got[0].Questions[0].Text != "only question" {
		t.Fatalf("question text = %q", got[0].Questions[0].Text)
	}

	var optCount int64
	if err := tx.WithContext(ctx).Model(&types.Option{}).
		Joins("JOIN quiz_question ON quiz_question.id = quiz_option.question_id").
		Where("quiz_question.quiz_id = ?", quiz.ID).
		Count(&optCount).Error; err != nil {
		t.Fatalf("count options: %v", err)
	}
	if optCount != 1 {
		t.Fatalf("options after replace: %d, want 1 (old tree must cascade away)", optCount)
	}
}

func TestQuizRepoFullDeleteCascades(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewQuizRepo(db, testutil.Logger(t))

	mentor := testutil.SeedUser(t, ctx, tx, "quizdelete-mentor@example.com", types.RoleMentor)
	student := testutil.SeedUser(t, ctx, tx, "quizdelete-student@example.com", types.RoleStudent)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)
	quiz := testutil.SeedQuiz(t, ctx, tx, class.ID)
	testutil.SeedAttempt(t, ctx, tx, quiz.ID, student.ID, types.AttemptFinished)

	if err := repo.FullDeleteByIDs(ctx, tx, []uuid.UUID{quiz.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}

	var qCount int64
	if err := tx.WithContext(ctx).Model(&types.Question{}).Where("quiz_id = ?", quiz.ID).Count(&qCount).Error; err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if qCount != 0 {
		t.Fatalf("questions after delete: %d, want 0", qCount)
	}

	var aCount int64
	if err := tx.WithContext(ctx).Model(&types.Attempt{}).Where("quiz_id = ?", quiz.ID).Count(&aCount).Error; err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if aCount != 0 {
		t.Fatalf("attempts after delete: %d, want 0", aCount)
	}
}
