package quiz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mentora-app/mentora-backend/internal/data/repos/testutil"
	types "github.com/mentora-app/mentora-backend/internal/domain"
)

func TestAnswerRepoReplaceForAttempt(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAnswerRepo(db, testutil.Logger(t))

	mentor := testutil.SeedUser(t, ctx, tx, "answerrepo-mentor@example.com", types.RoleMentor)
	student := testutil.SeedUser(t, ctx, tx, "answerrepo-student@example.com", types.RoleStudent)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)
	quiz := testutil.SeedQuiz(t, ctx, tx, class.ID)
	attempt := testutil.SeedAttempt(t, ctx, tx, quiz.ID, student.ID, types.AttemptInProgress)

	q1 := quiz.Questions[0].ID
	q2 := quiz.Questions[1].ID

	first := []*types.Answer{
		{ID: uuid.New(), QuestionID: q1, AnswerText: "A"},
		{ID: uuid.New(), QuestionID: q2, AnswerText: "False"},
	}
	if _, err := repo.ReplaceForAttempt(ctx, tx, attempt.ID, first); err != nil {
		t.Fatalf("first ReplaceForAttempt: %v", err)
	}

	second := []*types.Answer{
		{ID: uuid.New(), QuestionID: q1, AnswerText: "B"},
	}
	if _, err := repo.ReplaceForAttempt(ctx, tx, attempt.ID, second); err != nil {
		t.Fatalf("second ReplaceForAttempt: %v", err)
	}

	rows, err := repo.ListByAttemptIDs(ctx, tx, []uuid.UUID{attempt.ID})
	if err != nil {
		t.Fatalf("ListByAttemptIDs: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("answers after replace: len=%d, want 1 (full overwrite, no dupes)", len(rows))
	}
	if rows[0].QuestionID != q1 || rows[0].AnswerText != "B" {
		t.Fatalf("answer = (%s, %q), want (%s, B)", rows[0].QuestionID, rows[0].AnswerText, q1)
	}
}
