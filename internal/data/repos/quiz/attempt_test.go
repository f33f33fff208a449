package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mentora-app/mentora-backend/internal/data/repos/testutil"
	types "github.com/mentora-app/mentora-backend/internal/domain"
)

func TestAttemptRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAttemptRepo(db, testutil.Logger(t))

	mentor := testutil.SeedUser(t, ctx, tx, "attemptrepo-mentor@example.com", types.RoleMentor)
	student := testutil.SeedUser(t, ctx, tx, "attemptrepo-student@example.com", types.RoleStudent)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)
	quiz := testutil.SeedQuiz(t, ctx, tx, class.ID)

	a := testutil.SeedAttempt(t, ctx, tx, quiz.ID, student.ID, types.AttemptInProgress)

	got, err := repo.GetInProgress(ctx, tx, quiz.ID, student.ID)
	if err != nil {
		t.Fatalf("GetInProgress: %v", err)
	}
	if got.ID != a.ID {
		t.Fatalf("GetInProgress: got %s, want %s", got.ID, a.ID)
	}

	count, err := repo.CountFinished(ctx, tx, quiz.ID, student.ID)
	if err != nil || count != 0 {
		t.Fatalf("CountFinished before finish: count=%d err=%v", count, err)
	}

	rows, err := repo.Finish(ctx, tx, a.ID, 75.5, time.Now().UTC())
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if rows != 1 {
		t.Fatalf("Finish: rows=%d, want 1", rows)
	}

	// A second finish must not win the status guard.
	rows, err = repo.Finish(ctx, tx, a.ID, 10, time.Now().UTC())
	if err != nil {
		t.Fatalf("second Finish: %v", err)
	}
	if rows != 0 {
		t.Fatalf("second Finish: rows=%d, want 0", rows)
	}

	finished, err := repo.GetByIDs(ctx, tx, []uuid.UUID{a.ID})
	if err != nil || len(finished) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(finished))
	}
	if finished[0].Status != types.AttemptFinished {
		t.Fatalf("status = %s, want finished", finished[0].Status)
	}
	if finished[0].Score == nil || *finished[0].Score != 75.5 {
		t.Fatalf("score = %v, want 75.5", finished[0].Score)
	}

	count, err = repo.CountFinished(ctx, tx, quiz.ID, student.ID)
	if err != nil || count != 1 {
		t.Fatalf("CountFinished after finish: count=%d err=%v", count, err)
	}
}

func TestAttemptRepoListByQuizNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAttemptRepo(db, testutil.Logger(t))

	mentor := testutil.SeedUser(t, ctx, tx, "attemptlist-mentor@example.com", types.RoleMentor)
	s1 := testutil.SeedUser(t, ctx, tx, "attemptlist-s1@example.com", types.RoleStudent)
	s2 := testutil.SeedUser(t, ctx, tx, "attemptlist-s2@example.com", types.RoleStudent)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)
	quiz := testutil.SeedQuiz(t, ctx, tx, class.ID)

	older := testutil.SeedAttempt(t, ctx, tx, quiz.ID, s1.ID, types.AttemptFinished)
	older.StartedAt = time.Now().UTC().Add(-1 * time.Hour)
	if err := tx.WithContext(ctx).Save(older).Error; err != nil {
		t.Fatalf("backdate attempt: %v", err)
	}
	newer := testutil.SeedAttempt(t, ctx, tx, quiz.ID, s2.ID, types.AttemptInProgress)

	all, err := repo.ListByQuiz(ctx, tx, quiz.ID, nil)
	if err != nil {
		t.Fatalf("ListByQuiz all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListByQuiz all: len=%d, want 2", len(all))
	}
	if all[0].ID != newer.ID || all[1].ID != older.ID {
		t.Fatalf("ListByQuiz order: got [%s %s], want newest first", all[0].ID, all[1].ID)
	}

	mine, err := repo.ListByQuiz(ctx, tx, quiz.ID, &s1.ID)
	if err != nil || len(mine) != 1 || mine[0].ID != older.ID {
		t.Fatalf("ListByQuiz filtered: err=%v len=%d", err, len(mine))
	}
}

func TestAttemptRepoUniqueInProgress(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAttemptRepo(db, testutil.Logger(t))

	mentor := testutil.SeedUser(t, ctx, tx, "attemptuniq-mentor@example.com", types.RoleMentor)
	student := testutil.SeedUser(t, ctx, tx, "attemptuniq-student@example.com", types.RoleStudent)
	class := testutil.SeedClass(t, ctx, tx, mentor.ID)
	quiz := testutil.SeedQuiz(t, ctx, tx, class.ID)

	testutil.SeedAttempt(t, ctx, tx, quiz.ID, student.ID, types.AttemptInProgress)

	dup := &types.Attempt{
		ID:        uuid.New(),
		QuizID:    quiz.ID,
		StudentID: student.ID,
		Status:    types.AttemptInProgress,
		StartedAt: time.Now().UTC(),
	}
	if _, err := repo.Create(ctx, tx, []*types.Attempt{dup}); err == nil {
		t.Fatal("second in_progress attempt for same (quiz, student) must violate the partial unique index")
	}
}
