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

func newAttemptService(tb testing.TB, tx *gorm.DB) AttemptService {
	tb.Helper()
	log := testutil.Logger(tb)
	return NewAttemptService(
		tx,
		log,
		repos.NewClassRepo(tx, log),
		repos.NewEnrollmentRepo(tx, log),
		repos.NewQuizRepo(tx, log),
		repos.NewAttemptRepo(tx, log),
		repos.NewAnswerRepo(tx, log),
	)
}

type quizFixture struct {
	mentor  *types.User
	student *types.User
	class   *types.Class
	quiz    *types.Quiz
}

func seedQuizFixture(tb testing.TB, ctx context.Context, tx *gorm.DB, prefix string) quizFixture {
	tb.Helper()
	mentor := testutil.SeedUser(tb, ctx, tx, prefix+"-mentor@example.com", types.RoleMentor)
	student := testutil.SeedUser(tb, ctx, tx, prefix+"-student@example.com", types.RoleStudent)
	class := testutil.SeedClass(tb, ctx, tx, mentor.ID)
	testutil.SeedEnrollment(tb, ctx, tx, class.ID, student.ID)
	quiz := testutil.SeedQuiz(tb, ctx, tx, class.ID)
	return quizFixture{mentor: mentor, student: student, class: class, quiz: quiz}
}

func TestStartOrResumeIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newAttemptService(t, tx)
	fx := seedQuizFixture(t, ctx, tx, "resume")

	now := time.Now().UTC()
	first, err := svc.StartOrResume(ctx, fx.quiz.ID, fx.student.ID, now)
	if err != nil {
		t.Fatalf("StartOrResume: %v", err)
	}
	second, err := svc.StartOrResume(ctx, fx.quiz.ID, fx.student.ID, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second StartOrResume: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("resume opened a new attempt: %s vs %s", first.ID, second.ID)
	}

	var count int64
	if err := tx.Model(&types.Attempt{}).Where("quiz_id = ?", fx.quiz.ID).Count(&count).Error; err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if count != 1 {
		t.Fatalf("attempt rows = %d, want 1", count)
	}
}

func TestStartOrResumeEligibility(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newAttemptService(t, tx)
	fx := seedQuizFixture(t, ctx, tx, "eligibility")
	now := time.Now().UTC()

	outsider := testutil.SeedUser(t, ctx, tx, "eligibility-outsider@example.com", types.RoleStudent)
	if _, err := svc.StartOrResume(ctx, fx.quiz.ID, outsider.ID, now); !apperr.IsCode(err, apperr.CodeNotEnrolled) {
		t.Fatalf("unenrolled student: code = %s, want not_enrolled (err: %v)", apperr.CodeOf(err), err)
	}

	if _, err := svc.StartOrResume(ctx, uuid.New(), fx.student.ID, now); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("unknown quiz: code = %s, want not_found", apperr.CodeOf(err))
	}

	future := now.Add(time.Hour)
	if err := tx.Model(&types.Quiz{}).Where("id = ?", fx.quiz.ID).Update("open_at", future).Error; err != nil {
		t.Fatalf("set open_at: %v", err)
	}
	if _, err := svc.StartOrResume(ctx, fx.quiz.ID, fx.student.ID, now); !apperr.IsCode(err, apperr.CodeNotYetOpen) {
		t.Fatalf("before open_at: code = %s, want not_yet_open", apperr.CodeOf(err))
	}

	past := now.Add(-time.Hour)
	if err := tx.Model(&types.Quiz{}).Where("id = ?", fx.quiz.ID).
		Updates(map[string]interface{}{"open_at": nil, "close_at": past}).Error; err != nil {
		t.Fatalf("set close_at: %v", err)
	}
	if _, err := svc.StartOrResume(ctx, fx.quiz.ID, fx.student.ID, now); !apperr.IsCode(err, apperr.CodeClosed) {
		t.Fatalf("after close_at: code = %s, want closed", apperr.CodeOf(err))
	}
}

func TestStartOrResumeQuota(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newAttemptService(t, tx)
	fx := seedQuizFixture(t, ctx, tx, "quota")

	if err := tx.Model(&types.Quiz{}).Where("id = ?", fx.quiz.ID).Update("attempts_allowed", 1).Error; err != nil {
		t.Fatalf("set attempts_allowed: %v", err)
	}
	testutil.SeedAttempt(t, ctx, tx, fx.quiz.ID, fx.student.ID, types.AttemptFinished)

	_, err := svc.StartOrResume(ctx, fx.quiz.ID, fx.student.ID, time.Now().UTC())
	if !apperr.IsCode(err, apperr.CodeQuotaExceeded) {
		t.Fatalf("quota spent: code = %s, want quota_exceeded (err: %v)", apperr.CodeOf(err), err)
	}
}

func TestStartOrResumeDraftInvisible(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newAttemptService(t, tx)
	fx := seedQuizFixture(t, ctx, tx, "draft")

	if err := tx.Model(&types.Quiz{}).Where("id = ?", fx.quiz.ID).Update("status", types.QuizDraft).Error; err != nil {
		t.Fatalf("set status: %v", err)
	}
	_, err := svc.StartOrResume(ctx, fx.quiz.ID, fx.student.ID, time.Now().UTC())
	if !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("draft quiz: code = %s, want not_found", apperr.CodeOf(err))
	}
}

func TestSubmitGradesAndFreezes(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newAttemptService(t, tx)
	fx := seedQuizFixture(t, ctx, tx, "submit")

	now := time.Now().UTC()
	attempt, err := svc.StartOrResume(ctx, fx.quiz.ID, fx.student.ID, now)
	if err != nil {
		t.Fatalf("StartOrResume: %v", err)
	}

	answers := map[uuid.UUID]string{
		fx.quiz.Questions[0].ID: " b ",
		fx.quiz.Questions[1].ID: "True",
		fx.quiz.Questions[2].ID: "free text",
		uuid.New():              "not a quiz question",
	}
	// Postgres keeps microsecond precision; truncate so the returned
	// row compares equal to what we sent.
	finishedAt := now.Add(5 * time.Minute).Truncate(time.Microsecond)
	graded, err := svc.Submit(ctx, attempt.ID, fx.student.ID, answers, finishedAt)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if graded.Status != types.AttemptFinished {
		t.Fatalf("status = %s, want finished", graded.Status)
	}
	if graded.Score == nil || *graded.Score != 100.00 {
		t.Fatalf("score = %v, want 100.00", graded.Score)
	}

	var answerCount int64
	if err := tx.Model(&types.Answer{}).Where("attempt_id = ?", attempt.ID).Count(&answerCount).Error; err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if answerCount != int64(len(fx.quiz.Questions)) {
		t.Fatalf("answer rows = %d, want %d (one per quiz question)", answerCount, len(fx.quiz.Questions))
	}

	// A second submit is a successful no-op on the frozen row.
	again, err := svc.Submit(ctx, attempt.ID, fx.student.ID, map[uuid.UUID]string{
		fx.quiz.Questions[0].ID: "A",
	}, finishedAt.Add(time.Hour))
	if err != nil {
		t.Fatalf("repeat Submit: %v", err)
	}
	if again.Score == nil || *again.Score != 100.00 {
		t.Fatalf("repeat submit changed score: %v", again.Score)
	}
	if again.FinishedAt == nil || !again.FinishedAt.Equal(*graded.FinishedAt) {
		t.Fatalf("repeat submit changed finished_at: %v vs %v", again.FinishedAt, graded.FinishedAt)
	}
}

func TestSubmitPartialScore(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newAttemptService(t, tx)
	fx := seedQuizFixture(t, ctx, tx, "partial")

	now := time.Now().UTC()
	attempt, err := svc.StartOrResume(ctx, fx.quiz.ID, fx.student.ID, now)
	if err != nil {
		t.Fatalf("StartOrResume: %v", err)
	}
	graded, err := svc.Submit(ctx, attempt.ID, fx.student.ID, map[uuid.UUID]string{
		fx.quiz.Questions[0].ID: "A",
		fx.quiz.Questions[1].ID: "True",
	}, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if graded.Score == nil || *graded.Score != 50.00 {
		t.Fatalf("score = %v, want 50.00", graded.Score)
	}
}

func TestSubmitForbiddenForOtherStudent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newAttemptService(t, tx)
	fx := seedQuizFixture(t, ctx, tx, "forbidden")

	now := time.Now().UTC()
	attempt, err := svc.StartOrResume(ctx, fx.quiz.ID, fx.student.ID, now)
	if err != nil {
		t.Fatalf("StartOrResume: %v", err)
	}

	intruder := testutil.SeedUser(t, ctx, tx, "forbidden-intruder@example.com", types.RoleStudent)
	_, err = svc.Submit(ctx, attempt.ID, intruder.ID, nil, now)
	if !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("foreign submit: code = %s, want forbidden", apperr.CodeOf(err))
	}

	var status string
	if err := tx.Model(&types.Attempt{}).Where("id = ?", attempt.ID).Select("status").Scan(&status).Error; err != nil {
		t.Fatalf("read status: %v", err)
	}
	if status != types.AttemptInProgress {
		t.Fatalf("status = %s, foreign submit must not finish the attempt", status)
	}
}

func TestHistoryDerivesLiveCounts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newAttemptService(t, tx)
	fx := seedQuizFixture(t, ctx, tx, "history")

	now := time.Now().UTC()
	attempt, err := svc.StartOrResume(ctx, fx.quiz.ID, fx.student.ID, now)
	if err != nil {
		t.Fatalf("StartOrResume: %v", err)
	}
	if _, err := svc.Submit(ctx, attempt.ID, fx.student.ID, map[uuid.UUID]string{
		fx.quiz.Questions[0].ID: "B",
		fx.quiz.Questions[2].ID: "an essay",
	}, now.Add(time.Minute)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	views, err := svc.History(ctx, fx.quiz.ID, fx.student.ID, types.RoleStudent, false)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("history rows = %d, want 1", len(views))
	}
	if views[0].AnsweredCount != 2 {
		t.Fatalf("answered_count = %d, want 2", views[0].AnsweredCount)
	}
	if views[0].CorrectCount != 1 {
		t.Fatalf("correct_count = %d, want 1", views[0].CorrectCount)
	}

	// The frozen score stays put even when the key changes afterwards;
	// the derived correct_count follows the current tree.
	if err := tx.Model(&types.Option{}).
		Where("question_id = ?", fx.quiz.Questions[0].ID).
		Update("is_correct", gorm.Expr("NOT is_correct")).Error; err != nil {
		t.Fatalf("flip option keys: %v", err)
	}
	views, err = svc.History(ctx, fx.quiz.ID, fx.student.ID, types.RoleStudent, false)
	if err != nil {
		t.Fatalf("History after edit: %v", err)
	}
	if views[0].CorrectCount != 0 {
		t.Fatalf("correct_count after key flip = %d, want 0", views[0].CorrectCount)
	}
	if views[0].Attempt.Score == nil || *views[0].Attempt.Score != 50.00 {
		t.Fatalf("frozen score changed: %v", views[0].Attempt.Score)
	}
}

func TestHistoryMentorSeesAllStudents(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	svc := newAttemptService(t, tx)
	fx := seedQuizFixture(t, ctx, tx, "mentorview")

	other := testutil.SeedUser(t, ctx, tx, "mentorview-other@example.com", types.RoleStudent)
	testutil.SeedEnrollment(t, ctx, tx, fx.class.ID, other.ID)
	testutil.SeedAttempt(t, ctx, tx, fx.quiz.ID, fx.student.ID, types.AttemptFinished)
	testutil.SeedAttempt(t, ctx, tx, fx.quiz.ID, other.ID, types.AttemptFinished)

	views, err := svc.History(ctx, fx.quiz.ID, fx.mentor.ID, types.RoleMentor, true)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("mentor view rows = %d, want 2", len(views))
	}

	// A non-owner mentor cannot read the whole class.
	rival := testutil.SeedUser(t, ctx, tx, "mentorview-rival@example.com", types.RoleMentor)
	_, err = svc.History(ctx, fx.quiz.ID, rival.ID, types.RoleMentor, true)
	if !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("rival mentor: code = %s, want forbidden", apperr.CodeOf(err))
	}
}
