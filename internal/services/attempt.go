package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mentora-app/mentora-backend/internal/data/repos"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/domain/apperr"
	"github.com/mentora-app/mentora-backend/internal/grading"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
)

// AttemptView is a history row: the stored attempt plus live stats
// derived against the quiz's current question tree. The frozen score is
// never recomputed.
type AttemptView struct {
	Attempt       *types.Attempt `json:"attempt"`
	AnsweredCount int            `json:"answered_count"`
	CorrectCount  int            `json:"correct_count"`
}

type AttemptService interface {
	StartOrResume(ctx context.Context, quizID, studentID uuid.UUID, now time.Time) (*types.Attempt, error)
	Submit(ctx context.Context, attemptID, studentID uuid.UUID, answers map[uuid.UUID]string, now time.Time) (*types.Attempt, error)
	History(ctx context.Context, quizID, actorID uuid.UUID, actorRole string, allStudents bool) ([]*AttemptView, error)
	Get(ctx context.Context, attemptID, actorID uuid.UUID, actorRole string) (*types.Attempt, error)
}

type attemptService struct {
	db             *gorm.DB
	log            *logger.Logger
	classRepo      repos.ClassRepo
	enrollmentRepo repos.EnrollmentRepo
	quizRepo       repos.QuizRepo
	attemptRepo    repos.AttemptRepo
	answerRepo     repos.AnswerRepo
}

func NewAttemptService(
	db *gorm.DB,
	baseLog *logger.Logger,
	classRepo repos.ClassRepo,
	enrollmentRepo repos.EnrollmentRepo,
	quizRepo repos.QuizRepo,
	attemptRepo repos.AttemptRepo,
	answerRepo repos.AnswerRepo,
) AttemptService {
	serviceLog := baseLog.With("service", "AttemptService")
	return &attemptService{
		db:             db,
		log:            serviceLog,
		classRepo:      classRepo,
		enrollmentRepo: enrollmentRepo,
		quizRepo:       quizRepo,
		attemptRepo:    attemptRepo,
		answerRepo:     answerRepo,
	}
}

// StartOrResume opens an attempt or hands back the one already in
// progress. Resuming consumes no quota and ignores the open window: a
// student who started in time may keep going.
func (s *attemptService) StartOrResume(ctx context.Context, quizID, studentID uuid.UUID, now time.Time) (*types.Attempt, error) {
	const op = "AttemptService.StartOrResume"

	quiz, err := s.visibleQuiz(ctx, op, quizID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, nil, quiz.ClassID, studentID)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if !enrolled {
		return nil, apperr.New(apperr.CodeNotEnrolled, op, "student is not enrolled in this class")
	}

	existing, err := s.attemptRepo.GetInProgress(ctx, nil, quizID, studentID)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if existing != nil {
		return existing, nil
	}

	if quiz.OpenAt != nil && now.Before(*quiz.OpenAt) {
		return nil, apperr.New(apperr.CodeNotYetOpen, op, "quiz has not opened yet")
	}
	if quiz.CloseAt != nil && now.After(*quiz.CloseAt) {
		return nil, apperr.New(apperr.CodeClosed, op, "quiz is closed")
	}

	if quiz.AttemptsAllowed > 0 {
		finished, cErr := s.attemptRepo.CountFinished(ctx, nil, quizID, studentID)
		if cErr != nil {
			return nil, apperr.MapError(op, cErr)
		}
		if finished >= int64(quiz.AttemptsAllowed) {
			return nil, apperr.New(apperr.CodeQuotaExceeded, op, "no attempts remaining")
		}
	}

	attempt := &types.Attempt{
		ID:        uuid.New(),
		QuizID:    quizID,
		StudentID: studentID,
		Status:    types.AttemptInProgress,
		StartedAt: now,
	}
	if _, err := s.attemptRepo.Create(ctx, nil, []*types.Attempt{attempt}); err != nil {
		mapped := apperr.MapError(op, err)
		if !apperr.IsCode(mapped, apperr.CodeConflict) {
			return nil, mapped
		}
		// Lost the race on the partial unique index: another request
		// opened the attempt first. Resume that one.
		winner, rErr := s.attemptRepo.GetInProgress(ctx, nil, quizID, studentID)
		if rErr != nil {
			return nil, apperr.MapError(op, rErr)
		}
		if winner == nil {
			return nil, mapped
		}
		return winner, nil
	}

	s.log.Info("opened attempt", "attempt_id", attempt.ID, "quiz_id", quizID, "student_id", studentID)
	return attempt, nil
}

// Submit grades and finishes an attempt. A finished attempt is returned
// unchanged, so retried submits are safe. Answer replacement, scoring
// and the status flip happen in one transaction with the attempt row
// locked; the guarded update makes the in_progress to finished
// transition happen exactly once.
func (s *attemptService) Submit(ctx context.Context, attemptID, studentID uuid.UUID, answers map[uuid.UUID]string, now time.Time) (*types.Attempt, error) {
	const op = "AttemptService.Submit"

	var result *types.Attempt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempt, err := s.attemptRepo.GetByIDForUpdate(ctx, tx, attemptID)
		if err != nil {
			return err
		}
		if attempt.StudentID != studentID {
			return apperr.New(apperr.CodeForbidden, op, "attempt belongs to another student")
		}
		if attempt.Status == types.AttemptFinished {
			result = attempt
			return nil
		}

		quizzes, err := s.quizRepo.GetByIDs(ctx, tx, []uuid.UUID{attempt.QuizID})
		if err != nil {
			return err
		}
		if len(quizzes) == 0 {
			return apperr.New(apperr.CodeNotFound, op, "quiz no longer exists")
		}
		quiz := quizzes[0]

		// One stored answer per quiz question; payload entries for
		// unknown question ids are dropped, missing ones stored empty.
		rows := make([]*types.Answer, 0, len(quiz.Questions))
		graded := make(map[uuid.UUID]string, len(quiz.Questions))
		for _, q := range quiz.Questions {
			text := answers[q.ID]
			graded[q.ID] = text
			rows = append(rows, &types.Answer{
				ID:         uuid.New(),
				QuestionID: q.ID,
				AnswerText: text,
			})
		}
		if _, err := s.answerRepo.ReplaceForAttempt(ctx, tx, attemptID, rows); err != nil {
			return err
		}

		score := grading.Score(quiz.Questions, graded)
		affected, err := s.attemptRepo.Finish(ctx, tx, attemptID, score, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Another transaction finished it between our lock release
			// points. The row is immutable now, return it as is.
			finished, gErr := s.attemptRepo.GetByIDs(ctx, tx, []uuid.UUID{attemptID})
			if gErr != nil {
				return gErr
			}
			if len(finished) == 0 {
				return apperr.New(apperr.CodeNotFound, op, "attempt not found")
			}
			result = finished[0]
			return nil
		}

		attempt.Status = types.AttemptFinished
		attempt.FinishedAt = &now
		attempt.Score = &score
		result = attempt
		s.log.Info("finished attempt", "attempt_id", attemptID, "score", score)
		return nil
	})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	return result, nil
}

// History lists attempts for a quiz, newest first. Students get their
// own rows; the class mentor and admins may request every student's
// with allStudents. answered_count and correct_count are derived live
// against the current question tree and may diverge from the frozen
// score after the quiz was edited.
func (s *attemptService) History(ctx context.Context, quizID, actorID uuid.UUID, actorRole string, allStudents bool) ([]*AttemptView, error) {
	const op = "AttemptService.History"

	quiz, err := s.visibleQuizForRole(ctx, op, quizID, actorRole)
	if err != nil {
		return nil, err
	}

	studentFilter := &actorID
	if allStudents {
		if err := s.requireMentorOrAdmin(ctx, op, quiz.ClassID, actorID, actorRole); err != nil {
			return nil, err
		}
		studentFilter = nil
	}

	var (
		attempts  []*types.Attempt
		questions []types.Question
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var lErr error
		attempts, lErr = s.attemptRepo.ListByQuiz(gctx, nil, quizID, studentFilter)
		return lErr
	})
	g.Go(func() error {
		quizzes, gErr := s.quizRepo.GetByIDs(gctx, nil, []uuid.UUID{quizID})
		if gErr != nil {
			return gErr
		}
		if len(quizzes) > 0 {
			questions = quizzes[0].Questions
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.MapError(op, err)
	}

	keys := make(map[uuid.UUID]string, len(questions))
	countable := make(map[uuid.UUID]bool, len(questions))
	for _, q := range questions {
		if key, ok := grading.CorrectOption(q); ok && types.AutoGradable(q.Type) {
			keys[q.ID] = key.Text
			countable[q.ID] = true
		}
	}

	views := make([]*AttemptView, 0, len(attempts))
	for _, attempt := range attempts {
		view := &AttemptView{Attempt: attempt}
		for _, answer := range attempt.Answers {
			if grading.Normalize(answer.AnswerText) != "" {
				view.AnsweredCount++
			}
			if countable[answer.QuestionID] && grading.Match(keys[answer.QuestionID], answer.AnswerText) {
				view.CorrectCount++
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *attemptService) Get(ctx context.Context, attemptID, actorID uuid.UUID, actorRole string) (*types.Attempt, error) {
	const op = "AttemptService.Get"

	attempts, err := s.attemptRepo.GetByIDs(ctx, nil, []uuid.UUID{attemptID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(attempts) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op, "attempt not found")
	}
	attempt := attempts[0]
	if attempt.StudentID == actorID || actorRole == types.RoleAdmin {
		return attempt, nil
	}

	quizzes, err := s.quizRepo.GetByIDs(ctx, nil, []uuid.UUID{attempt.QuizID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(quizzes) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op, "quiz no longer exists")
	}
	if err := s.requireMentorOrAdmin(ctx, op, quizzes[0].ClassID, actorID, actorRole); err != nil {
		return nil, err
	}
	return attempt, nil
}

// visibleQuiz loads a quiz for the student path: drafts read as absent.
func (s *attemptService) visibleQuiz(ctx context.Context, op string, quizID uuid.UUID) (*types.Quiz, error) {
	quizzes, err := s.quizRepo.GetByIDs(ctx, nil, []uuid.UUID{quizID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(quizzes) == 0 || quizzes[0].Status != types.QuizPublished {
		return nil, apperr.New(apperr.CodeNotFound, op, "quiz not found")
	}
	return quizzes[0], nil
}

func (s *attemptService) visibleQuizForRole(ctx context.Context, op string, quizID uuid.UUID, actorRole string) (*types.Quiz, error) {
	quizzes, err := s.quizRepo.GetByIDs(ctx, nil, []uuid.UUID{quizID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(quizzes) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op, "quiz not found")
	}
	quiz := quizzes[0]
	if quiz.Status != types.QuizPublished && actorRole == types.RoleStudent {
		return nil, apperr.New(apperr.CodeNotFound, op, "quiz not found")
	}
	return quiz, nil
}

func (s *attemptService) requireMentorOrAdmin(ctx context.Context, op string, classID, actorID uuid.UUID, actorRole string) error {
	if actorRole == types.RoleAdmin {
		return nil
	}
	classes, err := s.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
	if err != nil {
		return apperr.MapError(op, err)
	}
	if len(classes) == 0 {
		return apperr.New(apperr.CodeNotFound, op, "class not found")
	}
	if classes[0].MentorID != actorID {
		return apperr.New(apperr.CodeForbidden, op, "not the class mentor")
	}
	return nil
}
