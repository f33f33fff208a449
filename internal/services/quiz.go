package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentora-app/mentora-backend/internal/data/repos"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/domain/apperr"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
)

// QuizPayload is the authoring input for creating or fully updating a
// quiz. Updates replace the whole question tree.
type QuizPayload struct {
	ClassID          uuid.UUID         `json:"class_id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Status           string            `json:"status"`
	OpenAt           *time.Time        `json:"open_at"`
	CloseAt          *time.Time        `json:"close_at"`
	TimeLimitMinutes int               `json:"time_limit_minutes"`
	AttemptsAllowed  int               `json:"attempts_allowed"`
	Questions        []QuestionPayload `json:"questions"`
}

type QuestionPayload struct {
	Text    string          `json:"text"`
	Type    string          `json:"type"`
	Options []OptionPayload `json:"options"`
}

type OptionPayload struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuizService interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRole string, payload *QuizPayload) (*types.Quiz, error)
	Update(ctx context.Context, quizID, actorID uuid.UUID, actorRole string, payload *QuizPayload) (*types.Quiz, error)
	Delete(ctx context.Context, quizID, actorID uuid.UUID, actorRole string) error
	Get(ctx context.Context, quizID, actorID uuid.UUID, actorRole string) (*types.Quiz, error)
	ListByClass(ctx context.Context, classID, actorID uuid.UUID, actorRole string) ([]*types.Quiz, error)
}

type quizService struct {
	db        *gorm.DB
	log       *logger.Logger
	classRepo repos.ClassRepo
	quizRepo  repos.QuizRepo
}

func NewQuizService(
	db *gorm.DB,
	baseLog *logger.Logger,
	classRepo repos.ClassRepo,
	quizRepo repos.QuizRepo,
) QuizService {
	serviceLog := baseLog.With("service", "QuizService")
	return &quizService{
		db:        db,
		log:       serviceLog,
		classRepo: classRepo,
		quizRepo:  quizRepo,
	}
}

func (qs *quizService) Create(ctx context.Context, actorID uuid.UUID, actorRole string, payload *QuizPayload) (*types.Quiz, error) {
	const op = "QuizService.Create"

	if err := qs.requireOwnership(ctx, op, payload.ClassID, actorID, actorRole); err != nil {
		return nil, err
	}
	if err := validateQuizPayload(op, payload); err != nil {
		return nil, err
	}

	quiz := &types.Quiz{
		ID:               uuid.New(),
		ClassID:          payload.ClassID,
		Title:            strings.TrimSpace(payload.Title),
		Description:      payload.Description,
		Status:           payload.Status,
		OpenAt:           payload.OpenAt,
		CloseAt:          payload.CloseAt,
		TimeLimitMinutes: payload.TimeLimitMinutes,
		AttemptsAllowed:  payload.AttemptsAllowed,
		Questions:        buildQuestionTree(payload.Questions),
	}
	if quiz.Status == "" {
		quiz.Status = types.QuizDraft
	}

	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, crErr := qs.quizRepo.Create(ctx, tx, quiz)
		return crErr
	}); err != nil {
		return nil, apperr.MapError(op, err)
	}

	qs.log.Info("created quiz", "quiz_id", quiz.ID, "class_id", quiz.ClassID, "questions", len(quiz.Questions))
	return quiz, nil
}

// Update replaces the quiz metadata and the entire question tree in one
// transaction. Finished attempts keep their frozen scores; history
// recomputation reflects the new tree.
func (qs *quizService) Update(ctx context.Context, quizID, actorID uuid.UUID, actorRole string, payload *QuizPayload) (*types.Quiz, error) {
	const op = "QuizService.Update"

	existing, err := qs.getQuiz(ctx, op, quizID)
	if err != nil {
		return nil, err
	}
	if err := qs.requireOwnership(ctx, op, existing.ClassID, actorID, actorRole); err != nil {
		return nil, err
	}
	payload.ClassID = existing.ClassID
	if err := validateQuizPayload(op, payload); err != nil {
		return nil, err
	}

	status := payload.Status
	if status == "" {
		status = existing.Status
	}
	updates := map[string]interface{}{
		"title":              strings.TrimSpace(payload.Title),
		"description":        payload.Description,
		"status":             status,
		"open_at":            payload.OpenAt,
		"close_at":           payload.CloseAt,
		"time_limit_minutes": payload.TimeLimitMinutes,
		"attempts_allowed":   payload.AttemptsAllowed,
		"updated_at":         time.Now(),
	}

	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if uErr := qs.quizRepo.UpdateMeta(ctx, tx, quizID, updates); uErr != nil {
			return uErr
		}
		return qs.quizRepo.ReplaceQuestions(ctx, tx, quizID, buildQuestionTree(payload.Questions))
	}); err != nil {
		return nil, apperr.MapError(op, err)
	}

	return qs.getQuiz(ctx, op, quizID)
}

func (qs *quizService) Delete(ctx context.Context, quizID, actorID uuid.UUID, actorRole string) error {
	const op = "QuizService.Delete"

	existing, err := qs.getQuiz(ctx, op, quizID)
	if err != nil {
		return err
	}
	if err := qs.requireOwnership(ctx, op, existing.ClassID, actorID, actorRole); err != nil {
		return err
	}
	if err := qs.quizRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{quizID}); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

// Get hides drafts from students: they see not_found rather than
// forbidden, so draft existence leaks nothing.
func (qs *quizService) Get(ctx context.Context, quizID, actorID uuid.UUID, actorRole string) (*types.Quiz, error) {
	const op = "QuizService.Get"

	quiz, err := qs.getQuiz(ctx, op, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.Status != types.QuizPublished && actorRole == types.RoleStudent {
		return nil, apperr.New(apperr.CodeNotFound, op, "quiz not found")
	}
	return quiz, nil
}

func (qs *quizService) ListByClass(ctx context.Context, classID, actorID uuid.UUID, actorRole string) ([]*types.Quiz, error) {
	const op = "QuizService.ListByClass"

	status := ""
	if actorRole == types.RoleStudent {
		status = types.QuizPublished
	}
	quizzes, err := qs.quizRepo.ListByClassID(ctx, nil, classID, status)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	return quizzes, nil
}

func (qs *quizService) getQuiz(ctx context.Context, op string, quizID uuid.UUID) (*types.Quiz, error) {
	quizzes, err := qs.quizRepo.GetByIDs(ctx, nil, []uuid.UUID{quizID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(quizzes) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op, "quiz not found")
	}
	return quizzes[0], nil
}

func (qs *quizService) requireOwnership(ctx context.Context, op string, classID, actorID uuid.UUID, actorRole string) error {
	classes, err := qs.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
	if err != nil {
		return apperr.MapError(op, err)
	}
	if len(classes) == 0 {
		return apperr.New(apperr.CodeNotFound, op, "class not found")
	}
	if actorRole != types.RoleAdmin && classes[0].MentorID != actorID {
		return apperr.New(apperr.CodeForbidden, op, "not the class mentor")
	}
	return nil
}

func validateQuizPayload(op string, payload *QuizPayload) error {
	switch {
	case strings.TrimSpace(payload.Title) == "":
		return apperr.New(apperr.CodeValidation, op, "title is required")
	case payload.Status != "" && payload.Status != types.QuizDraft && payload.Status != types.QuizPublished:
		return apperr.New(apperr.CodeValidation, op, "status must be draft or published")
	case payload.OpenAt != nil && payload.CloseAt != nil && payload.CloseAt.Before(*payload.OpenAt):
		return apperr.New(apperr.CodeValidation, op, "close_at must not precede open_at")
	case payload.TimeLimitMinutes < 1:
		return apperr.New(apperr.CodeValidation, op, "time_limit_minutes must be at least 1")
	case payload.AttemptsAllowed < 0:
		return apperr.New(apperr.CodeValidation, op, "attempts_allowed must not be negative")
	case len(payload.Questions) == 0:
		return apperr.New(apperr.CodeValidation, op, "a quiz needs at least one question")
	}

	for i, q := range payload.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return apperr.New(apperr.CodeValidation, op, fmt.Sprintf("question %d: text is required", i+1))
		}
		if !types.ValidQuestionType(q.Type) {
			return apperr.New(apperr.CodeValidation, op, fmt.Sprintf("question %d: unknown type %q", i+1, q.Type))
		}
		if q.Type == types.QuestionEssay {
			if len(q.Options) != 0 {
				return apperr.New(apperr.CodeValidation, op, fmt.Sprintf("question %d: essay questions carry no options", i+1))
			}
			continue
		}
		if len(q.Options) == 0 {
			return apperr.New(apperr.CodeValidation, op, fmt.Sprintf("question %d: at least one option is required", i+1))
		}
		marked := 0
		for j, opt := range q.Options {
			if strings.TrimSpace(opt.Text) == "" {
				return apperr.New(apperr.CodeValidation, op, fmt.Sprintf("question %d option %d: text is required", i+1, j+1))
			}
			if opt.IsCorrect {
				marked++
			}
		}
		if marked == 0 {
			return apperr.New(apperr.CodeValidation, op, fmt.Sprintf("question %d: one option must be marked correct", i+1))
		}
	}
	return nil
}

func buildQuestionTree(payload []QuestionPayload) []types.Question {
	questions := make([]types.Question, 0, len(payload))
	for i, q := range payload {
		question := types.Question{
			ID:       uuid.New(),
			Position: i + 1,
			Text:     strings.TrimSpace(q.Text),
			Type:     q.Type,
		}
		for j, opt := range q.Options {
			question.Options = append(question.Options, types.Option{
				ID:        uuid.New(),
				Position:  j + 1,
				Text:      strings.TrimSpace(opt.Text),
				IsCorrect: opt.IsCorrect,
			})
		}
		questions = append(questions, question)
	}
	return questions
}
