package quiz

import (
	"context"

	"github.com/google/uuid"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type AnswerRepo interface {
	ReplaceForAttempt(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID, answers []*types.Answer) ([]*types.Answer, error)
	ListByAttemptIDs(ctx context.Context, tx *gorm.DB, attemptIDs []uuid.UUID) ([]*types.Answer, error)
}

type answerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	repoLog := baseLog.With("repo", "AnswerRepo")
	return &answerRepo{db: db, log: repoLog}
}

// ReplaceForAttempt deletes every prior answer row for the attempt and
// inserts the supplied set. Full overwrite, never a merge.
func (r *answerRepo) ReplaceForAttempt(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID, answers []*types.Answer) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Delete(&types.Answer{}).Error; err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return []*types.Answer{}, nil
	}
	for i := range answers {
		answers[i].AttemptID = attemptID
	}
	if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepo) ListByAttemptIDs(ctx context.Context, tx *gorm.DB, attemptIDs []uuid.UUID) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Answer
	if len(attemptIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("attempt_id IN ?", attemptIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
