package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attempts []*types.Attempt) ([]*types.Attempt, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Attempt, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Attempt, error)
	GetInProgress(ctx context.Context, tx *gorm.DB, quizID, studentID uuid.UUID) (*types.Attempt, error)
	CountFinished(ctx context.Context, tx *gorm.DB, quizID, studentID uuid.UUID) (int64, error)
	ListByQuiz(ctx context.Context, tx *gorm.DB, quizID uuid.UUID, studentID *uuid.UUID) ([]*types.Attempt, error)
	Finish(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID, score float64, finishedAt time.Time) (int64, error)
}

type attemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttemptRepo(db *gorm.DB, baseLog *logger.Logger) AttemptRepo {
	repoLog := baseLog.With("repo", "AttemptRepo")
	return &attemptRepo{db: db, log: repoLog}
}

func (r *attemptRepo) Create(ctx context.Context, tx *gorm.DB, attempts []*types.Attempt) ([]*types.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(attempts) == 0 {
		return []*types.Attempt{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Attempt
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByIDForUpdate locks the attempt row for the rest of the enclosing
// transaction so concurrent submits serialize on it.
func (r *attemptRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Attempt
	if err := transaction.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *attemptRepo) GetInProgress(ctx context.Context, tx *gorm.DB, quizID, studentID uuid.UUID) (*types.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Attempt
	err := transaction.WithContext(ctx).
		Where("quiz_id = ? AND student_id = ? AND status = ?", quizID, studentID, types.AttemptInProgress).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *attemptRepo) CountFinished(ctx context.Context, tx *gorm.DB, quizID, studentID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Attempt{}).
		Where("quiz_id = ? AND student_id = ? AND status = ?", quizID, studentID, types.AttemptFinished).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByQuiz returns attempts newest-first. A nil studentID lists the
// whole quiz (mentor/admin view).
func (r *attemptRepo) ListByQuiz(ctx context.Context, tx *gorm.DB, quizID uuid.UUID, studentID *uuid.UUID) ([]*types.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Attempt
	if quizID == uuid.Nil {
		return results, nil
	}

	query := transaction.WithContext(ctx).
		Preload("Answers").
		Where("quiz_id = ?", quizID)
	if studentID != nil {
		query = query.Where("student_id = ?", *studentID)
	}
	if err := query.Order("started_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Finish closes an attempt, guarded so only an in_progress row can
// transition; the returned row count tells the caller whether it won.
func (r *attemptRepo) Finish(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID, score float64, finishedAt time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Attempt{}).
		Where("id = ? AND status = ?", attemptID, types.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":      types.AttemptFinished,
			"score":       score,
			"finished_at": finishedAt,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
