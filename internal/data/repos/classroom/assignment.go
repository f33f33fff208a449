package classroom

import (
	"context"

	"github.com/google/uuid"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type AssignmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assignments []*types.Assignment) ([]*types.Assignment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assignment, error)
	ListByMeetingIDs(ctx context.Context, tx *gorm.DB, meetingIDs []uuid.UUID) ([]*types.Assignment, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	repoLog := baseLog.With("repo", "AssignmentRepo")
	return &assignmentRepo{db: db, log: repoLog}
}

func (r *assignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignments []*types.Assignment) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(assignments) == 0 {
		return []*types.Assignment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Assignment
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

func (r *assignmentRepo) ListByMeetingIDs(ctx context.Context, tx *gorm.DB, meetingIDs []uuid.UUID) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Assignment
	if len(meetingIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("meeting_id IN ?", meetingIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assignmentRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Assignment{}).Error
}
