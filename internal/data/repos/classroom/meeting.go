package classroom

import (
	"context"

	"github.com/google/uuid"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type MeetingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, meetings []*types.Meeting) ([]*types.Meeting, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Meeting, error)
	ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]*types.Meeting, error)
	Update(ctx context.Context, tx *gorm.DB, meetingID uuid.UUID, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type meetingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMeetingRepo(db *gorm.DB, baseLog *logger.Logger) MeetingRepo {
	repoLog := baseLog.With("repo", "MeetingRepo")
	return &meetingRepo{db: db, log: repoLog}
}

func (r *meetingRepo) Create(ctx context.Context, tx *gorm.DB, meetings []*types.Meeting) ([]*types.Meeting, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(meetings) == 0 {
		return []*types.Meeting{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *meetingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Meeting, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Meeting
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Materials").
		Preload("Assignments").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *meetingRepo) ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]*types.Meeting, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Meeting
	if classID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *meetingRepo) Update(ctx context.Context, tx *gorm.DB, meetingID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Meeting{}).
		Where("id = ?", meetingID).
		Updates(updates).Error
}

// FullDeleteByIDs removes meetings permanently; materials and
// assignments go with them through the FK cascade.
func (r *meetingRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", ids).
		Delete(&types.Meeting{}).Error
}
