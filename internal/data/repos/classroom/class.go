package classroom

import (
	"context"

	"github.com/google/uuid"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ClassRepo interface {
	Create(ctx context.Context, tx *gorm.DB, classes []*types.Class) ([]*types.Class, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Class, error)
	ListByMentorID(ctx context.Context, tx *gorm.DB, mentorID uuid.UUID) ([]*types.Class, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Class, error)
	Update(ctx context.Context, tx *gorm.DB, classID uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type classRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassRepo(db *gorm.DB, baseLog *logger.Logger) ClassRepo {
	repoLog := baseLog.With("repo", "ClassRepo")
	return &classRepo{db: db, log: repoLog}
}

func (r *classRepo) Create(ctx context.Context, tx *gorm.DB, classes []*types.Class) ([]*types.Class, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(classes) == 0 {
		return []*types.Class{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Class, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Class
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

func (r *classRepo) ListByMentorID(ctx context.Context, tx *gorm.DB, mentorID uuid.UUID) ([]*types.Class, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Class
	if mentorID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *classRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Class, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Class
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *classRepo) Update(ctx context.Context, tx *gorm.DB, classID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Class{}).
		Where("id = ?", classID).
		Updates(updates).Error
}

func (r *classRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Class{}).Error
}
