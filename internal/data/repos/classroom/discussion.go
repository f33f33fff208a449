package classroom

import (
	"context"

	"github.com/google/uuid"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type DiscussionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, discussions []*types.Discussion) ([]*types.Discussion, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Discussion, error)
	ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]*types.Discussion, error)
	CreateComment(ctx context.Context, tx *gorm.DB, comment *types.DiscussionComment) (*types.DiscussionComment, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type discussionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiscussionRepo(db *gorm.DB, baseLog *logger.Logger) DiscussionRepo {
	repoLog := baseLog.With("repo", "DiscussionRepo")
	return &discussionRepo{db: db, log: repoLog}
}

func (r *discussionRepo) Create(ctx context.Context, tx *gorm.DB, discussions []*types.Discussion) ([]*types.Discussion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(discussions) == 0 {
		return []*types.Discussion{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&discussions).Error; err != nil {
		return nil, err
	}
	return discussions, nil
}

func (r *discussionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Discussion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Discussion
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("discussion_comment.created_at ASC")
		}).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *discussionRepo) ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]*types.Discussion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Discussion
	if classID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *discussionRepo) CreateComment(ctx context.Context, tx *gorm.DB, comment *types.DiscussionComment) (*types.DiscussionComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *discussionRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Discussion{}).Error
}
