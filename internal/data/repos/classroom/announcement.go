package classroom

import (
	"context"

	"github.com/google/uuid"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type AnnouncementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, announcements []*types.Announcement) ([]*types.Announcement, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Announcement, error)
	ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]*types.Announcement, error)
	Update(ctx context.Context, tx *gorm.DB, announcementID uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type announcementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnnouncementRepo(db *gorm.DB, baseLog *logger.Logger) AnnouncementRepo {
	repoLog := baseLog.With("repo", "AnnouncementRepo")
	return &announcementRepo{db: db, log: repoLog}
}

func (r *announcementRepo) Create(ctx context.Context, tx *gorm.DB, announcements []*types.Announcement) ([]*types.Announcement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(announcements) == 0 {
		return []*types.Announcement{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *announcementRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Announcement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Announcement
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

func (r *announcementRepo) ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]*types.Announcement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Announcement
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

func (r *announcementRepo) Update(ctx context.Context, tx *gorm.DB, announcementID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Announcement{}).
		Where("id = ?", announcementID).
		Updates(updates).Error
}

func (r *announcementRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Announcement{}).Error
}
