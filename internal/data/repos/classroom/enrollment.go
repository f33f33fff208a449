package classroom

import (
	"context"

	"github.com/google/uuid"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type EnrollmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error)
	Exists(ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID) (bool, error)
	ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]*types.Enrollment, error)
	ListByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Enrollment, error)
	FullDelete(ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID) error
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	repoLog := baseLog.With("repo", "EnrollmentRepo")
	return &enrollmentRepo{db: db, log: repoLog}
}

func (r *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(enrollments) == 0 {
		return []*types.Enrollment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepo) Exists(ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *enrollmentRepo) ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Enrollment
	if classID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("class_id = ?", classID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *enrollmentRepo) ListByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Enrollment
	if studentID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *enrollmentRepo) FullDelete(ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Delete(&types.Enrollment{}).Error
}
