package classroom

import (
	"context"

	"github.com/google/uuid"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, submission *types.Submission) (*types.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID, studentID uuid.UUID) (*types.Submission, error)
	ListByAssignmentID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) ([]*types.Submission, error)
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	repoLog := baseLog.With("repo", "SubmissionRepo")
	return &submissionRepo{db: db, log: repoLog}
}

// Upsert keeps one submission per (assignment, student); a resubmission
// overwrites the previous file and note.
func (r *submissionRepo) Upsert(ctx context.Context, tx *gorm.DB, submission *types.Submission) (*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "assignment_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"file_url", "note", "updated_at"}),
		}).
		Create(submission).Error; err != nil {
		return nil, err
	}
	return submission, nil
}

func (r *submissionRepo) GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID, studentID uuid.UUID) (*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Submission
	if err := transaction.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *submissionRepo) ListByAssignmentID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) ([]*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Submission
	if assignmentID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
