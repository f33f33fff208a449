package quiz

import (
	"context"

	"github.com/google/uuid"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type QuizRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Quiz, error)
	ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID, status string) ([]*types.Quiz, error)
	UpdateMeta(ctx context.Context, tx *gorm.DB, quizID uuid.UUID, updates map[string]interface{}) error
	ReplaceQuestions(ctx context.Context, tx *gorm.DB, quizID uuid.UUID, questions []types.Question) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	repoLog := baseLog.With("repo", "QuizRepo")
	return &quizRepo{db: db, log: repoLog}
}

// Create inserts the quiz together with its nested question/option tree.
func (r *quizRepo) Create(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(quiz).Error; err != nil {
		return nil, err
	}
	return quiz, nil
}

func (r *quizRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Quiz
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_question.position ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_option.position ASC")
		}).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizRepo) ListByClassID(ctx context.Context, tx *gorm.DB, classID uuid.UUID, status string) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Quiz
	if classID == uuid.Nil {
		return results, nil
	}

	query := transaction.WithContext(ctx).Where("class_id = ?", classID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizRepo) UpdateMeta(ctx context.Context, tx *gorm.DB, quizID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Quiz{}).
		Where("id = ?", quizID).
		Updates(updates).Error
}

// ReplaceQuestions drops the whole question tree for a quiz and
// reinserts the supplied set. No per-question diffing: options go with
// their questions through the FK cascade.
func (r *quizRepo) ReplaceQuestions(ctx context.Context, tx *gorm.DB, quizID uuid.UUID, questions []types.Question) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Delete(&types.Question{}).Error; err != nil {
		return err
	}
	if len(questions) == 0 {
		return nil
	}
	for i := range questions {
		questions[i].QuizID = quizID
	}
	return transaction.WithContext(ctx).Create(&questions).Error
}

// FullDeleteByIDs removes quizzes permanently; questions, options,
// attempts and answers follow through the FK cascade.
func (r *quizRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
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
		Delete(&types.Quiz{}).Error
}
