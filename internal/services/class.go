package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentora-app/mentora-backend/internal/data/repos"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/domain/apperr"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
)

type ClassService interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRole string, class *types.Class) (*types.Class, error)
	Get(ctx context.Context, classID uuid.UUID) (*types.Class, error)
	List(ctx context.Context, actorID uuid.UUID, actorRole string) ([]*types.Class, error)
	Update(ctx context.Context, classID, actorID uuid.UUID, actorRole string, updates map[string]interface{}) error
	Delete(ctx context.Context, classID, actorID uuid.UUID, actorRole string) error
	Enroll(ctx context.Context, classID, studentID uuid.UUID) (*types.Enrollment, error)
	Unenroll(ctx context.Context, classID, studentID, actorID uuid.UUID, actorRole string) error
	ListEnrollments(ctx context.Context, classID uuid.UUID) ([]*types.Enrollment, error)
}

type classService struct {
	db             *gorm.DB
	log            *logger.Logger
	classRepo      repos.ClassRepo
	enrollmentRepo repos.EnrollmentRepo
	userRepo       repos.UserRepo
}

func NewClassService(
	db *gorm.DB,
	baseLog *logger.Logger,
	classRepo repos.ClassRepo,
	enrollmentRepo repos.EnrollmentRepo,
	userRepo repos.UserRepo,
) ClassService {
	serviceLog := baseLog.With("service", "ClassService")
	return &classService{
		db:             db,
		log:            serviceLog,
		classRepo:      classRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
	}
}

func (cs *classService) Create(ctx context.Context, actorID uuid.UUID, actorRole string, class *types.Class) (*types.Class, error) {
	const op = "ClassService.Create"

	if actorRole != types.RoleMentor && actorRole != types.RoleAdmin {
		return nil, apperr.New(apperr.CodeForbidden, op, "only mentors can create classes")
	}
	class.Name = strings.TrimSpace(class.Name)
	if class.Name == "" {
		return nil, apperr.New(apperr.CodeValidation, op, "name is required")
	}
	if class.MentorID == uuid.Nil {
		class.MentorID = actorID
	}

	class.ID = uuid.New()
	if _, err := cs.classRepo.Create(ctx, nil, []*types.Class{class}); err != nil {
		return nil, apperr.MapError(op, err)
	}
	return class, nil
}

func (cs *classService) Get(ctx context.Context, classID uuid.UUID) (*types.Class, error) {
	const op = "ClassService.Get"

	classes, err := cs.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(classes) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op, "class not found")
	}
	return classes[0], nil
}

// List returns the classes relevant to the actor: a mentor sees the
// classes they teach, a student the ones they are enrolled in, an admin
// everything.
func (cs *classService) List(ctx context.Context, actorID uuid.UUID, actorRole string) ([]*types.Class, error) {
	const op = "ClassService.List"

	switch actorRole {
	case types.RoleAdmin:
		classes, err := cs.classRepo.ListAll(ctx, nil)
		if err != nil {
			return nil, apperr.MapError(op, err)
		}
		return classes, nil
	case types.RoleMentor:
		classes, err := cs.classRepo.ListByMentorID(ctx, nil, actorID)
		if err != nil {
			return nil, apperr.MapError(op, err)
		}
		return classes, nil
	default:
		enrollments, err := cs.enrollmentRepo.ListByStudentID(ctx, nil, actorID)
		if err != nil {
			return nil, apperr.MapError(op, err)
		}
		classIDs := make([]uuid.UUID, 0, len(enrollments))
		for _, e := range enrollments {
			classIDs = append(classIDs, e.ClassID)
		}
		classes, err := cs.classRepo.GetByIDs(ctx, nil, classIDs)
		if err != nil {
			return nil, apperr.MapError(op, err)
		}
		return classes, nil
	}
}

func (cs *classService) Update(ctx context.Context, classID, actorID uuid.UUID, actorRole string, updates map[string]interface{}) error {
	const op = "ClassService.Update"

	if _, err := cs.requireOwnership(ctx, op, classID, actorID, actorRole); err != nil {
		return err
	}
	if err := cs.classRepo.Update(ctx, nil, classID, updates); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

func (cs *classService) Delete(ctx context.Context, classID, actorID uuid.UUID, actorRole string) error {
	const op = "ClassService.Delete"

	if _, err := cs.requireOwnership(ctx, op, classID, actorID, actorRole); err != nil {
		return err
	}
	if err := cs.classRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{classID}); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

func (cs *classService) Enroll(ctx context.Context, classID, studentID uuid.UUID) (*types.Enrollment, error) {
	const op = "ClassService.Enroll"

	classes, err := cs.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(classes) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op, "class not found")
	}

	enrollment := &types.Enrollment{ID: uuid.New(), ClassID: classID, StudentID: studentID}
	if _, err := cs.enrollmentRepo.Create(ctx, nil, []*types.Enrollment{enrollment}); err != nil {
		mapped := apperr.MapError(op, err)
		if apperr.IsCode(mapped, apperr.CodeConflict) {
			return nil, apperr.New(apperr.CodeConflict, op, "already enrolled")
		}
		return nil, mapped
	}
	return enrollment, nil
}

func (cs *classService) Unenroll(ctx context.Context, classID, studentID, actorID uuid.UUID, actorRole string) error {
	const op = "ClassService.Unenroll"

	// Students may only drop themselves; the class mentor and admins
	// may remove anyone.
	if actorID != studentID {
		if _, err := cs.requireOwnership(ctx, op, classID, actorID, actorRole); err != nil {
			return err
		}
	}
	if err := cs.enrollmentRepo.FullDelete(ctx, nil, classID, studentID); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

func (cs *classService) ListEnrollments(ctx context.Context, classID uuid.UUID) ([]*types.Enrollment, error) {
	const op = "ClassService.ListEnrollments"

	enrollments, err := cs.enrollmentRepo.ListByClassID(ctx, nil, classID)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	return enrollments, nil
}

func (cs *classService) requireOwnership(ctx context.Context, op string, classID, actorID uuid.UUID, actorRole string) (*types.Class, error) {
	classes, err := cs.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(classes) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op, "class not found")
	}
	class := classes[0]
	if actorRole != types.RoleAdmin && class.MentorID != actorID {
		return nil, apperr.New(apperr.CodeForbidden, op, "not the class mentor")
	}
	return class, nil
}
