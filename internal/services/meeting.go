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

type MeetingService interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRole string, meeting *types.Meeting) (*types.Meeting, error)
	Get(ctx context.Context, meetingID uuid.UUID) (*types.Meeting, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]*types.Meeting, error)
	Update(ctx context.Context, meetingID, actorID uuid.UUID, actorRole string, updates map[string]interface{}) error
	Delete(ctx context.Context, meetingID, actorID uuid.UUID, actorRole string) error

	AddMaterial(ctx context.Context, meetingID, actorID uuid.UUID, actorRole string, material *types.Material) (*types.Material, error)
	DeleteMaterial(ctx context.Context, materialID, actorID uuid.UUID, actorRole string) error
	AddAssignment(ctx context.Context, meetingID, actorID uuid.UUID, actorRole string, assignment *types.Assignment) (*types.Assignment, error)
	DeleteAssignment(ctx context.Context, assignmentID, actorID uuid.UUID, actorRole string) error
}

type meetingService struct {
	db             *gorm.DB
	log            *logger.Logger
	classRepo      repos.ClassRepo
	meetingRepo    repos.MeetingRepo
	materialRepo   repos.MaterialRepo
	assignmentRepo repos.AssignmentRepo
}

func NewMeetingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	classRepo repos.ClassRepo,
	meetingRepo repos.MeetingRepo,
	materialRepo repos.MaterialRepo,
	assignmentRepo repos.AssignmentRepo,
) MeetingService {
	serviceLog := baseLog.With("service", "MeetingService")
	return &meetingService{
		db:             db,
		log:            serviceLog,
		classRepo:      classRepo,
		meetingRepo:    meetingRepo,
		materialRepo:   materialRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (ms *meetingService) Create(ctx context.Context, actorID uuid.UUID, actorRole string, meeting *types.Meeting) (*types.Meeting, error) {
	const op = "MeetingService.Create"

	if err := ms.requireClassOwnership(ctx, op, meeting.ClassID, actorID, actorRole); err != nil {
		return nil, err
	}
	meeting.Title = strings.TrimSpace(meeting.Title)
	if meeting.Title == "" {
		return nil, apperr.New(apperr.CodeValidation, op, "title is required")
	}

	meeting.ID = uuid.New()
	if _, err := ms.meetingRepo.Create(ctx, nil, []*types.Meeting{meeting}); err != nil {
		return nil, apperr.MapError(op, err)
	}
	return meeting, nil
}

func (ms *meetingService) Get(ctx context.Context, meetingID uuid.UUID) (*types.Meeting, error) {
	const op = "MeetingService.Get"

	meetings, err := ms.meetingRepo.GetByIDs(ctx, nil, []uuid.UUID{meetingID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(meetings) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op, "meeting not found")
	}
	return meetings[0], nil
}

func (ms *meetingService) ListByClass(ctx context.Context, classID uuid.UUID) ([]*types.Meeting, error) {
	const op = "MeetingService.ListByClass"

	meetings, err := ms.meetingRepo.ListByClassID(ctx, nil, classID)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	return meetings, nil
}

func (ms *meetingService) Update(ctx context.Context, meetingID, actorID uuid.UUID, actorRole string, updates map[string]interface{}) error {
	const op = "MeetingService.Update"

	meeting, err := ms.Get(ctx, meetingID)
	if err != nil {
		return err
	}
	if err := ms.requireClassOwnership(ctx, op, meeting.ClassID, actorID, actorRole); err != nil {
		return err
	}
	if err := ms.meetingRepo.Update(ctx, nil, meetingID, updates); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

func (ms *meetingService) Delete(ctx context.Context, meetingID, actorID uuid.UUID, actorRole string) error {
	const op = "MeetingService.Delete"

	meeting, err := ms.Get(ctx, meetingID)
	if err != nil {
		return err
	}
	if err := ms.requireClassOwnership(ctx, op, meeting.ClassID, actorID, actorRole); err != nil {
		return err
	}
	if err := ms.meetingRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{meetingID}); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

func (ms *meetingService) AddMaterial(ctx context.Context, meetingID, actorID uuid.UUID, actorRole string, material *types.Material) (*types.Material, error) {
	const op = "MeetingService.AddMaterial"

	meeting, err := ms.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if err := ms.requireClassOwnership(ctx, op, meeting.ClassID, actorID, actorRole); err != nil {
		return nil, err
	}
	material.Title = strings.TrimSpace(material.Title)
	if material.Title == "" {
		return nil, apperr.New(apperr.CodeValidation, op, "title is required")
	}

	material.ID = uuid.New()
	material.MeetingID = meetingID
	if _, err := ms.materialRepo.Create(ctx, nil, []*types.Material{material}); err != nil {
		return nil, apperr.MapError(op, err)
	}
	return material, nil
}

func (ms *meetingService) DeleteMaterial(ctx context.Context, materialID, actorID uuid.UUID, actorRole string) error {
	const op = "MeetingService.DeleteMaterial"

	materials, err := ms.materialRepo.GetByIDs(ctx, nil, []uuid.UUID{materialID})
	if err != nil {
		return apperr.MapError(op, err)
	}
	if len(materials) == 0 {
		return apperr.New(apperr.CodeNotFound, op, "material not found")
	}
	meeting, err := ms.Get(ctx, materials[0].MeetingID)
	if err != nil {
		return err
	}
	if err := ms.requireClassOwnership(ctx, op, meeting.ClassID, actorID, actorRole); err != nil {
		return err
	}
	if err := ms.materialRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{materialID}); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

func (ms *meetingService) AddAssignment(ctx context.Context, meetingID, actorID uuid.UUID, actorRole string, assignment *types.Assignment) (*types.Assignment, error) {
	const op = "MeetingService.AddAssignment"

	meeting, err := ms.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if err := ms.requireClassOwnership(ctx, op, meeting.ClassID, actorID, actorRole); err != nil {
		return nil, err
	}
	assignment.Title = strings.TrimSpace(assignment.Title)
	if assignment.Title == "" {
		return nil, apperr.New(apperr.CodeValidation, op, "title is required")
	}

	assignment.ID = uuid.New()
	assignment.MeetingID = meetingID
	if _, err := ms.assignmentRepo.Create(ctx, nil, []*types.Assignment{assignment}); err != nil {
		return nil, apperr.MapError(op, err)
	}
	return assignment, nil
}

func (ms *meetingService) DeleteAssignment(ctx context.Context, assignmentID, actorID uuid.UUID, actorRole string) error {
	const op = "MeetingService.DeleteAssignment"

	assignments, err := ms.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assignmentID})
	if err != nil {
		return apperr.MapError(op, err)
	}
	if len(assignments) == 0 {
		return apperr.New(apperr.CodeNotFound, op, "assignment not found")
	}
	meeting, err := ms.Get(ctx, assignments[0].MeetingID)
	if err != nil {
		return err
	}
	if err := ms.requireClassOwnership(ctx, op, meeting.ClassID, actorID, actorRole); err != nil {
		return err
	}
	if err := ms.assignmentRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{assignmentID}); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

func (ms *meetingService) requireClassOwnership(ctx context.Context, op string, classID, actorID uuid.UUID, actorRole string) error {
	classes, err := ms.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
	if err != nil {
		return apperr.MapError(op, err)
	}
	if len(classes) == 0 {
		return apperr.New(apperr.CodeNotFound, op, "class not found")
	}
	if actorRole != types.RoleAdmin && classes[0].MentorID != actorID {
		return apperr.New(apperr.CodeForbidden, op, "not the class mentor")
	}
	return nil
}
