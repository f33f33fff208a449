package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentora-app/mentora-backend/internal/data/repos"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/domain/apperr"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
)

type SubmissionService interface {
	Submit(ctx context.Context, assignmentID, studentID uuid.UUID, fileURL, note string) (*types.Submission, error)
	GetOwn(ctx context.Context, assignmentID, studentID uuid.UUID) (*types.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID, actorID uuid.UUID, actorRole string) ([]*types.Submission, error)
}

type submissionService struct {
	db             *gorm.DB
	log            *logger.Logger
	classRepo      repos.ClassRepo
	meetingRepo    repos.MeetingRepo
	assignmentRepo repos.AssignmentRepo
	enrollmentRepo repos.EnrollmentRepo
	submissionRepo repos.SubmissionRepo
}

func NewSubmissionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	classRepo repos.ClassRepo,
	meetingRepo repos.MeetingRepo,
	assignmentRepo repos.AssignmentRepo,
	enrollmentRepo repos.EnrollmentRepo,
	submissionRepo repos.SubmissionRepo,
) SubmissionService {
	serviceLog := baseLog.With("service", "SubmissionService")
	return &submissionService{
		db:             db,
		log:            serviceLog,
		classRepo:      classRepo,
		meetingRepo:    meetingRepo,
		assignmentRepo: assignmentRepo,
		enrollmentRepo: enrollmentRepo,
		submissionRepo: submissionRepo,
	}
}

// Submit upserts the student's submission for an assignment: re-submitting
// overwrites the previous file and note.
func (ss *submissionService) Submit(ctx context.Context, assignmentID, studentID uuid.UUID, fileURL, note string) (*types.Submission, error) {
	const op = "SubmissionService.Submit"

	classID, err := ss.classIDForAssignment(ctx, op, assignmentID)
	if err != nil {
		return nil, err
	}
	enrolled, err := ss.enrollmentRepo.Exists(ctx, nil, classID, studentID)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if !enrolled {
		return nil, apperr.New(apperr.CodeNotEnrolled, op, "student is not enrolled in this class")
	}

	submission := &types.Submission{
		ID:           uuid.New(),
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FileURL:      fileURL,
		Note:         note,
	}
	saved, err := ss.submissionRepo.Upsert(ctx, nil, submission)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	return saved, nil
}

func (ss *submissionService) GetOwn(ctx context.Context, assignmentID, studentID uuid.UUID) (*types.Submission, error) {
	const op = "SubmissionService.GetOwn"

	submission, err := ss.submissionRepo.GetByAssignmentAndStudent(ctx, nil, assignmentID, studentID)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	return submission, nil
}

func (ss *submissionService) ListByAssignment(ctx context.Context, assignmentID, actorID uuid.UUID, actorRole string) ([]*types.Submission, error) {
	const op = "SubmissionService.ListByAssignment"

	classID, err := ss.classIDForAssignment(ctx, op, assignmentID)
	if err != nil {
		return nil, err
	}
	classes, err := ss.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(classes) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op, "class not found")
	}
	if actorRole != types.RoleAdmin && classes[0].MentorID != actorID {
		return nil, apperr.New(apperr.CodeForbidden, op, "not the class mentor")
	}

	submissions, err := ss.submissionRepo.ListByAssignmentID(ctx, nil, assignmentID)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	return submissions, nil
}

func (ss *submissionService) classIDForAssignment(ctx context.Context, op string, assignmentID uuid.UUID) (uuid.UUID, error) {
	assignments, err := ss.assignmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assignmentID})
	if err != nil {
		return uuid.Nil, apperr.MapError(op, err)
	}
	if len(assignments) == 0 {
		return uuid.Nil, apperr.New(apperr.CodeNotFound, op, "assignment not found")
	}
	meetings, err := ss.meetingRepo.GetByIDs(ctx, nil, []uuid.UUID{assignments[0].MeetingID})
	if err != nil {
		return uuid.Nil, apperr.MapError(op, err)
	}
	if len(meetings) == 0 {
		return uuid.Nil, apperr.New(apperr.CodeNotFound, op, "meeting not found")
	}
	return meetings[0].ClassID, nil
}
