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

// BoardService covers the class message board: announcements posted by
// the mentor plus open discussions any class member can start.
type BoardService interface {
	CreateAnnouncement(ctx context.Context, actorID uuid.UUID, actorRole string, announcement *types.Announcement) (*types.Announcement, error)
	ListAnnouncements(ctx context.Context, classID uuid.UUID) ([]*types.Announcement, error)
	UpdateAnnouncement(ctx context.Context, announcementID, actorID uuid.UUID, actorRole string, updates map[string]interface{}) error
	DeleteAnnouncement(ctx context.Context, announcementID, actorID uuid.UUID, actorRole string) error

	CreateDiscussion(ctx context.Context, actorID uuid.UUID, actorRole string, discussion *types.Discussion) (*types.Discussion, error)
	GetDiscussion(ctx context.Context, discussionID uuid.UUID) (*types.Discussion, error)
	ListDiscussions(ctx context.Context, classID uuid.UUID) ([]*types.Discussion, error)
	AddComment(ctx context.Context, discussionID, authorID uuid.UUID, authorRole, body string) (*types.DiscussionComment, error)
	DeleteDiscussion(ctx context.Context, discussionID, actorID uuid.UUID, actorRole string) error
}

type boardService struct {
	db               *gorm.DB
	log              *logger.Logger
	classRepo        repos.ClassRepo
	enrollmentRepo   repos.EnrollmentRepo
	announcementRepo repos.AnnouncementRepo
	discussionRepo   repos.DiscussionRepo
}

func NewBoardService(
	db *gorm.DB,
	baseLog *logger.Logger,
	classRepo repos.ClassRepo,
	enrollmentRepo repos.EnrollmentRepo,
	announcementRepo repos.AnnouncementRepo,
	discussionRepo repos.DiscussionRepo,
) BoardService {
	serviceLog := baseLog.With("service", "BoardService")
	return &boardService{
		db:               db,
		log:              serviceLog,
		classRepo:        classRepo,
		enrollmentRepo:   enrollmentRepo,
		announcementRepo: announcementRepo,
		discussionRepo:   discussionRepo,
	}
}

func (bs *boardService) CreateAnnouncement(ctx context.Context, actorID uuid.UUID, actorRole string, announcement *types.Announcement) (*types.Announcement, error) {
	const op = "BoardService.CreateAnnouncement"

	if err := bs.requireMentor(ctx, op, announcement.ClassID, actorID, actorRole); err != nil {
		return nil, err
	}
	announcement.Title = strings.TrimSpace(announcement.Title)
	if announcement.Title == "" {
		return nil, apperr.New(apperr.CodeValidation, op, "title is required")
	}

	announcement.ID = uuid.New()
	announcement.AuthorID = actorID
	if _, err := bs.announcementRepo.Create(ctx, nil, []*types.Announcement{announcement}); err != nil {
		return nil, apperr.MapError(op, err)
	}
	return announcement, nil
}

func (bs *boardService) ListAnnouncements(ctx context.Context, classID uuid.UUID) ([]*types.Announcement, error) {
	const op = "BoardService.ListAnnouncements"

	announcements, err := bs.announcementRepo.ListByClassID(ctx, nil, classID)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	return announcements, nil
}

func (bs *boardService) UpdateAnnouncement(ctx context.Context, announcementID, actorID uuid.UUID, actorRole string, updates map[string]interface{}) error {
	const op = "BoardService.UpdateAnnouncement"

	announcement, err := bs.getAnnouncement(ctx, op, announcementID)
	if err != nil {
		return err
	}
	if err := bs.requireMentor(ctx, op, announcement.ClassID, actorID, actorRole); err != nil {
		return err
	}
	if err := bs.announcementRepo.Update(ctx, nil, announcementID, updates); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

func (bs *boardService) DeleteAnnouncement(ctx context.Context, announcementID, actorID uuid.UUID, actorRole string) error {
	const op = "BoardService.DeleteAnnouncement"

	announcement, err := bs.getAnnouncement(ctx, op, announcementID)
	if err != nil {
		return err
	}
	if err := bs.requireMentor(ctx, op, announcement.ClassID, actorID, actorRole); err != nil {
		return err
	}
	if err := bs.announcementRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{announcementID}); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

func (bs *boardService) CreateDiscussion(ctx context.Context, actorID uuid.UUID, actorRole string, discussion *types.Discussion) (*types.Discussion, error) {
	const op = "BoardService.CreateDiscussion"

	if err := bs.requireMember(ctx, op, discussion.ClassID, actorID, actorRole); err != nil {
		return nil, err
	}
	discussion.Title = strings.TrimSpace(discussion.Title)
	if discussion.Title == "" {
		return nil, apperr.New(apperr.CodeValidation, op, "title is required")
	}

	discussion.ID = uuid.New()
	discussion.AuthorID = actorID
	if _, err := bs.discussionRepo.Create(ctx, nil, []*types.Discussion{discussion}); err != nil {
		return nil, apperr.MapError(op, err)
	}
	return discussion, nil
}

func (bs *boardService) GetDiscussion(ctx context.Context, discussionID uuid.UUID) (*types.Discussion, error) {
	const op = "BoardService.GetDiscussion"

	discussions, err := bs.discussionRepo.GetByIDs(ctx, nil, []uuid.UUID{discussionID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(discussions) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op, "discussion not found")
	}
	return discussions[0], nil
}

func (bs *boardService) ListDiscussions(ctx context.Context, classID uuid.UUID) ([]*types.Discussion, error) {
	const op = "BoardService.ListDiscussions"

	discussions, err := bs.discussionRepo.ListByClassID(ctx, nil, classID)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	return discussions, nil
}

func (bs *boardService) AddComment(ctx context.Context, discussionID, authorID uuid.UUID, authorRole, body string) (*types.DiscussionComment, error) {
	const op = "BoardService.AddComment"

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.New(apperr.CodeValidation, op, "body is required")
	}
	discussion, err := bs.GetDiscussion(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if err := bs.requireMember(ctx, op, discussion.ClassID, authorID, authorRole); err != nil {
		return nil, err
	}

	comment := &types.DiscussionComment{
		ID:           uuid.New(),
		DiscussionID: discussionID,
		AuthorID:     authorID,
		Body:         body,
	}
	saved, err := bs.discussionRepo.CreateComment(ctx, nil, comment)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	return saved, nil
}

func (bs *boardService) DeleteDiscussion(ctx context.Context, discussionID, actorID uuid.UUID, actorRole string) error {
	const op = "BoardService.DeleteDiscussion"

	discussion, err := bs.GetDiscussion(ctx, discussionID)
	if err != nil {
		return err
	}
	// The author may delete their own thread; otherwise mentor/admin.
	if discussion.AuthorID != actorID {
		if err := bs.requireMentor(ctx, op, discussion.ClassID, actorID, actorRole); err != nil {
			return err
		}
	}
	if err := bs.discussionRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{discussionID}); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

func (bs *boardService) getAnnouncement(ctx context.Context, op string, announcementID uuid.UUID) (*types.Announcement, error) {
	announcements, err := bs.announcementRepo.GetByIDs(ctx, nil, []uuid.UUID{announcementID})
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if len(announcements) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op, "announcement not found")
	}
	return announcements[0], nil
}

func (bs *boardService) requireMentor(ctx context.Context, op string, classID, actorID uuid.UUID, actorRole string) error {
	classes, err := bs.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
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

// requireMember admits the class mentor, admins and enrolled students.
func (bs *boardService) requireMember(ctx context.Context, op string, classID, actorID uuid.UUID, actorRole string) error {
	classes, err := bs.classRepo.GetByIDs(ctx, nil, []uuid.UUID{classID})
	if err != nil {
		return apperr.MapError(op, err)
	}
	if len(classes) == 0 {
		return apperr.New(apperr.CodeNotFound, op, "class not found")
	}
	if actorRole == types.RoleAdmin || classes[0].MentorID == actorID {
		return nil
	}
	enrolled, err := bs.enrollmentRepo.Exists(ctx, nil, classID, actorID)
	if err != nil {
		return apperr.MapError(op, err)
	}
	if !enrolled {
		return apperr.New(apperr.CodeNotEnrolled, op, "not a member of this class")
	}
	return nil
}
