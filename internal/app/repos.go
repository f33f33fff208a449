package app

import (
	"gorm.io/gorm"

	"github.com/mentora-app/mentora-backend/internal/data/repos"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	UserToken    repos.UserTokenRepo
	Class        repos.ClassRepo
	Enrollment   repos.EnrollmentRepo
	Meeting      repos.MeetingRepo
	Material     repos.MaterialRepo
	Assignment   repos.AssignmentRepo
	Submission   repos.SubmissionRepo
	Announcement repos.AnnouncementRepo
	Discussion   repos.DiscussionRepo
	Quiz         repos.QuizRepo
	Attempt      repos.AttemptRepo
	Answer       repos.AnswerRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:         repos.NewUserRepo(db, log),
		UserToken:    repos.NewUserTokenRepo(db, log),
		Class:        repos.NewClassRepo(db, log),
		Enrollment:   repos.NewEnrollmentRepo(db, log),
		Meeting:      repos.NewMeetingRepo(db, log),
		Material:     repos.NewMaterialRepo(db, log),
		Assignment:   repos.NewAssignmentRepo(db, log),
		Submission:   repos.NewSubmissionRepo(db, log),
		Announcement: repos.NewAnnouncementRepo(db, log),
		Discussion:   repos.NewDiscussionRepo(db, log),
		Quiz:         repos.NewQuizRepo(db, log),
		Attempt:      repos.NewAttemptRepo(db, log),
		Answer:       repos.NewAnswerRepo(db, log),
	}
}
