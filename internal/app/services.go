package app

import (
	"gorm.io/gorm"

	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"github.com/mentora-app/mentora-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Class      services.ClassService
	Meeting    services.MeetingService
	Submission services.SubmissionService
	Board      services.BoardService
	Quiz       services.QuizService
	Attempt    services.AttemptService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	return Services{
		Auth: services.NewAuthService(db, log, r.User, r.UserToken,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Class:      services.NewClassService(db, log, r.Class, r.Enrollment, r.User),
		Meeting:    services.NewMeetingService(db, log, r.Class, r.Meeting, r.Material, r.Assignment),
		Submission: services.NewSubmissionService(db, log, r.Class, r.Meeting, r.Assignment, r.Enrollment, r.Submission),
		Board:      services.NewBoardService(db, log, r.Class, r.Enrollment, r.Announcement, r.Discussion),
		Quiz:       services.NewQuizService(db, log, r.Class, r.Quiz),
		Attempt:    services.NewAttemptService(db, log, r.Class, r.Enrollment, r.Quiz, r.Attempt, r.Answer),
	}
}
