package app

import (
	"github.com/mentora-app/mentora-backend/internal/handlers"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Class   *handlers.ClassHandler
	Meeting *handlers.MeetingHandler
	Board   *handlers.BoardHandler
	Quiz    *handlers.QuizHandler
	Attempt *handlers.AttemptHandler
}

func wireHandlers(s Services) Handlers {
	return Handlers{
		Auth:    handlers.NewAuthHandler(s.Auth),
		Class:   handlers.NewClassHandler(s.Class),
		Meeting: handlers.NewMeetingHandler(s.Meeting, s.Submission),
		Board:   handlers.NewBoardHandler(s.Board),
		Quiz:    handlers.NewQuizHandler(s.Quiz),
		Attempt: handlers.NewAttemptHandler(s.Attempt),
	}
}
