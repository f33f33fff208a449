package repos

import (
	"github.com/mentora-app/mentora-backend/internal/data/repos/auth"
	"github.com/mentora-app/mentora-backend/internal/data/repos/classroom"
	"github.com/mentora-app/mentora-backend/internal/data/repos/quiz"
	"github.com/mentora-app/mentora-backend/internal/data/repos/user"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type ClassRepo = classroom.ClassRepo
type EnrollmentRepo = classroom.EnrollmentRepo
type MeetingRepo = classroom.MeetingRepo
type MaterialRepo = classroom.MaterialRepo
type AssignmentRepo = classroom.AssignmentRepo
type SubmissionRepo = classroom.SubmissionRepo
type AnnouncementRepo = classroom.AnnouncementRepo
type DiscussionRepo = classroom.DiscussionRepo

type QuizRepo = quiz.QuizRepo
type AttemptRepo = quiz.AttemptRepo
type AnswerRepo = quiz.AnswerRepo

var (
	NewUserRepo      = user.NewUserRepo
	NewUserTokenRepo = auth.NewUserTokenRepo

	NewClassRepo        = classroom.NewClassRepo
	NewEnrollmentRepo   = classroom.NewEnrollmentRepo
	NewMeetingRepo      = classroom.NewMeetingRepo
	NewMaterialRepo     = classroom.NewMaterialRepo
	NewAssignmentRepo   = classroom.NewAssignmentRepo
	NewSubmissionRepo   = classroom.NewSubmissionRepo
	NewAnnouncementRepo = classroom.NewAnnouncementRepo
	NewDiscussionRepo   = classroom.NewDiscussionRepo

	NewQuizRepo    = quiz.NewQuizRepo
	NewAttemptRepo = quiz.NewAttemptRepo
	NewAnswerRepo  = quiz.NewAnswerRepo
)
