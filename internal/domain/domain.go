package domain

import (
	"github.com/mentora-app/mentora-backend/internal/domain/auth"
	"github.com/mentora-app/mentora-backend/internal/domain/classroom"
	"github.com/mentora-app/mentora-backend/internal/domain/quiz"
	"github.com/mentora-app/mentora-backend/internal/domain/user"
)

const (
	RoleAdmin   = user.RoleAdmin
	RoleMentor  = user.RoleMentor
	RoleStudent = user.RoleStudent

	QuizDraft     = quiz.StatusDraft
	QuizPublished = quiz.StatusPublished

	QuestionMultipleChoice = quiz.QuestionMultipleChoice
	QuestionTrueFalse      = quiz.QuestionTrueFalse
	QuestionEssay          = quiz.QuestionEssay

	AttemptInProgress = quiz.AttemptInProgress
	AttemptFinished   = quiz.AttemptFinished
)

type User = user.User
type UserToken = auth.UserToken

type Class = classroom.Class
type Enrollment = classroom.Enrollment
type Meeting = classroom.Meeting
type Material = classroom.Material
type Assignment = classroom.Assignment
type Submission = classroom.Submission
type Announcement = classroom.Announcement
type Discussion = classroom.Discussion
type DiscussionComment = classroom.DiscussionComment

type Quiz = quiz.Quiz
type Question = quiz.Question
type Option = quiz.Option
type Attempt = quiz.Attempt
type Answer = quiz.Answer

var (
	ValidRole         = user.ValidRole
	ValidQuestionType = quiz.ValidQuestionType
	AutoGradable      = quiz.AutoGradable
)
