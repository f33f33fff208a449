package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/handlers"
	"github.com/mentora-app/mentora-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware *middleware.AuthMiddleware
	AuthHandler    *handlers.AuthHandler
	ClassHandler   *handlers.ClassHandler
	MeetingHandler *handlers.MeetingHandler
	BoardHandler   *handlers.BoardHandler
	QuizHandler    *handlers.QuizHandler
	AttemptHandler *handlers.AttemptHandler
	AllowOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Refresh-Token"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/api/auth/register", cfg.AuthHandler.Register)
	router.POST("/api/auth/login", cfg.AuthHandler.Login)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	api.POST("/auth/logout", cfg.AuthHandler.Logout)

	mentorOnly := cfg.AuthMiddleware.RequireRole(types.RoleMentor, types.RoleAdmin)

	// Classes & enrollment
	api.GET("/classes", cfg.ClassHandler.List)
	api.POST("/classes", mentorOnly, cfg.ClassHandler.Create)
	api.GET("/classes/:id", cfg.ClassHandler.Get)
	api.PUT("/classes/:id", mentorOnly, cfg.ClassHandler.Update)
	api.DELETE("/classes/:id", mentorOnly, cfg.ClassHandler.Delete)
	api.POST("/classes/:id/enroll", cfg.ClassHandler.Enroll)
	api.DELETE("/classes/:id/enroll", cfg.ClassHandler.Unenroll)
	api.GET("/classes/:id/enrollments", mentorOnly, cfg.ClassHandler.ListEnrollments)

	// Meetings, materials, assignments
	api.POST("/meetings", mentorOnly, cfg.MeetingHandler.Create)
	api.GET("/meetings/:id", cfg.MeetingHandler.Get)
	api.GET("/classes/:id/meetings", cfg.MeetingHandler.ListByClass)
	api.PUT("/meetings/:id", mentorOnly, cfg.MeetingHandler.Update)
	api.DELETE("/meetings/:id", mentorOnly, cfg.MeetingHandler.Delete)
	api.POST("/meetings/:id/materials", mentorOnly, cfg.MeetingHandler.AddMaterial)
	api.DELETE("/materials/:id", mentorOnly, cfg.MeetingHandler.DeleteMaterial)
	api.POST("/meetings/:id/assignments", mentorOnly, cfg.MeetingHandler.AddAssignment)
	api.DELETE("/assignments/:id", mentorOnly, cfg.MeetingHandler.DeleteAssignment)

	// Submissions
	api.POST("/assignments/:id/submissions", cfg.MeetingHandler.SubmitAssignment)
	api.GET("/assignments/:id/submissions/me", cfg.MeetingHandler.GetOwnSubmission)
	api.GET("/assignments/:id/submissions", mentorOnly, cfg.MeetingHandler.ListSubmissions)

	// Announcements & discussions
	api.POST("/announcements", mentorOnly, cfg.BoardHandler.CreateAnnouncement)
	api.GET("/classes/:id/announcements", cfg.BoardHandler.ListAnnouncements)
	api.PUT("/announcements/:id", mentorOnly, cfg.BoardHandler.UpdateAnnouncement)
	api.DELETE("/announcements/:id", mentorOnly, cfg.BoardHandler.DeleteAnnouncement)
	api.POST("/discussions", cfg.BoardHandler.CreateDiscussion)
	api.GET("/discussions/:id", cfg.BoardHandler.GetDiscussion)
	api.GET("/classes/:id/discussions", cfg.BoardHandler.ListDiscussions)
	api.POST("/discussions/:id/comments", cfg.BoardHandler.AddComment)
	api.DELETE("/discussions/:id", cfg.BoardHandler.DeleteDiscussion)

	// Quizzes & attempts
	api.POST("/quizzes", mentorOnly, cfg.QuizHandler.Create)
	api.GET("/quizzes/:id", cfg.QuizHandler.Get)
	api.GET("/classes/:id/quizzes", cfg.QuizHandler.ListByClass)
	api.PUT("/quizzes/:id", mentorOnly, cfg.QuizHandler.Update)
	api.DELETE("/quizzes/:id", mentorOnly, cfg.QuizHandler.Delete)
	api.POST("/quizzes/:id/attempts", cfg.AttemptHandler.Start)
	api.GET("/quizzes/:id/attempts", cfg.AttemptHandler.History)
	api.POST("/attempts/:id/submit", cfg.AttemptHandler.Submit)
	api.GET("/attempts/:id", cfg.AttemptHandler.Get)

	return router
}
