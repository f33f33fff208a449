package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mentora-app/mentora-backend/internal/requestdata"
	"github.com/mentora-app/mentora-backend/internal/services"
)

type AttemptHandler struct {
	attemptService services.AttemptService
}

func NewAttemptHandler(attemptService services.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// Start opens an attempt on a quiz, or returns the attempt already in
// progress for the acting student.
func (ah *AttemptHandler) Start(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
		return
	}
	attempt, err := ah.attemptService.StartOrResume(c.Request.Context(), quizID, rd.UserID, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

func (ah *AttemptHandler) Submit(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	attemptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt id"})
		return
	}
	var req struct {
		Answers map[uuid.UUID]string `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	attempt, err := ah.attemptService.Submit(c.Request.Context(), attemptID, rd.UserID, req.Answers, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

func (ah *AttemptHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	attemptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt id"})
		return
	}
	attempt, err := ah.attemptService.Get(c.Request.Context(), attemptID, rd.UserID, rd.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// History lists the acting student's attempts on a quiz; ?all=1 asks
// for every student's (class mentor and admin only).
func (ah *AttemptHandler) History(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
		return
	}
	allStudents := c.Query("all") == "1"
	views, err := ah.attemptService.History(c.Request.Context(), quizID, rd.UserID, rd.Role, allStudents)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
