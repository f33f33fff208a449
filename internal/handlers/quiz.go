package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mentora-app/mentora-backend/internal/requestdata"
	"github.com/mentora-app/mentora-backend/internal/services"
)

type QuizHandler struct {
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (qh *QuizHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var payload services.QuizPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	quiz, err := qh.quizService.Create(c.Request.Context(), rd.UserID, rd.Role, &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (qh *QuizHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
		return
	}
	quiz, err := qh.quizService.Get(c.Request.Context(), quizID, rd.UserID, rd.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (qh *QuizHandler) ListByClass(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}
	quizzes, err := qh.quizService.ListByClass(c.Request.Context(), classID, rd.UserID, rd.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (qh *QuizHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
		return
	}
	var payload services.QuizPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	quiz, err := qh.quizService.Update(c.Request.Context(), quizID, rd.UserID, rd.Role, &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (qh *QuizHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
		return
	}
	if err := qh.quizService.Delete(c.Request.Context(), quizID, rd.UserID, rd.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
