package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/requestdata"
	"github.com/mentora-app/mentora-backend/internal/services"
)

type ClassHandler struct {
	classService services.ClassService
}

func NewClassHandler(classService services.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

func (ch *ClassHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	class := types.Class{
		Name:         req.Name,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
	}
	created, err := ch.classService.Create(c.Request.Context(), rd.UserID, rd.Role, &class)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ch *ClassHandler) Get(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}
	class, err := ch.classService.Get(c.Request.Context(), classID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (ch *ClassHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	classes, err := ch.classService.List(c.Request.Context(), rd.UserID, rd.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (ch *ClassHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}
	var req struct {
		Name         *string `json:"name"`
		Description  *string `json:"description"`
		ThumbnailURL *string `json:"thumbnail_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ThumbnailURL != nil {
		updates["thumbnail_url"] = *req.ThumbnailURL
	}
	if err := ch.classService.Update(c.Request.Context(), classID, rd.UserID, rd.Role, updates); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (ch *ClassHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}
	if err := ch.classService.Delete(c.Request.Context(), classID, rd.UserID, rd.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Enroll enrolls the acting student into a class.
func (ch *ClassHandler) Enroll(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}
	enrollment, err := ch.classService.Enroll(c.Request.Context(), classID, rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

func (ch *ClassHandler) Unenroll(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}
	studentID := rd.UserID
	if raw := c.Query("student_id"); raw != "" {
		studentID, err = uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
			return
		}
	}
	if err := ch.classService.Unenroll(c.Request.Context(), classID, studentID, rd.UserID, rd.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unenrolled"})
}

func (ch *ClassHandler) ListEnrollments(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}
	enrollments, err := ch.classService.ListEnrollments(c.Request.Context(), classID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}
