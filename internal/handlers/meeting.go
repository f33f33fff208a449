package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/requestdata"
	"github.com/mentora-app/mentora-backend/internal/services"
)

type MeetingHandler struct {
	meetingService    services.MeetingService
	submissionService services.SubmissionService
}

func NewMeetingHandler(meetingService services.MeetingService, submissionService services.SubmissionService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService, submissionService: submissionService}
}

func (mh *MeetingHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		ClassID     uuid.UUID `json:"class_id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	meeting := types.Meeting{
		ClassID:     req.ClassID,
		Title:       req.Title,
		Description: req.Description,
	}
	created, err := mh.meetingService.Create(c.Request.Context(), rd.UserID, rd.Role, &meeting)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (mh *MeetingHandler) Get(c *gin.Context) {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting id"})
		return
	}
	meeting, err := mh.meetingService.Get(c.Request.Context(), meetingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meeting)
}

func (mh *MeetingHandler) ListByClass(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}
	meetings, err := mh.meetingService.ListByClass(c.Request.Context(), classID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meetings)
}

func (mh *MeetingHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting id"})
		return
	}
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if err := mh.meetingService.Update(c.Request.Context(), meetingID, rd.UserID, rd.Role, updates); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (mh *MeetingHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting id"})
		return
	}
	if err := mh.meetingService.Delete(c.Request.Context(), meetingID, rd.UserID, rd.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (mh *MeetingHandler) AddMaterial(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting id"})
		return
	}
	var req struct {
		Title    string         `json:"title"`
		FileURL  string         `json:"file_url"`
		Metadata datatypes.JSON `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	material := types.Material{
		Title:    req.Title,
		FileURL:  req.FileURL,
		Metadata: req.Metadata,
	}
	created, err := mh.meetingService.AddMaterial(c.Request.Context(), meetingID, rd.UserID, rd.Role, &material)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (mh *MeetingHandler) DeleteMaterial(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	materialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material id"})
		return
	}
	if err := mh.meetingService.DeleteMaterial(c.Request.Context(), materialID, rd.UserID, rd.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (mh *MeetingHandler) AddAssignment(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting id"})
		return
	}
	var req struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		DueAt       *time.Time `json:"due_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	assignment := types.Assignment{
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
	}
	created, err := mh.meetingService.AddAssignment(c.Request.Context(), meetingID, rd.UserID, rd.Role, &assignment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (mh *MeetingHandler) DeleteAssignment(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}
	if err := mh.meetingService.DeleteAssignment(c.Request.Context(), assignmentID, rd.UserID, rd.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// SubmitAssignment upserts the acting student's submission.
func (mh *MeetingHandler) SubmitAssignment(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}
	var req struct {
		FileURL string `json:"file_url"`
		Note    string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	submission, err := mh.submissionService.Submit(c.Request.Context(), assignmentID, rd.UserID, req.FileURL, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

func (mh *MeetingHandler) GetOwnSubmission(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}
	submission, err := mh.submissionService.GetOwn(c.Request.Context(), assignmentID, rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

func (mh *MeetingHandler) ListSubmissions(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}
	submissions, err := mh.submissionService.ListByAssignment(c.Request.Context(), assignmentID, rd.UserID, rd.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}
