package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/requestdata"
	"github.com/mentora-app/mentora-backend/internal/services"
)

type BoardHandler struct {
	boardService services.BoardService
}

func NewBoardHandler(boardService services.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

func (bh *BoardHandler) CreateAnnouncement(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		ClassID uuid.UUID `json:"class_id"`
		Title   string    `json:"title"`
		Body    string    `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	announcement := types.Announcement{
		ClassID: req.ClassID,
		Title:   req.Title,
		Body:    req.Body,
	}
	created, err := bh.boardService.CreateAnnouncement(c.Request.Context(), rd.UserID, rd.Role, &announcement)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (bh *BoardHandler) ListAnnouncements(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}
	announcements, err := bh.boardService.ListAnnouncements(c.Request.Context(), classID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, announcements)
}

func (bh *BoardHandler) UpdateAnnouncement(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	announcementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}
	var req struct {
		Title *string `json:"title"`
		Body  *string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if err := bh.boardService.UpdateAnnouncement(c.Request.Context(), announcementID, rd.UserID, rd.Role, updates); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (bh *BoardHandler) DeleteAnnouncement(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	announcementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}
	if err := bh.boardService.DeleteAnnouncement(c.Request.Context(), announcementID, rd.UserID, rd.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (bh *BoardHandler) CreateDiscussion(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		ClassID uuid.UUID `json:"class_id"`
		Title   string    `json:"title"`
		Body    string    `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	discussion := types.Discussion{
		ClassID: req.ClassID,
		Title:   req.Title,
		Body:    req.Body,
	}
	created, err := bh.boardService.CreateDiscussion(c.Request.Context(), rd.UserID, rd.Role, &discussion)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (bh *BoardHandler) GetDiscussion(c *gin.Context) {
	discussionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discussion id"})
		return
	}
	discussion, err := bh.boardService.GetDiscussion(c.Request.Context(), discussionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, discussion)
}

func (bh *BoardHandler) ListDiscussions(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}
	discussions, err := bh.boardService.ListDiscussions(c.Request.Context(), classID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, discussions)
}

func (bh *BoardHandler) AddComment(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	discussionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discussion id"})
		return
	}
	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	comment, err := bh.boardService.AddComment(c.Request.Context(), discussionID, rd.UserID, rd.Role, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (bh *BoardHandler) DeleteDiscussion(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	discussionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discussion id"})
		return
	}
	if err := bh.boardService.DeleteDiscussion(c.Request.Context(), discussionID, rd.UserID, rd.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
