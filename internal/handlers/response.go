package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentora-app/mentora-backend/internal/domain/apperr"
)

// respondError maps service error codes onto HTTP statuses. Eligibility
// rejections (enrollment, window, quota) are well-formed requests the
// server refuses to process, hence 422.
func respondError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case apperr.CodeValidation:
		status = http.StatusBadRequest
	case apperr.CodeForbidden:
		status = http.StatusForbidden
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	case apperr.CodeConflict:
		status = http.StatusConflict
	case apperr.CodeNotEnrolled, apperr.CodeNotYetOpen, apperr.CodeClosed, apperr.CodeQuotaExceeded:
		status = http.StatusUnprocessableEntity
	case apperr.CodeRetryable:
		status = http.StatusServiceUnavailable
	}

	body := gin.H{"error": err.Error()}
	if code != "" {
		body["code"] = string(code)
	}
	c.JSON(status, body)
}
