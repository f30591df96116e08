package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"storymap-backend/internal/shared/apperror"
)

// OK writes a 200 with the body as-is, e.g. {"places": [...]}.
func OK(c *gin.Context, body gin.H) {
	c.JSON(http.StatusOK, body)
}

// Created writes the 201 submission envelope: {success, message, <key>: value}.
func Created(c *gin.Context, message, key string, value interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if key != "" {
		body[key] = value
	}
	c.JSON(http.StatusCreated, body)
}

// Success writes {success, message, <key>: value} with the given status.
func Success(c *gin.Context, statusCode int, message, key string, value interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if key != "" {
		body[key] = value
	}
	c.JSON(statusCode, body)
}

// Error renders err as {error, message?, details?, ...fields}.
// Errors outside the apperror taxonomy become a bare 500.
func Error(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("Unclassified error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(appErr.Err).
			Str("request_id", c.GetString("request_id")).
			Str("kind", string(appErr.Kind)).
			Msg(appErr.Message)
	}

	body := gin.H{"error": appErr.Message}
	if appErr.Detail != "" {
		body["message"] = appErr.Detail
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	for k, v := range appErr.Fields {
		body[k] = v
	}
	c.JSON(status, body)
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}
