package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"feedback-hub/internal/app"
	"feedback-hub/internal/transport/http/middleware"
	"feedback-hub/internal/transport/http/response"
)

func getUserIDFromContext(c *gin.Context) (string, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	userID, ok := userIDAny.(string)
	return userID, ok && userID != ""
}

func writeServiceError(c *gin.Context, err error, notFoundMessage, fallbackMessage string) {
	switch {
	case errors.Is(err, app.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "unauthorized")
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, notFoundMessage)
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallbackMessage)
	}
}
