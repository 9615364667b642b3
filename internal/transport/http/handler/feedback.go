package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"feedback-hub/internal/app"
	"feedback-hub/internal/transport/http/response"
)

const (
	msgSourceNotFound = "feedback source not found"
	msgEntryNotFound  = "feedback entry not found"
)

type FeedbackHandler struct {
	feedbackService *app.FeedbackService
	logger          *slog.Logger
}

type CreateSourceRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	SourceType  *string `json:"source_type" binding:"omitempty,max=64"`
	Description *string `json:"description"`
}

type UpdateSourceRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	SourceType  *string `json:"source_type" binding:"omitempty,max=64"`
	Description *string `json:"description"`
}

type CreateEntryRequest struct {
	SourceID string  `json:"source_id" binding:"required"`
	Channel  *string `json:"channel" binding:"omitempty,max=64"`
	Author   *string `json:"author" binding:"omitempty,max=255"`
	Rating   *int    `json:"rating"`
	RawText  string  `json:"raw_text" binding:"required"`
}

type AddTagRequest struct {
	FeedbackID string  `json:"feedback_id" binding:"required"`
	Tag        string  `json:"tag" binding:"required,max=64"`
	Sentiment  *string `json:"sentiment" binding:"omitempty,max=32"`
	Importance *string `json:"importance" binding:"omitempty,max=32"`
}

func NewFeedbackHandler(feedbackService *app.FeedbackService, logger *slog.Logger) *FeedbackHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedbackHandler{feedbackService: feedbackService, logger: logger}
}

func (h *FeedbackHandler) CreateSource(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req CreateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, bindErrorMessage(err))
		return
	}

	source, err := h.feedbackService.CreateSource(c.Request.Context(), userID, app.CreateSourceInput{
		Name:        req.Name,
		SourceType:  req.SourceType,
		Description: req.Description,
	})
	if err != nil {
		h.logFailure(c, "create feedback source", err)
		writeServiceError(c, err, msgSourceNotFound, "create feedback source failed")
		return
	}

	response.OK(c, source)
}

func (h *FeedbackHandler) UpdateSource(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req UpdateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, bindErrorMessage(err))
		return
	}

	source, err := h.feedbackService.UpdateSource(c.Request.Context(), userID, app.UpdateSourceInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		SourceType:  req.SourceType,
		Description: req.Description,
	})
	if err != nil {
		h.logFailure(c, "update feedback source", err)
		writeServiceError(c, err, msgSourceNotFound, "update feedback source failed")
		return
	}

	response.OK(c, source)
}

func (h *FeedbackHandler) ListSources(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	result, err := h.feedbackService.ListSources(c.Request.Context(), userID)
	if err != nil {
		h.logFailure(c, "list feedback sources", err)
		writeServiceError(c, err, msgSourceNotFound, "list feedback sources failed")
		return
	}

	response.OK(c, result)
}

func (h *FeedbackHandler) CreateEntry(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, bindErrorMessage(err))
		return
	}

	entry, err := h.feedbackService.CreateEntry(c.Request.Context(), userID, app.CreateEntryInput{
		SourceID: req.SourceID,
		Channel:  req.Channel,
		Author:   req.Author,
		Rating:   req.Rating,
		RawText:  req.RawText,
	})
	if err != nil {
		h.logFailure(c, "create feedback entry", err)
		writeServiceError(c, err, msgSourceNotFound, "create feedback entry failed")
		return
	}

	response.OK(c, entry)
}

func (h *FeedbackHandler) ListEntries(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	result, err := h.feedbackService.ListEntries(c.Request.Context(), userID, c.Query("source_id"))
	if err != nil {
		h.logFailure(c, "list feedback entries", err)
		writeServiceError(c, err, msgSourceNotFound, "list feedback entries failed")
		return
	}

	response.OK(c, result)
}

func (h *FeedbackHandler) AddTag(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req AddTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, bindErrorMessage(err))
		return
	}

	tag, err := h.feedbackService.AddTag(c.Request.Context(), userID, app.AddTagInput{
		FeedbackID: req.FeedbackID,
		Tag:        req.Tag,
		Sentiment:  req.Sentiment,
		Importance: req.Importance,
	})
	if err != nil {
		h.logFailure(c, "add feedback tag", err)
		writeServiceError(c, err, msgEntryNotFound, "add feedback tag failed")
		return
	}

	response.OK(c, tag)
}

func (h *FeedbackHandler) ListTags(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	result, err := h.feedbackService.ListTags(c.Request.Context(), userID, c.Query("feedback_id"))
	if err != nil {
		h.logFailure(c, "list feedback tags", err)
		writeServiceError(c, err, msgEntryNotFound, "list feedback tags failed")
		return
	}

	response.OK(c, result)
}

// logFailure skips client errors.
func (h *FeedbackHandler) logFailure(c *gin.Context, op string, err error) {
	if isClientError(err) {
		return
	}
	h.logger.Error(op+" failed", "path", c.FullPath(), "error", err)
}

func isClientError(err error) bool {
	return errors.Is(err, app.ErrInvalidInput) ||
		errors.Is(err, app.ErrNotFound) ||
		errors.Is(err, app.ErrUnauthorized)
}
