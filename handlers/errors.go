package handlers

import (
	"context"
	"errors"
	"net/http"

	"beu/apiclient"
	draftRepo "beu/database/repository/draft"
	"beu/services/calendar"
	"beu/services/notification"
	"beu/services/post"
	"beu/services/profile"
	"beu/services/reservation"
	"beu/services/schedule"
	"beu/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP responses. message is the
// summary shown when the error has no more specific mapping.
func respondError(c *gin.Context, err error, message string) {
	var (
		apiErr *apiclient.APIError
		valErr *schedule.ValidationError
	)
	switch {
	case errors.As(err, &valErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "Schedule validation failed",
			"message":     valErr.Error(),
			"day_of_week": valErr.Day,
			"day_name":    valErr.DayName,
			"rule":        valErr.Rule,
		})
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		utils.JSONError(c, status, message, apiErr.Detail, "backend")
	case errors.Is(err, draftRepo.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": message, "message": err.Error()})
	case errors.Is(err, schedule.ErrDraftForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": message, "message": err.Error()})
	case errors.Is(err, reservation.ErrTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": message, "message": err.Error()})
	case errors.Is(err, reservation.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	case errors.Is(err, calendar.ErrInvalidInput),
		errors.Is(err, schedule.ErrDayOutOfRange),
		errors.Is(err, schedule.ErrDayUnavailable),
		errors.Is(err, schedule.ErrSlotIndex),
		errors.Is(err, schedule.ErrInvalidTime),
		errors.Is(err, schedule.ErrUnknownEdit),
		errors.Is(err, schedule.ErrSlotRequired),
		errors.Is(err, schedule.ErrDuplicateDay),
		errors.Is(err, notification.ErrInvalidStatus),
		errors.Is(err, post.ErrCaptionRequired),
		errors.Is(err, post.ErrEmptyComment),
		errors.Is(err, profile.ErrInvalidService):
		c.JSON(http.StatusBadRequest, gin.H{"error": message, "message": err.Error()})
	case errors.Is(err, post.ErrNoStorage), errors.Is(err, utils.ErrMissingSecret):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": message, "message": err.Error()})
	case errors.Is(err, context.Canceled):
		// The client went away; nobody reads the response.
		getLogger(c).Debug("Request cancelled", zap.String("path", c.FullPath()))
		c.Status(499)
	case errors.Is(err, context.DeadlineExceeded):
		utils.JSONError(c, http.StatusGatewayTimeout, message, err.Error(), "timeout")
	default:
		utils.JSONError(c, http.StatusInternalServerError, message, err.Error(), "")
	}
}
