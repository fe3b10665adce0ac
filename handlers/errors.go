package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kleanzilla/database/repository"
	"kleanzilla/services/booking"
	"kleanzilla/services/notification"
	"kleanzilla/services/storage"
	"kleanzilla/services/token"
	"kleanzilla/utils"
)

// writeServiceError maps a domain error onto the HTTP status + JSON error
// body contract. Unknown errors surface as a generic 500; the zap logger
// records the detail so nothing internal leaks to the caller.
func writeServiceError(c *gin.Context, err error, logContext string) {
	switch {
	case errors.Is(err, booking.ErrEmailRequired):
		utils.JSONError(c, http.StatusBadRequest, "Missing email.")
	case errors.Is(err, booking.ErrNoBookings):
		utils.JSONError(c, http.StatusNotFound, "No bookings found for this email.")
	case errors.Is(err, booking.ErrNotAuthorized):
		utils.JSONError(c, http.StatusForbidden, "Not authorized.")
	case errors.Is(err, token.ErrTokenNotFound),
		errors.Is(err, token.ErrTokenExpired):
		utils.JSONError(c, http.StatusUnauthorized, "Token expired or invalid.")
	case errors.Is(err, token.ErrScopeMismatch):
		utils.JSONError(c, http.StatusForbidden, "Token expired or invalid.")
	case errors.Is(err, repository.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found.")
	case errors.Is(err, storage.ErrNotConfigured):
		utils.JSONError(c, http.StatusInternalServerError, "Storage not configured.")
	case errors.Is(err, notification.ErrNotConfigured):
		utils.JSONError(c, http.StatusInternalServerError, "Email settings not configured.")
	default:
		utils.GetLogger().Error(logContext, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, logContext)
	}
}
