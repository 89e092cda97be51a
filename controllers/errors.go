package controllers

import (
	"errors"
	"net/http"

	"sitesync-backend/services"
	"sitesync-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrPreconditionFailed):
		return http.StatusConflict
	case errors.Is(err, services.ErrPreferenceMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError maps a service error onto its HTTP status. Errors
// of unknown kind are logged in full and hidden from the client.
func respondWithServiceError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	var svcErr *services.Error
	if status == http.StatusInternalServerError || !errors.As(err, &svcErr) {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.RespondWithError(c, logger, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithError(c, logger, status, svcErr.Message)
}

func idParam(c *gin.Context, logger *zap.Logger, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, logger, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func currentUser(c *gin.Context, logger *zap.Logger) (uuid.UUID, bool) {
	id, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, logger, http.StatusUnauthorized, "User ID not found in context")
	}
	return id, ok
}
