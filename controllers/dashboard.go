package controllers

import (
	"net/http"

	"sitesync-backend/models"
	"sitesync-backend/services"
	"sitesync-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardController struct {
	Dashboard *services.DashboardService
	Logger    *zap.Logger
}

// Overview returns the counters for the caller's role.
func (dc *DashboardController) Overview(c *gin.Context) {
	userID, ok := currentUser(c, dc.Logger)
	if !ok {
		return
	}

	var (
		overview interface{}
		err      error
	)
	switch utils.CurrentRole(c) {
	case models.RoleContractor:
		overview, err = dc.Dashboard.Contractor(c.Request.Context(), userID)
	case models.RoleHomeowner:
		overview, err = dc.Dashboard.Homeowner(c.Request.Context(), userID)
	default:
		utils.RespondWithError(c, dc.Logger, http.StatusForbidden, "Forbidden")
		return
	}
	if err != nil {
		respondWithServiceError(c, dc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
