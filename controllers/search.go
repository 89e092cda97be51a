package controllers

import (
	"net/http"

	"sitesync-backend/services"
	"sitesync-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchInput struct {
	Professions []string `json:"professions" binding:"required,min=1"`
	Area        string   `json:"area" binding:"required"`
}

// SearchController holds the routes shared by both roles.
type SearchController struct {
	Matching *services.MatchingService
	Invites  *services.InviteService
	Logger   *zap.Logger
}

func (sc *SearchController) Search(c *gin.Context) {
	var input SearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, sc.Logger, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	matches, err := sc.Matching.FilterSearch(c.Request.Context(), input.Professions, input.Area)
	if err != nil {
		respondWithServiceError(c, sc.Logger, err)
		return
	}
	if len(matches) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// InviteState reports the invite between a booking and a contractor, if any.
func (sc *SearchController) InviteState(c *gin.Context) {
	callerID, ok := currentUser(c, sc.Logger)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, sc.Logger, "bid")
	if !ok {
		return
	}
	contractorID, ok := idParam(c, sc.Logger, "cid")
	if !ok {
		return
	}
	invite, err := sc.Invites.Get(c.Request.Context(), callerID, bookingID, contractorID)
	if err != nil {
		respondWithServiceError(c, sc.Logger, err)
		return
	}
	if invite == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, invite)
}
