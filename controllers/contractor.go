package controllers

import (
	"context"
	"net/http"

	"sitesync-backend/models"
	"sitesync-backend/services"
	"sitesync-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PreferencesInput struct {
	Areas       []string `json:"areas"`
	Professions []string `json:"professions"`
}

type inviteDecision func(context.Context, uuid.UUID, uuid.UUID) (*models.BookingInvite, error)

type QuoteInput struct {
	Items []services.QuoteItemInput `json:"items" binding:"dive"`
}

// ContractorController serves both the contractor's own routes and the
// public contractor views.
type ContractorController struct {
	Services *services.Services
	Logger   *zap.Logger
}

func (cc *ContractorController) PublicProfile(c *gin.Context) {
	contractorID, ok := idParam(c, cc.Logger, "cid")
	if !ok {
		return
	}
	profile, err := cc.Services.Users.ContractorProfile(c.Request.Context(), contractorID)
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (cc *ContractorController) Preferences(c *gin.Context) {
	contractorID, ok := idParam(c, cc.Logger, "cid")
	if !ok {
		return
	}
	view, err := cc.Services.Preferences.View(c.Request.Context(), contractorID)
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ReplacePreferences overwrites the caller's areas and professions.
func (cc *ContractorController) ReplacePreferences(c *gin.Context) {
	contractorID, ok := currentUser(c, cc.Logger)
	if !ok {
		return
	}
	var input PreferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, cc.Logger, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	view, err := cc.Services.Preferences.Replace(c.Request.Context(), contractorID, input.Areas, input.Professions)
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (cc *ContractorController) Invites(c *gin.Context) {
	contractorID, ok := currentUser(c, cc.Logger)
	if !ok {
		return
	}
	invites, err := cc.Services.Bookings.PendingInvites(c.Request.Context(), contractorID)
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	if len(invites) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, invites)
}

func (cc *ContractorController) Bookings(c *gin.Context) {
	contractorID, ok := currentUser(c, cc.Logger)
	if !ok {
		return
	}
	invites, err := cc.Services.Bookings.AcceptedInvites(c.Request.Context(), contractorID)
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	if len(invites) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, invites)
}

func (cc *ContractorController) BookingInfo(c *gin.Context) {
	contractorID, ok := currentUser(c, cc.Logger)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, cc.Logger, "bid")
	if !ok {
		return
	}
	view, err := cc.Services.Bookings.DetailForContractor(c.Request.Context(), contractorID, bookingID)
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (cc *ContractorController) AcceptInvite(c *gin.Context) {
	cc.decide(c, cc.Services.Invites.Accept)
}

func (cc *ContractorController) RejectInvite(c *gin.Context) {
	cc.decide(c, cc.Services.Invites.Reject)
}

func (cc *ContractorController) decide(c *gin.Context, decide inviteDecision) {
	contractorID, ok := currentUser(c, cc.Logger)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, cc.Logger, "bid")
	if !ok {
		return
	}
	invite, err := decide(c.Request.Context(), contractorID, bookingID)
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, invite)
}

func (cc *ContractorController) SubmitQuote(c *gin.Context) {
	contractorID, ok := currentUser(c, cc.Logger)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, cc.Logger, "bid")
	if !ok {
		return
	}
	var input QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, cc.Logger, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	quote, err := cc.Services.Quotes.Submit(c.Request.Context(), contractorID, bookingID, input.Items)
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func (cc *ContractorController) Quote(c *gin.Context) {
	contractorID, ok := currentUser(c, cc.Logger)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, cc.Logger, "bid")
	if !ok {
		return
	}
	quote, err := cc.Services.Quotes.ForContractor(c.Request.Context(), contractorID, bookingID)
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (cc *ContractorController) Projects(c *gin.Context) {
	contractorID, ok := currentUser(c, cc.Logger)
	if !ok {
		return
	}
	projects, err := cc.Services.Projects.ListForContractor(c.Request.Context(), contractorID)
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (cc *ContractorController) SignalCompletion(c *gin.Context) {
	contractorID, ok := currentUser(c, cc.Logger)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, cc.Logger, "bid")
	if !ok {
		return
	}
	project, err := cc.Services.Projects.SignalCompletion(c.Request.Context(), contractorID, bookingID)
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
