package controllers

import (
	"net/http"

	"sitesync-backend/services"
	"sitesync-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InviteInput struct {
	BookingID    uuid.UUID `json:"bookingId" binding:"required"`
	ContractorID uuid.UUID `json:"contractorId" binding:"required"`
}

type CompletionInput struct {
	IsPublic bool `json:"isPublic"`
}

type HomeownerController struct {
	Services *services.Services
	Logger   *zap.Logger
}

func (hc *HomeownerController) CreateBooking(c *gin.Context) {
	homeownerID, ok := currentUser(c, hc.Logger)
	if !ok {
		return
	}
	var input services.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, hc.Logger, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	booking, err := hc.Services.Bookings.Create(c.Request.Context(), homeownerID, input)
	if err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (hc *HomeownerController) Bookings(c *gin.Context) {
	homeownerID, ok := currentUser(c, hc.Logger)
	if !ok {
		return
	}
	bookings, err := hc.Services.Bookings.ListOpen(c.Request.Context(), homeownerID)
	if err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	if len(bookings) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (hc *HomeownerController) BookingInfo(c *gin.Context) {
	homeownerID, ok := currentUser(c, hc.Logger)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, hc.Logger, "bid")
	if !ok {
		return
	}
	detail, err := hc.Services.Bookings.Detail(c.Request.Context(), homeownerID, bookingID)
	if err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ContractorBookings lists the caller's open bookings the contractor could
// take on.
func (hc *HomeownerController) ContractorBookings(c *gin.Context) {
	homeownerID, ok := currentUser(c, hc.Logger)
	if !ok {
		return
	}
	contractorID, ok := idParam(c, hc.Logger, "cid")
	if !ok {
		return
	}
	matches, err := hc.Services.Matching.ContractorToBookings(c.Request.Context(), homeownerID, contractorID)
	if err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	if len(matches) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, matches)
}

func (hc *HomeownerController) BookingContractors(c *gin.Context) {
	homeownerID, ok := currentUser(c, hc.Logger)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, hc.Logger, "bid")
	if !ok {
		return
	}
	// ownership check; matching itself does not look at the caller
	if _, err := hc.Services.Bookings.Detail(c.Request.Context(), homeownerID, bookingID); err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	matches, err := hc.Services.Matching.BookingToContractors(c.Request.Context(), bookingID)
	if err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	if len(matches) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, matches)
}

func (hc *HomeownerController) Invite(c *gin.Context) {
	homeownerID, ok := currentUser(c, hc.Logger)
	if !ok {
		return
	}
	var input InviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, hc.Logger, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	invite, err := hc.Services.Invites.Create(c.Request.Context(), homeownerID, input.BookingID, input.ContractorID)
	if err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, invite)
}

func (hc *HomeownerController) Quote(c *gin.Context) {
	homeownerID, bookingID, contractorID, ok := hc.bookingContractor(c)
	if !ok {
		return
	}
	quote, err := hc.Services.Quotes.ForHomeowner(c.Request.Context(), homeownerID, bookingID, contractorID)
	if err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (hc *HomeownerController) AcceptQuote(c *gin.Context) {
	homeownerID, bookingID, contractorID, ok := hc.bookingContractor(c)
	if !ok {
		return
	}
	project, err := hc.Services.Quotes.Accept(c.Request.Context(), homeownerID, bookingID, contractorID)
	if err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (hc *HomeownerController) Projects(c *gin.Context) {
	homeownerID, ok := currentUser(c, hc.Logger)
	if !ok {
		return
	}
	projects, err := hc.Services.Projects.ListForHomeowner(c.Request.Context(), homeownerID)
	if err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (hc *HomeownerController) AcceptCompletion(c *gin.Context) {
	homeownerID, ok := currentUser(c, hc.Logger)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, hc.Logger, "bid")
	if !ok {
		return
	}
	var input CompletionInput
	// an empty body keeps the project private
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, hc.Logger, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
	}
	project, err := hc.Services.Projects.AcceptCompletion(c.Request.Context(), homeownerID, bookingID, input.IsPublic)
	if err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (hc *HomeownerController) RejectCompletion(c *gin.Context) {
	homeownerID, ok := currentUser(c, hc.Logger)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, hc.Logger, "bid")
	if !ok {
		return
	}
	project, err := hc.Services.Projects.RejectCompletion(c.Request.Context(), homeownerID, bookingID)
	if err != nil {
		respondWithServiceError(c, hc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (hc *HomeownerController) bookingContractor(c *gin.Context) (homeownerID, bookingID, contractorID uuid.UUID, ok bool) {
	if homeownerID, ok = currentUser(c, hc.Logger); !ok {
		return
	}
	if bookingID, ok = idParam(c, hc.Logger, "bid"); !ok {
		return
	}
	contractorID, ok = idParam(c, hc.Logger, "cid")
	return
}
