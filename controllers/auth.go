package controllers

import (
	"context"
	"net/http"

	"sitesync-backend/models"
	"sitesync-backend/services"
	"sitesync-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginInput struct {
	Email    string `json:"email" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AuthController struct {
	Users  *services.UserService
	JWT    *utils.JWTManager
	Logger *zap.Logger
	// MaxAge of the token cookie in seconds.
	MaxAge int
	Secure bool
}

func (ac *AuthController) SignupHomeowner(c *gin.Context) {
	ac.signup(c, ac.Users.RegisterHomeowner)
}

func (ac *AuthController) SignupContractor(c *gin.Context) {
	ac.signup(c, ac.Users.RegisterContractor)
}

func (ac *AuthController) signup(c *gin.Context, register func(context.Context, services.SignupInput) (*models.User, error)) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, ac.Logger, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	user, err := register(c.Request.Context(), input)
	if err != nil {
		respondWithServiceError(c, ac.Logger, err)
		return
	}

	token, err := ac.issue(c, user)
	if err != nil {
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Registration successful",
		"access_token": token,
		"token_type":   "bearer",
		"user":         userView(user),
	})
}

// Token accepts JSON or an OAuth2 style password form.
func (ac *AuthController) Token(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, ac.Logger, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := ac.Users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondWithServiceError(c, ac.Logger, err)
		return
	}

	token, err := ac.issue(c, user)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userView(user),
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := currentUser(c, ac.Logger)
	if !ok {
		return
	}
	user, err := ac.Users.ByID(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, ac.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userView(user)})
}

func (ac *AuthController) issue(c *gin.Context, user *models.User) (string, error) {
	token, err := ac.JWT.GenerateToken(user.ID, user.Role, user.Email)
	if err != nil {
		ac.Logger.Error("token generation failed", zap.Error(err))
		utils.RespondWithError(c, ac.Logger, http.StatusInternalServerError, "Failed to generate token")
		return "", err
	}
	c.SetCookie("token", token, ac.MaxAge, "/", "", ac.Secure, true)
	return token, nil
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"email": user.Email,
		"phone": user.Phone,
		"role":  user.Role,
	}
}
