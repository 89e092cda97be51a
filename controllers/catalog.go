package controllers

import (
	"net/http"

	"sitesync-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogController struct {
	Catalog *services.CatalogService
	Logger  *zap.Logger
}

// Quiz returns the nested catalog the booking questionnaire is built from.
func (cc *CatalogController) Quiz(c *gin.Context) {
	tree, err := cc.Catalog.Tree(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (cc *CatalogController) Professions(c *gin.Context) {
	names, err := cc.Catalog.Professions(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"professions": names})
}
