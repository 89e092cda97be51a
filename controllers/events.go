package controllers

import (
	"sitesync-backend/events"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventsController struct {
	Hub    *events.Hub
	Logger *zap.Logger
}

// Stream upgrades the request and pushes the caller's lifecycle events
// until the client goes away.
func (ec *EventsController) Stream(c *gin.Context) {
	userID, ok := currentUser(c, ec.Logger)
	if !ok {
		return
	}
	ec.Hub.Serve(c.Writer, c.Request, userID)
}
