package routes

import (
	"github.com/gin-gonic/gin"

	"ustahub_backend/internal/handlers"
)

// RegisterRoutes mounts every API handler under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.ProposalHandler.RegisterRoutes(api)
		appHandlers.InvitationHandler.RegisterRoutes(api)
		appHandlers.ContractHandler.RegisterRoutes(api)
		appHandlers.RatingHandler.RegisterRoutes(api)
		appHandlers.MatchingHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}
}
