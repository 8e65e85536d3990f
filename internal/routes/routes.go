package routes

import (
	"github.com/gin-gonic/gin"

	"lostfound_backend/internal/handlers"
)

// RegisterRoutes registers every HTTP route of the application.
// authMW guards the groups that require a logged-in user; the auth
// endpoints themselves stay public.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
) {
	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ItemHandler.RegisterRoutes(api, authMW)
		appHandlers.ClaimHandler.RegisterRoutes(api, authMW)
		appHandlers.CommentHandler.RegisterRoutes(api, authMW)
		appHandlers.NotificationHandler.RegisterRoutes(api, authMW)
	}
}

// RegisterStatic serves uploaded item images from local disk.
func RegisterStatic(ginRouter *gin.Engine, baseURL, basePath string) {
	ginRouter.Static(baseURL, basePath)
}
