package http

import (
	"taskflow/internal/adapter/http/handlers"
	"taskflow/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.Engine,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	authMiddleware gin.HandlerFunc,
) {
	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware(), middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
		api.POST("/auth/login", authHandler.Login)
	}

	secured := api.Group("")
	secured.Use(authMiddleware)
	{
		secured.POST("/auth/register", authHandler.Register)
		secured.GET("/auth/me", authHandler.Me)
		secured.PUT("/auth/me", authHandler.UpdateMe)

		secured.POST("/tasks", taskHandler.CreateTask)
		secured.POST("/tasks/self", taskHandler.CreateSelfTask)
		secured.PUT("/tasks/:id/status", taskHandler.UpdateTaskStatus)
		secured.POST("/tasks/:id/review", taskHandler.ReviewTask)
		secured.GET("/tasks/user", taskHandler.ListUserTasks)
		secured.GET("/tasks/admin", taskHandler.ListAdminTasks)
	}
}
