package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"taskflow/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	taskHandler *handlers.TaskHandler,
	userHandler *handlers.UserHandler,
	activityHandler *handlers.ActivityHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/health", handlers.Health)

	// TASKS
	tasks := api.Group("/tasks")
	{
		tasks.GET("", taskHandler.List)
		tasks.POST("", taskHandler.Create)
		tasks.POST("/clear-completed", taskHandler.ClearCompleted)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/toggle", taskHandler.Toggle)
		tasks.POST("/:id/focus", taskHandler.LogFocus)
	}

	// USERS
	users := api.Group("/users")
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.POST("/login", userHandler.Login)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	// ACTIVITIES
	activities := api.Group("/activities")
	{
		activities.GET("", activityHandler.List)
		activities.POST("", activityHandler.Create)
		activities.DELETE("", activityHandler.Clear)
	}

	// ANALYTICS
	analytics := api.Group("/analytics")
	{
		analytics.GET("/summary", reportHandler.GetSummary)
		analytics.GET("/report.pdf", reportHandler.GetPDF)
	}

	return r
}
