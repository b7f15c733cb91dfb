package routes

import (
	"github.com/gin-gonic/gin"

	"task-backend/internal/controller"
	"task-backend/internal/middleware"
)

// Router assembles the gin engine over the injected controller.
func Router(ctrl *controller.Controller, jwtSecret string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Health for load balancers and probes
	router.GET("/health", ctrl.Health)

	// Protected: JWT required
	api := router.Group("")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	{
		api.GET("/tasks", ctrl.GetTasks)
		api.POST("/tasks", ctrl.CreateTask)
		api.PUT("/tasks/:id", ctrl.UpdateTask)
		api.DELETE("/tasks/:id", ctrl.DeleteTask)
		api.POST("/tasks/:id/attachment", ctrl.GenerateUploadURL)
	}

	return router
}
