package routes

import (
	"github.com/gin-gonic/gin"

	"todoboard/internal/controller"
	"todoboard/internal/middleware"
)

// Router wires the HTTP surface: health probes stay public, everything
// else requires a bearer token identifying the requesting user.
func Router(todos *controller.TodoController, categories *controller.CategoryController) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	// Health for load balancers and K8s probes
	router.GET("/health", controller.Health)
	router.GET("/ready", controller.Ready)

	api := router.Group("")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/todos", todos.List)
		api.POST("/todos", todos.Create)
		api.PATCH("/todos/:id", todos.Update)
		api.DELETE("/todos/:id", todos.Delete)

		api.GET("/categories", categories.List)
		api.POST("/categories", categories.Create)
		api.PATCH("/categories/:id", categories.Update)
		api.DELETE("/categories/:id", categories.Delete)
	}

	return router
}
