package routes

import (
	"github.com/gin-gonic/gin"

	"taskman/internal/config"
	"taskman/internal/handlers"
	"taskman/internal/middleware"
)

type Handlers struct {
	Auth   *handlers.AuthHandler
	User   *handlers.UserHandler
	Task   *handlers.TaskHandler
	Status *handlers.StatusHandler
	Label  *handlers.LabelHandler
	Report *handlers.ReportHandler
}

// Register wires the HTTP surface. Routes added to the api group before
// the auth middleware stay public; everything after requires a token.
func Register(r *gin.Engine, h Handlers, cfg *config.Config) {
	r.GET("/welcome", handlers.Welcome)

	api := r.Group("/api")

	// public
	api.POST("/login", h.Auth.Login)
	api.POST("/refresh", h.Auth.Refresh)
	api.POST("/users", h.User.Create)

	// protected
	api.Use(middleware.AuthMiddleware([]byte(cfg.JWT.Secret)))

	api.POST("/logout", h.Auth.Logout)

	api.GET("/users", h.User.GetAll)
	api.GET("/users/:id", h.User.GetByID)
	api.PUT("/users/:id", h.User.Update)
	api.DELETE("/users/:id", h.User.Delete)

	api.GET("/task_statuses", h.Status.GetAll)
	api.GET("/task_statuses/:id", h.Status.GetByID)
	api.POST("/task_statuses", h.Status.Create)
	api.PUT("/task_statuses/:id", h.Status.Update)
	api.DELETE("/task_statuses/:id", h.Status.Delete)

	api.GET("/labels", h.Label.GetAll)
	api.GET("/labels/:id", h.Label.GetByID)
	api.POST("/labels", h.Label.Create)
	api.PUT("/labels/:id", h.Label.Update)
	api.DELETE("/labels/:id", h.Label.Delete)

	api.GET("/tasks", h.Task.GetAll)
	api.GET("/tasks/:id", h.Task.GetByID)
	api.POST("/tasks", h.Task.Create)
	api.PUT("/tasks/:id", h.Task.Update)
	api.DELETE("/tasks/:id", h.Task.Delete)

	api.GET("/reports/tasks.pdf", h.Report.TasksPDF)
}
