package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaydipchangani/project-management-backend/internal/middleware"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/services"
)

// Services bundles everything the HTTP layer calls into
type Services struct {
	Auth      *services.AuthService
	Projects  *services.ProjectService
	Tasks     *services.TaskService
	Users     *services.UserService
	Dashboard *services.DashboardService
}

// RegisterRoutes mounts the health check and every /api route on r.
// Session middleware must already be installed.
func RegisterRoutes(r *gin.Engine, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	projectHandler := NewProjectHandler(svc.Projects)
	taskHandler := NewTaskHandler(svc.Tasks)
	userHandler := NewUserHandler(svc.Users)
	dashboardHandler := NewDashboardHandler(svc.Dashboard)

	requireAuth := middleware.RequireAuth(svc.Auth)
	requireManager := middleware.RequireRoles(models.RoleAdmin, models.RoleProjectManager)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Management API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", requireManager, projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", requireManager, projectHandler.UpdateProject)
			projects.DELETE("/:id", requireManager, projectHandler.DeleteProject)
			projects.GET("/:id/logs", projectHandler.ListLogs)
			projects.POST("/:id/upload", projectHandler.UploadDocuments)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", requireManager, taskHandler.CreateTask)
			tasks.GET("/assigned/:userId", taskHandler.ListAssignedTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", requireManager, taskHandler.DeleteTask)
		}

		// User administration routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", requireManager, userHandler.ListUsers)
			users.GET("/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.GetUser)
			users.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.DeleteUser)
		}

		api.GET("/dashboard/overview", requireAuth, dashboardHandler.Overview)
	}
}
