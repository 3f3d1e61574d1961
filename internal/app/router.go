package app

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// public routes, no login required
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.course.ListCourses)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(cfg), c.course.GetCourse)

		// third parties verify certificates without an account
		public.GET("/certificates/verify/:number", c.certificate.Verify)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		// learner routes
		authGroup.POST("/courses/:id/enroll", c.enrollment.Enroll)
		authGroup.GET("/enrollments", c.enrollment.ListMine)
		authGroup.POST("/lectures/:id/progress", c.progress.ReportProgress)
		authGroup.GET("/courses/:id/progress", c.progress.GetCourseProgress)
		authGroup.POST("/courses/:id/certificate", c.certificate.RequestCertificate)
		authGroup.GET("/certificates", c.certificate.ListMine)

		// instructor routes
		instructor := authGroup.Group("")
		instructor.Use(middleware.RoleMiddleware(model.Instructor))
		{
			instructor.POST("/courses", c.course.CreateCourse)
			instructor.POST("/courses/:id/sections", c.course.AddSection)
			instructor.POST("/sections/:id/lectures", c.course.AddLecture)
			instructor.POST("/courses/:id/publish", c.course.PublishCourse)
		}

		// corporate administration
		orgAdmin := authGroup.Group("")
		orgAdmin.Use(middleware.RoleMiddleware(model.OrgAdmin))
		{
			orgAdmin.POST("/courses/:id/assign", c.enrollment.AssignLearners)
		}
	}
}
