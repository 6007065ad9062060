package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/hireboard/internal/api/handlers"
	"github.com/yoockh/hireboard/internal/api/middleware"
)

type Deps struct {
	Auth        *handlers.AuthHandler
	Profile     *handlers.ProfileHandler
	Upload      *handlers.UploadHandler
	Job         *handlers.JobHandler
	Application *handlers.ApplicationHandler
	Dashboard   *handlers.DashboardHandler
	Analytics   *handlers.AnalyticsHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/auth/register", d.Auth.Register)
	r.POST("/auth/login", d.Auth.Login)

	// Public board and profile pages; detail personalizes for signed-in callers.
	r.GET("/jobs", d.Job.List)
	r.GET("/jobs/:id", middleware.OptionalAuth(), d.Job.Get)
	r.GET("/employers/:user_id", d.Profile.EmployerDetail)
	r.GET("/job-seekers/:user_id", d.Profile.SeekerDetail)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.GET("/profile/me", d.Profile.Me)
	auth.GET("/applications/:id", d.Application.Get)
	auth.GET("/applications/:id/resume", d.Application.ResumeURL)

	employer := auth.Group("/")
	employer.Use(middleware.RequireEmployer())

	employer.PUT("/profile/employer", d.Profile.UpsertEmployer)
	employer.PUT("/profile/employer/account", d.Profile.UpdateEmployerAccount)
	employer.POST("/profile/employer/logo", d.Upload.Logo)

	employer.POST("/jobs", d.Job.Create)
	employer.PUT("/jobs/:id", d.Job.Edit)
	employer.DELETE("/jobs/:id", d.Job.Delete)
	employer.GET("/employer/jobs", d.Job.Mine)
	employer.GET("/jobs/:id/applications", d.Application.ForJob)
	employer.PUT("/applications/:id/status", d.Application.UpdateStatus)

	employer.GET("/dashboard/employer", d.Dashboard.Employer)
	employer.GET("/analytics/employer", d.Analytics.Employer)

	seeker := auth.Group("/")
	seeker.Use(middleware.RequireJobSeeker())

	seeker.PUT("/profile/job-seeker", d.Profile.UpsertSeeker)
	seeker.PUT("/profile/job-seeker/account", d.Profile.UpdateSeekerAccount)
	seeker.POST("/profile/job-seeker/resume", d.Upload.Resume)
	seeker.POST("/profile/job-seeker/picture", d.Upload.Picture)

	seeker.POST("/jobs/:id/apply", d.Application.Apply)
	seeker.DELETE("/applications/:id", d.Application.Withdraw)
	seeker.GET("/applications/me", d.Application.Mine)

	seeker.GET("/dashboard/job-seeker", d.Dashboard.Seeker)
}
