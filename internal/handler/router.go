package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/internmatch/portal/internal/auth"
	"github.com/internmatch/portal/internal/domain"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth        *AuthHandler
	Job         *JobHandler
	Application *ApplicationHandler
	Profile     *ProfileHandler
	Admin       *AdminHandler
	Health      *HealthHandler
}

// RegisterRoutes mounts the API. Route groups encode the access model:
// auth endpoints are public, /student /company /admin are role-gated,
// and the browse endpoints accept any session.
func RegisterRoutes(r *gin.Engine, h *Handlers, mw *auth.Middleware) {
	r.GET("/health/live", h.Health.Live)
	r.GET("/health/ready", h.Health.Ready)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/signup", h.Auth.Signup)
		authGroup.POST("/logout", mw.Identify(), h.Auth.Logout)
		authGroup.GET("/me", mw.Require(auth.RoleAny), h.Auth.Me)
		authGroup.POST("/password-reset/request", h.Auth.RequestPasswordReset)
		authGroup.POST("/password-reset/confirm", h.Auth.ResetPassword)
	}

	// Browse endpoints: any session, any role
	api.GET("/jobs", mw.Require(auth.RoleAny), h.Job.List)
	api.GET("/companies", mw.Require(auth.RoleAny), h.Profile.ListCompanies)
	api.GET("/applications", mw.Require(auth.RoleAny), h.Application.List)

	student := api.Group("/student", mw.Require(domain.RoleStudent))
	{
		student.GET("/profile", h.Profile.GetStudent)
		student.POST("/profile", h.Profile.CreateStudent)
		student.PUT("/profile", h.Profile.UpdateStudent)
		student.POST("/applications", h.Application.Apply)
	}

	company := api.Group("/company", mw.Require(domain.RoleCompany))
	{
		company.GET("/profile", h.Profile.GetCompany)
		company.POST("/profile", h.Profile.CreateCompany)
		company.PUT("/profile", h.Profile.UpdateCompany)
		company.POST("/jobs", h.Job.Create)
		company.POST("/jobs/:id/close", h.Job.Close)
		company.PATCH("/applications/:id/status", h.Application.UpdateStatus)
	}

	admin := api.Group("/admin", mw.Require(domain.RoleAdmin))
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)
		admin.GET("/companies", h.Admin.ListCompanyProfiles)
		admin.GET("/students", h.Admin.ListStudentProfiles)
		admin.POST("/companies/:id/verify", h.Admin.VerifyCompany)
		admin.POST("/companies/:id/reject", h.Admin.RejectVerification)
	}
}
