package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/docukit/approval-system/internal/api/handler"
	"github.com/docukit/approval-system/internal/api/middleware"
	"github.com/docukit/approval-system/internal/core/domain"
	"github.com/docukit/approval-system/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers and guards.
type Deps struct {
	Identity  ports.IdentityService
	Workflow  ports.WorkflowService
	Analytics ports.AnalyticsService
	Store     ports.KVStore
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("approval"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Identity)
	adminHandler := handler.NewAdminHandler(deps.Workflow, deps.Identity, deps.Analytics)
	companyHandler := handler.NewCompanyHandler(deps.Workflow)
	applicantHandler := handler.NewApplicantHandler(deps.Workflow)
	healthHandler := handler.NewHealthHandler(deps.Store)

	// --- Public routes ---
	e.GET("/", authHandler.Index)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Admin routes ---
	admin := e.Group("/admin", middleware.Guard(deps.Identity, domain.RoleAdmin, false))
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/credentials", adminHandler.Credentials)
	admin.POST("/companies", adminHandler.CreateCompany)
	admin.POST("/applicants/:id/approve", adminHandler.Approve)
	admin.PUT("/applicants/:id/documents", adminHandler.SetDocumentKit)
	admin.GET("/document-options", adminHandler.DocumentOptions)
	admin.GET("/proformas/:slug", adminHandler.StaticProforma)
	admin.GET("/analytics", adminHandler.AnalyticsReport)
	admin.DELETE("/analytics", adminHandler.AnalyticsClear)

	// --- Company routes (role + id-match) ---
	company := e.Group("/company/:id", middleware.Guard(deps.Identity, domain.RoleCompany, true))
	company.GET("", companyHandler.Dashboard)
	company.GET("/proforma-2", companyHandler.GetProforma2)
	company.PUT("/proforma-2", companyHandler.SaveProforma2)
	company.POST("/applicants", companyHandler.CreateApplicant)

	// --- Applicant routes (role + id-match) ---
	applicant := e.Group("/applicant/:id", middleware.Guard(deps.Identity, domain.RoleApplicant, true))
	applicant.GET("", applicantHandler.Dashboard)
	applicant.GET("/proforma-1", applicantHandler.GetProforma1)
	applicant.PUT("/proforma-1", applicantHandler.SaveProforma1)
	applicant.POST("/proforma-1/submit", applicantHandler.Submit)
	applicant.GET("/documents", applicantHandler.Documents)

	// Catch-all: render the not-found view.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "not found",
			"path":  c.Request().URL.Path,
		})
	})

	return e
}
