package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dfcastro/Flota-api/internal/application/analytics"
	"github.com/dfcastro/Flota-api/internal/application/auth"
	"github.com/dfcastro/Flota-api/internal/application/report"
	"github.com/dfcastro/Flota-api/internal/application/usecase"
	"github.com/dfcastro/Flota-api/internal/domain/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	FleetUC     *usecase.FleetUseCase
	WorkOrderUC *usecase.WorkOrderUseCase
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *report.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, cambio de contraseña autenticado)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/change-password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies (solo superadmin)
	companies := protected.Group("/companies", RequireRole(session.SuperAdmin))
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id/active", companyHandler.SetActive)

	// Users (superadmin o admin de empresa)
	admins := RequireRole(session.SuperAdmin, session.CompanyAdmin)
	users := protected.Group("/users", admins)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Edit)
	users.Put("/:id/active", userHandler.SetActive)
	users.Post("/:id/reset-password", userHandler.ResetPassword)

	// Fleet (lectura y mantenimientos para todos los roles de empresa;
	// registrar buses queda reservado a los administradores)
	operators := RequireRole(session.SuperAdmin, session.CompanyAdmin, session.Trabajador)
	buses := protected.Group("/buses", operators)
	fleetHandler := NewFleetHandler(deps.FleetUC)
	buses.Post("/", admins, fleetHandler.Register)
	buses.Get("/", fleetHandler.List)
	buses.Get("/:id", fleetHandler.GetByID)
	buses.Post("/:id/maintenance", fleetHandler.RecordMaintenance)

	// Work orders (admin y trabajador)
	ots := protected.Group("/work-orders", operators)
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	ots.Post("/", workOrderHandler.Create)
	ots.Get("/", workOrderHandler.List)
	ots.Get("/:id", workOrderHandler.GetByID)
	ots.Put("/:id/status", workOrderHandler.AdvanceStatus)

	// Dashboard (cualquier usuario autenticado de la empresa)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", operators, dashboardHandler.Get)

	// Reports (solo superadmin y admin de empresa)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/fleet.pdf", admins, reportHandler.FleetPDF)
}
