package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bizops-api/internal/application/auth"
	"github.com/jhoicas/Bizops-api/internal/application/booking"
	"github.com/jhoicas/Bizops-api/internal/application/reporting"
	"github.com/jhoicas/Bizops-api/internal/application/usecase"
	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Booking     *booking.Service
	Modules     *usecase.ModuleService
	Resources   *usecase.Resources
	Dashboard   *reporting.DashboardUseCase
	Metrics     *metrics.Metrics
	RateLimiter *RateLimiter
	Log         zerolog.Logger
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Agenda pública de anfitriones (sin token)
	bookingHandler := NewBookingHandler(deps.Booking, deps.Log)
	public := api.Group("/public/hosts")
	public.Get("/:host/calendar", bookingHandler.Calendar)
	if deps.RateLimiter != nil {
		public.Post("/:host/bookings", deps.RateLimiter.Handler(), bookingHandler.Book)
	} else {
		public.Post("/:host/bookings", bookingHandler.Book)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	managers := RequireRole(entity.RoleOwner, entity.RoleAdmin)

	// Empresa y módulos
	companyHandler := NewCompanyHandler(deps.Resources.Companies, deps.Modules, deps.Log)
	company := protected.Group("/company")
	company.Get("/", companyHandler.Get)
	company.Put("/", managers, companyHandler.Update)
	company.Get("/modules", companyHandler.ListModules)
	company.Put("/modules/:name", RequireRole(entity.RoleOwner), companyHandler.ActivateModule)
	company.Delete("/modules/:name", RequireRole(entity.RoleOwner), companyHandler.DeactivateModule)

	// Usuarios: alta y rol por el caso de uso de auth, el resto por el CRUD con alcance
	users := NewResourceHandler[entity.User](deps.Resources.Users, deps.Log)
	usersGroup := protected.Group("/users", RequireModule(entity.ModuleTeam, deps.Modules))
	usersGroup.Get("/", users.List)
	usersGroup.Get("/:id", users.Get)
	usersGroup.Post("/", managers, authHandler.CreateUser)
	usersGroup.Put("/:id/role", managers, authHandler.ChangeRole)
	usersGroup.Put("/:id", users.Update)
	usersGroup.Delete("/:id", managers, users.Delete)

	// CRM
	NewResourceHandler[entity.Client](deps.Resources.Clients, deps.Log).Mount(protected.Group("/clients", RequireModule(entity.ModuleCRM, deps.Modules)))
	NewResourceHandler[entity.Lead](deps.Resources.Leads, deps.Log).Mount(protected.Group("/leads", RequireModule(entity.ModuleCRM, deps.Modules)))

	// Facturación
	NewResourceHandler[entity.Invoice](deps.Resources.Invoices, deps.Log).Mount(protected.Group("/invoices", RequireModule(entity.ModuleInvoicing, deps.Modules)))
	NewResourceHandler[entity.RecurringTemplate](deps.Resources.RecurringTemplates, deps.Log).Mount(protected.Group("/recurring-templates", RequireModule(entity.ModuleInvoicing, deps.Modules)))

	// Propuestas y contratos
	NewResourceHandler[entity.Proposal](deps.Resources.Proposals, deps.Log).Mount(protected.Group("/proposals", RequireModule(entity.ModuleProposals, deps.Modules)))
	NewResourceHandler[entity.Contract](deps.Resources.Contracts, deps.Log).Mount(protected.Group("/contracts", RequireModule(entity.ModuleProposals, deps.Modules)))

	// Agenda: disponibilidad y reservas
	scheduling := RequireModule(entity.ModuleScheduling, deps.Modules)
	NewResourceHandler[entity.AvailabilityWindow](deps.Resources.Availability, deps.Log).Mount(protected.Group("/availability", scheduling))
	bookings := NewResourceHandler[entity.Booking](deps.Resources.Bookings, deps.Log)
	bookingsGroup := protected.Group("/bookings", scheduling)
	bookingsGroup.Get("/", bookings.List)
	bookingsGroup.Get("/:id", bookings.Get)
	bookingsGroup.Post("/:id/cancel", bookingHandler.Cancel)
	bookingsGroup.Post("/:id/reschedule", bookingHandler.Reschedule)

	// Reportes
	if deps.Dashboard != nil {
		reports := protected.Group("/reports", RequireModule(entity.ModuleReporting, deps.Modules))
		reports.Get("/dashboard", NewReportHandler(deps.Dashboard, deps.Log).Dashboard)
	}
}
