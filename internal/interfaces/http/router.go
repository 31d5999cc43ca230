package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leox-api/internal/application/dto"
	"github.com/jhoicas/leox-api/internal/domain/entity"
)

// RouterDeps dependencias para el router. Cada caso de uso entra por la interfaz
// mínima que usa su handler.
type RouterDeps struct {
	AuthUC      authService
	CobranzaUC  cobranzaService
	DashboardUC dashboardService
	PortalUC    portalService
	JWTSecret   string
	AppName     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Name: deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token). Cada grupo tiene su propio prefijo:
	// el middleware de un grupo de Fiber aplica a todo lo que cuelga de ese prefijo.
	auth := AuthMiddleware(deps.JWTSecret)
	developerOnly := RequireRole(entity.RoleDeveloper)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/projects", auth, developerOnly, dashboardHandler.Projects)
	dashboard := api.Group("/dashboard", auth, developerOnly)
	dashboard.Get("/projects/:id", dashboardHandler.Project)
	dashboard.Get("/cartera", dashboardHandler.Portfolio)

	cobranzaHandler := NewCobranzaHandler(deps.CobranzaUC)
	cobranza := api.Group("/cobranza", auth, developerOnly)
	cobranza.Get("/", cobranzaHandler.List)
	cobranza.Get("/cartera", cobranzaHandler.Portfolio)
	cobranza.Patch("/pagos/:id/pagar", cobranzaHandler.MarkAsPaid)

	portalHandler := NewPortalHandler(deps.PortalUC)
	portal := api.Group("/portal", auth, RequireRole(entity.RoleClient))
	portal.Get("/panel", portalHandler.Panel)
	portal.Get("/estado-de-cuenta", portalHandler.Statement)
}
