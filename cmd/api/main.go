package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/leox-api/docs"
	"github.com/jhoicas/leox-api/internal/application/auth"
	appcobranza "github.com/jhoicas/leox-api/internal/application/cobranza"
	"github.com/jhoicas/leox-api/internal/application/dashboard"
	"github.com/jhoicas/leox-api/internal/application/portal"
	core "github.com/jhoicas/leox-api/internal/domain/cobranza"
	infrapdf "github.com/jhoicas/leox-api/internal/infrastructure/pdf"
	"github.com/jhoicas/leox-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/leox-api/internal/interfaces/http"
	"github.com/jhoicas/leox-api/pkg/config"
	"github.com/jhoicas/leox-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}
	tieBreak, err := core.ParseTieBreak(cfg.Cobranza.TieBreak)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de cobranza")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	paymentRepo := postgres.NewPaymentRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	fetch := appcobranza.FetchOptions{
		PageSize:      cfg.Cobranza.PageSize,
		MaxPages:      cfg.Cobranza.MaxPages,
		StrictCeiling: cfg.Cobranza.StrictCeiling,
		PageTimeout:   cfg.Cobranza.PageTimeout,
	}
	cobranzaUC := appcobranza.NewUseCase(paymentRepo, projectRepo, appcobranza.Config{
		Fetch:       fetch,
		DueSoonDays: cfg.Cobranza.DueSoonDays,
		TieBreak:    tieBreak,
		Location:    loc,
	}, log.Component("cobranza"))

	dashboardUC := dashboard.NewUseCase(
		projectRepo, reportRepo, saleRepo, inventoryRepo,
		cobranzaUC, fetch, log.Component("dashboard"),
	)

	// PDF: estado de cuenta del comprador
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	portalUC := portal.NewUseCase(reportRepo, cobranzaUC, pdfGenerator, log.Component("portal"))

	accounts := auth.NewDemoAccounts(cfg.Auth.DemoAccounts)
	if len(cfg.Auth.DemoAccounts) == 0 {
		log.Warn().Msg("sin cuentas de acceso configuradas (AUTH_DEMO_ACCOUNTS); el login rechazará todo")
	}
	authUC := auth.NewUseCase(accounts, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LEOX API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CobranzaUC:  cobranzaUC,
		DashboardUC: dashboardUC,
		PortalUC:    portalUC,
		JWTSecret:   cfg.JWT.Secret,
		AppName:     cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
