package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dfcastro/Flota-api/internal/application/analytics"
	"github.com/dfcastro/Flota-api/internal/application/auth"
	"github.com/dfcastro/Flota-api/internal/application/report"
	"github.com/dfcastro/Flota-api/internal/application/usecase"
	"github.com/dfcastro/Flota-api/internal/domain/entity"
	"github.com/dfcastro/Flota-api/internal/domain/repository"
	"github.com/dfcastro/Flota-api/internal/domain/scheduling"
	"github.com/dfcastro/Flota-api/internal/infrastructure/memory"
	infrapdf "github.com/dfcastro/Flota-api/internal/infrastructure/pdf"
	"github.com/dfcastro/Flota-api/internal/infrastructure/postgres"
	httpRouter "github.com/dfcastro/Flota-api/internal/interfaces/http"
	"github.com/dfcastro/Flota-api/pkg/config"
	"github.com/dfcastro/Flota-api/pkg/logger"
)

// repos agrupa los puertos de persistencia ya resueltos según STORE_DRIVER.
type repos struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	buses     repository.BusRepository
	ots       repository.WorkOrderRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	switch cfg.App.StoreDriver {
	case "memory":
		r = repos{
			companies: memory.NewCompanyStore(),
			users:     memory.NewUserStore(),
			buses:     memory.NewBusStore(),
			ots:       memory.NewWorkOrderStore(),
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = repos{
			companies: postgres.NewCompanyRepository(pool),
			users:     postgres.NewUserRepository(pool),
			buses:     postgres.NewBusRepository(pool),
			ots:       postgres.NewWorkOrderRepository(pool),
		}
	}

	if err := seedSuperadmin(r.users, cfg.Seed); err != nil {
		log.Fatal().Err(err).Msg("sembrar superadmin")
	}

	umbrales := scheduling.Umbrales{
		AtencionDias: cfg.Sched.AtencionDias,
		UrgenteDias:  cfg.Sched.UrgenteDias,
	}

	authUC := auth.NewAuthUseCase(r.users, r.companies, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(r.companies, r.users)
	userUC := usecase.NewUserUseCase(r.users, r.companies)
	fleetUC := usecase.NewFleetUseCase(r.buses)
	workOrderUC := usecase.NewWorkOrderUseCase(r.ots, r.buses)
	dashboardUC := analytics.NewDashboardUseCase(r.buses, r.ots, umbrales, nil)
	reportUC := report.NewReportUseCase(
		r.companies, r.buses, r.ots,
		infrapdf.NewMarotoReportGenerator(), umbrales, nil,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Flota API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		UserUC:      userUC,
		FleetUC:     fleetUC,
		WorkOrderUC: workOrderUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
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

// seedSuperadmin crea el usuario superadmin (sin empresa) si no existe.
// Es idempotente: si el username ya está tomado no toca nada.
func seedSuperadmin(users repository.UserRepository, seed config.SeedConfig) error {
	if seed.SuperadminUsername == "" {
		return nil
	}
	existing, err := users.GetByUsernameAndCompany(seed.SuperadminUsername, "")
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.SuperadminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	return users.Create(&entity.User{
		ID:           uuid.New().String(),
		Username:     seed.SuperadminUsername,
		PasswordHash: string(hash),
		Name:         "Superadministrador",
		Role:         auth.RoleSuperAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
