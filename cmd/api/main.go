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

	_ "github.com/vitastock/vitastock-api/docs"
	appanalytics "github.com/vitastock/vitastock-api/internal/application/analytics"
	"github.com/vitastock/vitastock-api/internal/application/auth"
	"github.com/vitastock/vitastock-api/internal/application/inventory"
	"github.com/vitastock/vitastock-api/internal/application/usecase"
	"github.com/vitastock/vitastock-api/internal/infrastructure/cache"
	infrapdf "github.com/vitastock/vitastock-api/internal/infrastructure/pdf"
	"github.com/vitastock/vitastock-api/internal/infrastructure/postgres"
	httpRouter "github.com/vitastock/vitastock-api/internal/interfaces/http"
	"github.com/vitastock/vitastock-api/pkg/config"
	"github.com/vitastock/vitastock-api/pkg/logger"
)

// @title        VitaStock API
// @version      1.0
// @description  API de inventario de perecederos: productos, lotes con vencimiento y libro de movimientos de stock.
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	applyMovementUC := inventory.NewApplyMovementUseCase(txRunner, batchRepo, locationRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, locationRepo)
	batchUC := usecase.NewBatchUseCase(batchRepo, productRepo, locationRepo, movementRepo, applyMovementUC)
	movementUC := usecase.NewMovementUseCase(applyMovementUC, movementRepo)
	accountUC := usecase.NewAccountUseCase(userRepo)

	// Caché de KPIs en Redis, opcional: sin REDIS_URL el panel consulta directo.
	var kpiCache appanalytics.KPICache
	if cfg.Redis.URL != "" {
		if c := cache.NewKPICache(ctx, cfg.Redis.URL, time.Duration(cfg.Redis.KPITTLSecs)*time.Second, log); c != nil {
			kpiCache = c
			defer c.Close()
		}
	}
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, kpiCache)
	reportUC := appanalytics.NewReportUseCase(dashboardUC, dashboardRepo, infrapdf.NewMarotoReportGenerator())

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "VitaStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:  categoryUC,
		LocationUC:  locationUC,
		ProductUC:   productUC,
		BatchUC:     batchUC,
		MovementUC:  movementUC,
		AccountUC:   accountUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		AuthUC:      authUC,
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
