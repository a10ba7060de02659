package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vitastock/vitastock-api/internal/application/analytics"
	"github.com/vitastock/vitastock-api/internal/application/auth"
	"github.com/vitastock/vitastock-api/internal/application/usecase"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC  *usecase.CategoryUseCase
	LocationUC  *usecase.LocationUseCase
	ProductUC   *usecase.ProductUseCase
	BatchUC     *usecase.BatchUseCase
	MovementUC  *usecase.MovementUseCase
	AccountUC   *usecase.AccountUseCase
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *analytics.ReportUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Categorías
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Ubicaciones
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Productos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.BatchUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/batches", productHandler.ListBatches)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Lotes
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC, deps.MovementUC)
	batches.Post("/", batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Get("/:id/movements", batchHandler.ListMovements)
	batches.Put("/:id", batchHandler.Update)
	batches.Delete("/:id", batchHandler.Delete)

	// Movimientos (el libro es append-only: no hay PUT ni DELETE)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Apply)
	movements.Get("/", movementHandler.List)

	// Panel de control
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/expiry-calendar", dashboardHandler.Calendar)

	// Reportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/expiry", reportHandler.ExpiryReport)

	// Cuentas (solo admin)
	accounts := protected.Group("/accounts", RequireRole(entity.RoleAdmin))
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Get("/", accountHandler.List)
	accounts.Post("/:id/activate", accountHandler.Activate)
	accounts.Post("/:id/deactivate", accountHandler.Deactivate)
}
