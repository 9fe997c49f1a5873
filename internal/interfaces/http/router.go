package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/techstore-pos/internal/application/analytics"
	"github.com/jhoicas/techstore-pos/internal/application/auth"
	"github.com/jhoicas/techstore-pos/internal/application/reporting"
	"github.com/jhoicas/techstore-pos/internal/application/sales"
	"github.com/jhoicas/techstore-pos/internal/application/usecase"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	UserUC      *usecase.UserUseCase
	RegisterUC  *sales.RegisterSaleUseCase
	ReportUC    *reporting.ReportUseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	Logger      *logger.Logger
	// Gatherer opcional; si es nil no se expone /metrics.
	Gatherer  prometheus.Gatherer
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, deps.Logger)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/operators", adminOnly, authHandler.CreateOperator)

	productHandler := NewProductHandler(deps.ProductUC, deps.ReportUC, deps.Logger)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Logger)
	customers := protected.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)

	saleHandler := NewSaleHandler(deps.RegisterUC, deps.ReportUC, deps.Logger)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Register)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/recent", saleHandler.Recent)
	salesGroup.Get("/:id", saleHandler.GetByID)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Logger)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	reportHandler := NewReportHandler(deps.ReportUC, deps.Logger)
	reports := protected.Group("/reports")
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/sales/pdf", reportHandler.SalesPDF)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/inventory/xlsx", reportHandler.InventoryXLSX)
	reports.Get("/inventory/csv", reportHandler.InventoryCSV)
}
