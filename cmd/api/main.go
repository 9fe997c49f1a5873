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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/techstore-pos/internal/application/analytics"
	"github.com/jhoicas/techstore-pos/internal/application/auth"
	"github.com/jhoicas/techstore-pos/internal/application/bootstrap"
	"github.com/jhoicas/techstore-pos/internal/application/reporting"
	"github.com/jhoicas/techstore-pos/internal/application/sales"
	"github.com/jhoicas/techstore-pos/internal/application/usecase"
	"github.com/jhoicas/techstore-pos/internal/infrastructure/export"
	"github.com/jhoicas/techstore-pos/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/techstore-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/techstore-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/techstore-pos/internal/interfaces/http"
	"github.com/jhoicas/techstore-pos/pkg/config"
	"github.com/jhoicas/techstore-pos/pkg/logger"
)

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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Migraciones, admin inicial y catálogo de arranque
	var migrator bootstrap.Migrator
	if cfg.Bootstrap.AutoMigrate {
		migrator = postgres.NewMigrator(pool)
	}
	boot := bootstrap.New(migrator, userRepo, productRepo, log.Component("bootstrap"), bootstrap.Options{
		AdminUsername: cfg.Bootstrap.AdminUsername,
		AdminPassword: cfg.Bootstrap.AdminPassword,
		SeedCatalog:   cfg.Bootstrap.SeedCatalog,
	})
	if err := boot.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("inicialización de base de datos")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	saleMetrics := metrics.NewSaleMetrics(reg)

	csvSheet, err := export.NewInventoryCSV(cfg.Export.CSVCharset)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de exportación CSV")
	}
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Export.StoreName)

	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, saleRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	registerSaleUC := sales.NewRegisterSaleUseCase(txRunner, userRepo, customerRepo, saleRepo, saleMetrics)
	reportUC := reporting.NewReportUseCase(productRepo, saleRepo, pdfGenerator, export.NewInventoryXLSX(), csvSheet)
	dashboardUC := analytics.NewDashboardUseCase(reportUC, productRepo, customerRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TechStore POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		UserUC:      userUC,
		RegisterUC:  registerSaleUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		Logger:      log.Component("http"),
		Gatherer:    reg,
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
