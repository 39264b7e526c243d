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

	"github.com/pansoft/panaderia-mrp/internal/application/auth"
	"github.com/pansoft/panaderia-mrp/internal/application/documents"
	"github.com/pansoft/panaderia-mrp/internal/application/inventory"
	"github.com/pansoft/panaderia-mrp/internal/application/registry"
	"github.com/pansoft/panaderia-mrp/internal/application/reports"
	"github.com/pansoft/panaderia-mrp/internal/infrastructure/cache"
	infrapdf "github.com/pansoft/panaderia-mrp/internal/infrastructure/pdf"
	"github.com/pansoft/panaderia-mrp/internal/infrastructure/postgres"
	httpRouter "github.com/pansoft/panaderia-mrp/internal/interfaces/http"
	"github.com/pansoft/panaderia-mrp/pkg/config"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	// Caché Redis opcional: sin REDIS_ADDR todo va directo a la DB.
	var appCache *cache.Cache
	if cfg.Cache.Addr != "" {
		redisClient, err := cache.NewClient(ctx, cfg.Cache.Addr)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		appCache = cache.New(redisClient, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)
		log.Info().Str("addr", cfg.Cache.Addr).Msg("caché Redis habilitada")
	} else {
		log.Info().Msg("caché deshabilitada (REDIS_ADDR vacío)")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	materialRepo := postgres.NewRawMaterialRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	purchaseRepo := postgres.NewPurchaseOrderRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	productionRepo := postgres.NewProductionOrderRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	logRepo := postgres.NewSystemLogRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, logRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	productUC := registry.NewProductUseCase(txRunner, productRepo, appCache, logRepo, log)
	materialUC := registry.NewRawMaterialUseCase(materialRepo, appCache, logRepo, log)
	supplierUC := registry.NewSupplierUseCase(supplierRepo, appCache, logRepo, log)
	customerUC := registry.NewCustomerUseCase(customerRepo, appCache, logRepo, log)

	purchaseUC := documents.NewPurchaseOrderUseCase(txRunner, purchaseRepo, appCache, log)
	saleUC := documents.NewSaleUseCase(txRunner, saleRepo, appCache, log)
	productionUC := documents.NewProductionOrderUseCase(txRunner, productionRepo, appCache, log)
	salePDFUC := documents.NewSalePDFUseCase(saleRepo, customerRepo, productRepo, infrapdf.NewMarotoReceiptGenerator())

	inventoryUC := inventory.NewUseCase(txRunner, movementRepo, appCache, log)
	reportUC := reports.NewUseCase(analyticsRepo, logRepo, appCache, log)

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
		Title:    "Panadería MRP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		MaterialUC:   materialUC,
		SupplierUC:   supplierUC,
		CustomerUC:   customerUC,
		PurchaseUC:   purchaseUC,
		SaleUC:       saleUC,
		SalePDFUC:    salePDFUC,
		ProductionUC: productionUC,
		InventoryUC:  inventoryUC,
		ReportUC:     reportUC,
		JWTSecret:    cfg.JWT.Secret,
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
