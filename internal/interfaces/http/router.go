// Package http expone la API REST con Fiber: handlers, middleware de auth
// JWT y el registro de rutas.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pansoft/panaderia-mrp/internal/application/auth"
	"github.com/pansoft/panaderia-mrp/internal/application/documents"
	"github.com/pansoft/panaderia-mrp/internal/application/inventory"
	"github.com/pansoft/panaderia-mrp/internal/application/registry"
	"github.com/pansoft/panaderia-mrp/internal/application/reports"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ProductUC    *registry.ProductUseCase
	MaterialUC   *registry.RawMaterialUseCase
	SupplierUC   *registry.SupplierUseCase
	CustomerUC   *registry.CustomerUseCase
	PurchaseUC   *documents.PurchaseOrderUseCase
	SaleUC       *documents.SaleUseCase
	SalePDFUC    *documents.SalePDFUseCase
	ProductionUC *documents.ProductionOrderUseCase
	InventoryUC  *inventory.UseCase
	ReportUC     *reports.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todas las rutas menos el login exigen
// Bearer Token; las operaciones sensibles exigen además un rol concreto.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público solo el login)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Usuarios (solo admin)
	users := protected.Group("/usuarios", adminOnly)
	users.Post("/", authHandler.Register)
	users.Get("/", authHandler.List)
	users.Put("/:id", authHandler.Update)
	users.Delete("/:id", authHandler.Deactivate)

	// Productos
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/codigo/:codigo", productHandler.GetByCode)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Deactivate)

	// Materias primas
	materials := protected.Group("/materias-primas")
	materialHandler := NewRawMaterialHandler(deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/codigo/:codigo", materialHandler.GetByCode)
	materials.Get("/:id", materialHandler.Get)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", adminOnly, materialHandler.Deactivate)

	// Proveedores
	suppliers := protected.Group("/proveedores")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/codigo/:codigo", supplierHandler.GetByCode)
	suppliers.Get("/:id", supplierHandler.Get)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Deactivate)

	// Clientes
	customers := protected.Group("/clientes")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/codigo/:codigo", customerHandler.GetByCode)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Deactivate)

	// Órdenes de compra
	purchases := protected.Group("/compras")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", RequireRole(entity.RoleAdmin, entity.RoleAlmacen), purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.Get)
	purchases.Patch("/:id/estado", RequireRole(entity.RoleAdmin, entity.RoleAlmacen), purchaseHandler.UpdateStatus)

	// Ventas
	sales := protected.Group("/ventas")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.SalePDFUC)
	sales.Post("/", RequireRole(entity.RoleAdmin, entity.RoleVentas), saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.Get)
	sales.Get("/:id/pdf", saleHandler.DownloadPDF)
	sales.Patch("/:id/estado", RequireRole(entity.RoleAdmin, entity.RoleVentas), saleHandler.UpdateStatus)

	// Órdenes de producción
	production := protected.Group("/produccion")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	production.Post("/", RequireRole(entity.RoleAdmin, entity.RoleProduccion), productionHandler.Create)
	production.Get("/", productionHandler.List)
	production.Get("/:id", productionHandler.Get)
	production.Patch("/:id/estado", RequireRole(entity.RoleAdmin, entity.RoleProduccion), productionHandler.UpdateStatus)

	// Inventario
	inv := protected.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Post("/ajustes", RequireRole(entity.RoleAdmin, entity.RoleAlmacen), inventoryHandler.AdjustStock)
	inv.Get("/movimientos", inventoryHandler.Movements)

	// Reportes
	rep := protected.Group("/reportes")
	reportHandler := NewReportHandler(deps.ReportUC)
	rep.Get("/dashboard", reportHandler.Dashboard)
	rep.Get("/ventas", reportHandler.Sales)
	rep.Get("/stock-bajo", reportHandler.LowStock)
	rep.Get("/produccion", reportHandler.Production)
	rep.Get("/bitacora", adminOnly, reportHandler.Logs)
}
