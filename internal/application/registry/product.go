package registry

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
	"github.com/pansoft/panaderia-mrp/internal/infrastructure/cache"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

// ProductUseCase casos de uso del catálogo de productos terminados.
type ProductUseCase struct {
	txr      TxRunner
	products repository.ProductRepository
	cache    *cache.Cache
	auditor  auditor
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(txr TxRunner, products repository.ProductRepository, c *cache.Cache, logs repository.SystemLogRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{
		txr:      txr,
		products: products,
		cache:    c,
		auditor:  auditor{logs: logs, log: log},
	}
}

// Create da de alta un producto. El alta y su movimiento CREACION van en la
// misma transacción: si el kardex no se puede escribir, el producto no
// queda creado.
func (uc *ProductUseCase) Create(ctx context.Context, actorID int64, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := in.Code
	if code == "" {
		code = GenerateCode(PrefixProduct)
	}
	if in.StockInitial.IsNegative() {
		return nil, domain.Validation("el stock inicial no puede ser negativo")
	}

	product := &entity.Product{
		Code:          code,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Subcategory:   in.Subcategory,
		UnitMeasure:   in.UnitMeasure,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		StockMin:      in.StockMin,
		StockMax:      in.StockMax,
		StockActual:   in.StockInitial,
		Weight:        in.Weight,
		Location:      in.Location,
		SupplierID:    in.SupplierID,
		CreatedBy:     actorID,
		Active:        true,
	}

	err := uc.txr.Run(ctx, func(tx repository.Tx) error {
		if err := tx.Products.Create(product); err != nil {
			if err == domain.ErrDuplicate {
				return domain.Duplicate("el código de producto ya existe")
			}
			return domain.Internal("crear producto", err)
		}
		movement := &entity.InventoryMovement{
			ProductID:   product.ID,
			Type:        entity.MovementCreacion,
			Quantity:    in.StockInitial,
			StockBefore: decimal.Zero,
			StockAfter:  in.StockInitial,
			Reason:      "alta de producto",
			UserID:      actorID,
		}
		if err := tx.Movements.Create(movement); err != nil {
			return domain.Internal("registrar movimiento de creacion", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	uc.auditor.record(actorID, "productos", "CREAR_PRODUCTO", "producto "+product.Code)
	return toProductResponse(product), nil
}

// Get devuelve un producto por ID.
func (uc *ProductUseCase) Get(id int64) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar producto", err)
	}
	if product == nil {
		return nil, domain.NotFoundf("producto %d no existe", id)
	}
	return toProductResponse(product), nil
}

// GetByCode devuelve un producto por su código de catálogo.
func (uc *ProductUseCase) GetByCode(code string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByCode(code)
	if err != nil {
		return nil, domain.Internal("buscar producto", err)
	}
	if product == nil {
		return nil, domain.NotFoundf("producto %s no existe", code)
	}
	return toProductResponse(product), nil
}

// List devuelve los productos activos, con caché de lectura.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	key, err := uc.cache.BuildKey(ctx, cache.DomainProducts, "list", pageToken(page))
	if err != nil {
		return nil, domain.Internal("clave de cache", err)
	}

	var out []dto.ProductResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		products, err := uc.products.List(page.Limit, page.Offset)
		if err != nil {
			return nil, domain.Internal("listar productos", err)
		}
		items := make([]dto.ProductResponse, 0, len(products))
		for _, p := range products {
			items = append(items, *toProductResponse(p))
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update aplica cambios parciales a un producto. El stock no se toca aquí.
func (uc *ProductUseCase) Update(ctx context.Context, actorID, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar producto", err)
	}
	if product == nil {
		return nil, domain.NotFoundf("producto %d no existe", id)
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Subcategory != nil {
		product.Subcategory = *in.Subcategory
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.StockMin != nil {
		product.StockMin = *in.StockMin
	}
	if in.StockMax != nil {
		product.StockMax = *in.StockMax
	}
	if in.Weight != nil {
		product.Weight = *in.Weight
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.SupplierID != nil {
		product.SupplierID = in.SupplierID
	}

	if err := uc.products.Update(product); err != nil {
		return nil, domain.Internal("actualizar producto", err)
	}

	uc.invalidate(ctx)
	uc.auditor.record(actorID, "productos", "ACTUALIZAR_PRODUCTO", "producto "+product.Code)
	return toProductResponse(product), nil
}

// Deactivate baja lógica del producto; su historial de movimientos queda.
func (uc *ProductUseCase) Deactivate(ctx context.Context, actorID, id int64) error {
	if err := uc.products.Deactivate(id); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFoundf("producto %d no existe", id)
		}
		return domain.Internal("desactivar producto", err)
	}
	uc.invalidate(ctx)
	uc.auditor.record(actorID, "productos", "DESACTIVAR_PRODUCTO", "")
	return nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx, cache.DomainProducts); err != nil {
		uc.auditor.log.Warn().Err(err).Msg("cache: no se pudo invalidar productos")
	}
	if err := uc.cache.Invalidate(ctx, cache.DomainReports); err != nil {
		uc.auditor.log.Warn().Err(err).Msg("cache: no se pudo invalidar reportes")
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		UnitMeasure:   p.UnitMeasure,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		StockMin:      p.StockMin,
		StockMax:      p.StockMax,
		StockActual:   p.StockActual,
		Weight:        p.Weight,
		Location:      p.Location,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Active:        p.Active,
	}
}
