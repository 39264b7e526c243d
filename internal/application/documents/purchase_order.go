package documents

import (
	"context"
	"time"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/billing"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
	"github.com/pansoft/panaderia-mrp/internal/infrastructure/cache"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

// PurchaseOrderUseCase creación y consulta de órdenes de compra.
type PurchaseOrderUseCase struct {
	txr       TxRunner
	purchases repository.PurchaseOrderRepository
	cache     *cache.Cache
	log       *logger.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso de órdenes de compra.
func NewPurchaseOrderUseCase(txr TxRunner, purchases repository.PurchaseOrderRepository, c *cache.Cache, log *logger.Logger) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{txr: txr, purchases: purchases, cache: c, log: log}
}

// Create registra una orden de compra. No mueve stock: la orden es un
// compromiso con el proveedor, no una recepción.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, actorID int64, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.Validation("la orden requiere al menos una línea")
	}
	for _, line := range in.Lines {
		if (line.ProductID == nil) == (line.RawMaterialID == nil) {
			return nil, domain.Validation("cada línea referencia un producto o una materia prima, no ambos ni ninguno")
		}
		if !line.Quantity.IsPositive() {
			return nil, domain.Validation("la cantidad debe ser mayor que cero")
		}
		if line.UnitPrice.IsNegative() {
			return nil, domain.Validation("el precio unitario no puede ser negativo")
		}
	}
	if in.Discount.IsNegative() {
		return nil, domain.Validation("el descuento no puede ser negativo")
	}

	now := time.Now()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	order := &entity.PurchaseOrder{
		Number:       in.Number,
		SupplierID:   in.SupplierID,
		OrderDate:    orderDate,
		ExpectedDate: in.ExpectedDate,
		Status:       entity.StatusPendiente,
		Discount:     in.Discount,
		Notes:        in.Notes,
		CreatedBy:    actorID,
	}

	err := uc.txr.Run(ctx, func(tx repository.Tx) error {
		supplier, err := tx.Suppliers.GetByID(in.SupplierID)
		if err != nil {
			return domain.Internal("buscar proveedor", err)
		}
		if supplier == nil || !supplier.Active {
			return domain.NotFoundf("proveedor %d no existe o está inactivo", in.SupplierID)
		}
		order.SupplierName = supplier.Name

		// Resolver referencias y armar detalles antes de tocar la cabecera.
		details := make([]entity.PurchaseOrderDetail, 0, len(in.Lines))
		for _, line := range in.Lines {
			d := entity.PurchaseOrderDetail{
				ProductID:     line.ProductID,
				RawMaterialID: line.RawMaterialID,
				Description:   line.Description,
				Quantity:      line.Quantity,
				UnitMeasure:   line.UnitMeasure,
				UnitPrice:     line.UnitPrice,
				LineTotal:     billing.PurchaseLineTotal(line.Quantity, line.UnitPrice),
			}
			if line.ProductID != nil {
				product, err := tx.Products.GetByID(*line.ProductID)
				if err != nil {
					return domain.Internal("buscar producto", err)
				}
				if product == nil || !product.Active {
					return domain.NotFoundf("producto %d no existe o está inactivo", *line.ProductID)
				}
				if d.Description == "" {
					d.Description = product.Name
				}
			} else {
				material, err := tx.Materials.GetByID(*line.RawMaterialID)
				if err != nil {
					return domain.Internal("buscar materia prima", err)
				}
				if material == nil || !material.Active {
					return domain.NotFoundf("materia prima %d no existe o está inactiva", *line.RawMaterialID)
				}
				if d.Description == "" {
					d.Description = material.Name
				}
			}
			order.Subtotal = order.Subtotal.Add(d.LineTotal)
			details = append(details, d)
		}

		// El descuento de cabecera no reduce la base imponible de la compra.
		order.Tax, order.Total = billing.PurchaseTotals(order.Subtotal)

		if order.Number == "" {
			number, err := nextNumber(tx.Sequences, DocTypePurchase, now)
			if err != nil {
				return domain.Internal("numerar orden de compra", err)
			}
			order.Number = number
		}

		if err := tx.Purchases.CreateHeader(order); err != nil {
			if err == domain.ErrDuplicate {
				return domain.Duplicate("el número de orden ya existe")
			}
			return domain.Internal("crear orden de compra", err)
		}
		for i := range details {
			details[i].OrderID = order.ID
			if err := tx.Purchases.CreateDetail(&details[i]); err != nil {
				return domain.Internal("crear detalle de orden", err)
			}
		}
		order.Details = details

		// La bitácora del documento va dentro de la transacción.
		return tx.Logs.Append(&entity.SystemLog{
			UserID:  actorID,
			Module:  "compras",
			Action:  "CREAR_ORDEN_COMPRA",
			Details: "orden " + order.Number,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	return toPurchaseOrderResponse(order, order.Details), nil
}

// Get devuelve una orden con sus líneas.
func (uc *PurchaseOrderUseCase) Get(id int64) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.purchases.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar orden de compra", err)
	}
	if order == nil {
		return nil, domain.NotFoundf("orden de compra %d no existe", id)
	}
	details, err := uc.purchases.GetDetailsByOrderID(id)
	if err != nil {
		return nil, domain.Internal("buscar detalle de orden", err)
	}
	lines := make([]entity.PurchaseOrderDetail, 0, len(details))
	for _, d := range details {
		lines = append(lines, *d)
	}
	return toPurchaseOrderResponse(order, lines), nil
}

// List devuelve las órdenes de compra, con caché de lectura.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.PurchaseOrderResponse, error) {
	page.DefaultPage()
	key, err := uc.cache.BuildKey(ctx, cache.DomainPurchases, "list", pageToken(page))
	if err != nil {
		return nil, domain.Internal("clave de cache", err)
	}

	var out []dto.PurchaseOrderResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		orders, err := uc.purchases.List(page.Limit, page.Offset)
		if err != nil {
			return nil, domain.Internal("listar ordenes de compra", err)
		}
		items := make([]dto.PurchaseOrderResponse, 0, len(orders))
		for _, o := range orders {
			items = append(items, *toPurchaseOrderResponse(o, nil))
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus cambia el estado de la orden. No hay máquina de estados: el
// valor es libre y queda auditado.
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, actorID, id int64, status string) error {
	err := uc.txr.Run(ctx, func(tx repository.Tx) error {
		if err := tx.Purchases.UpdateStatus(id, status); err != nil {
			if err == domain.ErrNotFound {
				return domain.NotFoundf("orden de compra %d no existe", id)
			}
			return domain.Internal("actualizar estado", err)
		}
		return tx.Logs.Append(&entity.SystemLog{
			UserID:  actorID,
			Module:  "compras",
			Action:  "CAMBIAR_ESTADO_ORDEN_COMPRA",
			Details: status,
		})
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *PurchaseOrderUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx, cache.DomainPurchases); err != nil {
		uc.log.Warn().Err(err).Msg("cache: no se pudo invalidar compras")
	}
	if err := uc.cache.Invalidate(ctx, cache.DomainReports); err != nil {
		uc.log.Warn().Err(err).Msg("cache: no se pudo invalidar reportes")
	}
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder, details []entity.PurchaseOrderDetail) *dto.PurchaseOrderResponse {
	if o == nil {
		return nil
	}
	resp := &dto.PurchaseOrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		SupplierID:    o.SupplierID,
		SupplierName:  o.SupplierName,
		OrderDate:     o.OrderDate,
		ExpectedDate:  o.ExpectedDate,
		Status:        o.Status,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Tax:           o.Tax,
		Total:         o.Total,
		Notes:         o.Notes,
		CreatedByName: o.CreatedByName,
		CreatedAt:     o.CreatedAt,
	}
	for _, d := range details {
		resp.Lines = append(resp.Lines, dto.PurchaseOrderLineResponse{
			ID:            d.ID,
			ProductID:     d.ProductID,
			RawMaterialID: d.RawMaterialID,
			Description:   d.Description,
			Quantity:      d.Quantity,
			UnitMeasure:   d.UnitMeasure,
			UnitPrice:     d.UnitPrice,
			LineTotal:     d.LineTotal,
		})
	}
	return resp
}
