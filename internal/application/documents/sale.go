package documents

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/billing"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
	"github.com/pansoft/panaderia-mrp/internal/infrastructure/cache"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// SaleUseCase registro y consulta de ventas.
type SaleUseCase struct {
	txr   TxRunner
	sales repository.SaleRepository
	cache *cache.Cache
	log   *logger.Logger
}

// NewSaleUseCase construye el caso de uso de ventas.
func NewSaleUseCase(txr TxRunner, sales repository.SaleRepository, c *cache.Cache, log *logger.Logger) *SaleUseCase {
	return &SaleUseCase{txr: txr, sales: sales, cache: c, log: log}
}

// Create registra una venta: numeración, cabecera, líneas, descuento de
// stock y movimientos VENTA, todo en una transacción. Los productos se
// bloquean con FOR UPDATE en orden de ID para serializar ventas
// concurrentes sin deadlocks. El stock puede quedar negativo: la venta de
// mostrador no se rechaza por descuadre de inventario.
func (uc *SaleUseCase) Create(ctx context.Context, actorID int64, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.Validation("la venta requiere al menos una línea")
	}
	for _, line := range in.Lines {
		if !line.Quantity.IsPositive() {
			return nil, domain.Validation("la cantidad debe ser mayor que cero")
		}
		if line.UnitPrice.IsNegative() {
			return nil, domain.Validation("el precio unitario no puede ser negativo")
		}
		if line.Discount.IsNegative() || line.Discount.GreaterThan(oneHundred) {
			return nil, domain.Validation("el descuento de línea es un porcentaje entre 0 y 100")
		}
	}
	if in.Discount.IsNegative() {
		return nil, domain.Validation("el descuento no puede ser negativo")
	}

	now := time.Now()
	saleDate := now
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "CONTADO"
	}

	sale := &entity.Sale{
		Number:        in.Number,
		CustomerID:    in.CustomerID,
		SaleDate:      saleDate,
		Discount:      in.Discount,
		Status:        entity.StatusPendiente,
		PaymentMethod: paymentMethod,
		DueDate:       in.DueDate,
		Notes:         in.Notes,
		SellerID:      actorID,
	}

	err := uc.txr.Run(ctx, func(tx repository.Tx) error {
		customer, err := tx.Customers.GetByID(in.CustomerID)
		if err != nil {
			return domain.Internal("buscar cliente", err)
		}
		if customer == nil || !customer.Active {
			return domain.NotFoundf("cliente %d no existe o está inactivo", in.CustomerID)
		}
		sale.CustomerName = customer.Name

		// Bloquear productos en orden de ID. El stock corriente se lleva en
		// memoria para que dos líneas del mismo producto se encadenen bien.
		lockOrder := make([]int, len(in.Lines))
		for i := range lockOrder {
			lockOrder[i] = i
		}
		sort.Slice(lockOrder, func(a, b int) bool {
			return in.Lines[lockOrder[a]].ProductID < in.Lines[lockOrder[b]].ProductID
		})

		type preparedLine struct {
			detail      entity.SaleDetail
			stockBefore decimal.Decimal
			stockAfter  decimal.Decimal
		}
		prepared := make([]preparedLine, len(in.Lines))
		currentStock := make(map[int64]decimal.Decimal)

		for _, i := range lockOrder {
			line := in.Lines[i]
			stock, locked := currentStock[line.ProductID]
			if !locked {
				product, err := tx.Products.GetForUpdate(line.ProductID)
				if err != nil {
					return domain.Internal("bloquear producto", err)
				}
				if product == nil || !product.Active {
					return domain.NotFoundf("producto %d no existe o está inactivo", line.ProductID)
				}
				stock = product.StockActual
			}
			after := stock.Sub(line.Quantity)
			currentStock[line.ProductID] = after

			prepared[i] = preparedLine{
				detail: entity.SaleDetail{
					ProductID: line.ProductID,
					Quantity:  line.Quantity,
					UnitPrice: line.UnitPrice,
					Discount:  line.Discount,
					LineTotal: billing.SaleLineTotal(line.Quantity, line.UnitPrice, line.Discount),
				},
				stockBefore: stock,
				stockAfter:  after,
			}
		}

		for i := range prepared {
			sale.Subtotal = sale.Subtotal.Add(prepared[i].detail.LineTotal)
		}
		sale.Tax, sale.Total = billing.SaleTotals(sale.Subtotal, sale.Discount)

		if sale.Number == "" {
			number, err := nextNumber(tx.Sequences, DocTypeSale, now)
			if err != nil {
				return domain.Internal("numerar venta", err)
			}
			sale.Number = number
		}

		if err := tx.Sales.CreateHeader(sale); err != nil {
			if err == domain.ErrDuplicate {
				return domain.Duplicate("el número de factura ya existe")
			}
			return domain.Internal("crear venta", err)
		}

		for productID, stock := range currentStock {
			if err := tx.Products.UpdateStock(productID, stock); err != nil {
				return domain.Internal("descontar stock", err)
			}
		}

		for i := range prepared {
			p := &prepared[i]
			p.detail.SaleID = sale.ID
			if err := tx.Sales.CreateDetail(&p.detail); err != nil {
				return domain.Internal("crear detalle de venta", err)
			}
			movement := &entity.InventoryMovement{
				ProductID:     p.detail.ProductID,
				Type:          entity.MovementVenta,
				Quantity:      p.detail.Quantity,
				StockBefore:   p.stockBefore,
				StockAfter:    p.stockAfter,
				Reason:        "venta " + sale.Number,
				ReferenceID:   &sale.ID,
				ReferenceType: "VENTA",
				UserID:        actorID,
			}
			if err := tx.Movements.Create(movement); err != nil {
				return domain.Internal("registrar movimiento de venta", err)
			}
			sale.Details = append(sale.Details, p.detail)
		}

		return tx.Logs.Append(&entity.SystemLog{
			UserID:  actorID,
			Module:  "ventas",
			Action:  "CREAR_VENTA",
			Details: "venta " + sale.Number,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	return toSaleResponse(sale, sale.Details), nil
}

// Get devuelve una venta con sus líneas.
func (uc *SaleUseCase) Get(id int64) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar venta", err)
	}
	if sale == nil {
		return nil, domain.NotFoundf("venta %d no existe", id)
	}
	details, err := uc.sales.GetDetailsBySaleID(id)
	if err != nil {
		return nil, domain.Internal("buscar detalle de venta", err)
	}
	lines := make([]entity.SaleDetail, 0, len(details))
	for _, d := range details {
		lines = append(lines, *d)
	}
	return toSaleResponse(sale, lines), nil
}

// List devuelve las ventas, con caché de lectura.
func (uc *SaleUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	key, err := uc.cache.BuildKey(ctx, cache.DomainSales, "list", pageToken(page))
	if err != nil {
		return nil, domain.Internal("clave de cache", err)
	}

	var out []dto.SaleResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		sales, err := uc.sales.List(page.Limit, page.Offset)
		if err != nil {
			return nil, domain.Internal("listar ventas", err)
		}
		items := make([]dto.SaleResponse, 0, len(sales))
		for _, s := range sales {
			items = append(items, *toSaleResponse(s, nil))
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus cambia el estado de la venta. Cancelar no repone stock: la
// reposición es un ajuste manual explícito con su propio movimiento.
func (uc *SaleUseCase) UpdateStatus(ctx context.Context, actorID, id int64, status string) error {
	err := uc.txr.Run(ctx, func(tx repository.Tx) error {
		if err := tx.Sales.UpdateStatus(id, status); err != nil {
			if err == domain.ErrNotFound {
				return domain.NotFoundf("venta %d no existe", id)
			}
			return domain.Internal("actualizar estado", err)
		}
		return tx.Logs.Append(&entity.SystemLog{
			UserID:  actorID,
			Module:  "ventas",
			Action:  "CAMBIAR_ESTADO_VENTA",
			Details: status,
		})
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *SaleUseCase) invalidate(ctx context.Context) {
	for _, domainName := range []string{cache.DomainSales, cache.DomainProducts, cache.DomainReports} {
		if err := uc.cache.Invalidate(ctx, domainName); err != nil {
			uc.log.Warn().Err(err).Str("dominio", domainName).Msg("cache: no se pudo invalidar")
		}
	}
}

func toSaleResponse(s *entity.Sale, details []entity.SaleDetail) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	resp := &dto.SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		CustomerID:    s.CustomerID,
		CustomerName:  s.CustomerName,
		SaleDate:      s.SaleDate,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Tax:           s.Tax,
		Total:         s.Total,
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
		DueDate:       s.DueDate,
		Notes:         s.Notes,
		SellerName:    s.SellerName,
		CreatedAt:     s.CreatedAt,
	}
	for _, d := range details {
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Discount:  d.Discount,
			LineTotal: d.LineTotal,
		})
	}
	return resp
}
