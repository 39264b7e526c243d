package documents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
	"github.com/pansoft/panaderia-mrp/internal/infrastructure/cache"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

// ProductionOrderUseCase planificación y consulta de órdenes de producción.
type ProductionOrderUseCase struct {
	txr        TxRunner
	production repository.ProductionOrderRepository
	cache      *cache.Cache
	log        *logger.Logger
}

// NewProductionOrderUseCase construye el caso de uso de órdenes de producción.
func NewProductionOrderUseCase(txr TxRunner, production repository.ProductionOrderRepository, c *cache.Cache, log *logger.Logger) *ProductionOrderUseCase {
	return &ProductionOrderUseCase{txr: txr, production: production, cache: c, log: log}
}

// Create planifica una orden de producción. Ni el stock del producto ni el
// de las materias primas cambian aquí: los requerimientos nacen con
// cantidad_asignada en cero y la asignación de materiales es un paso
// posterior.
func (uc *ProductionOrderUseCase) Create(ctx context.Context, actorID int64, in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if !in.QuantityPlanned.IsPositive() {
		return nil, domain.Validation("la cantidad a producir debe ser mayor que cero")
	}
	for _, req := range in.Requirements {
		if !req.QuantityRequired.IsPositive() {
			return nil, domain.Validation("la cantidad requerida debe ser mayor que cero")
		}
	}

	now := time.Now()
	priority := in.Priority
	if priority == "" {
		priority = "NORMAL"
	}

	order := &entity.ProductionOrder{
		Number:          in.Number,
		ProductID:       in.ProductID,
		QuantityPlanned: in.QuantityPlanned,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Status:          entity.StatusPlanificada,
		Priority:        priority,
		Notes:           in.Notes,
		ResponsibleID:   actorID,
	}

	err := uc.txr.Run(ctx, func(tx repository.Tx) error {
		product, err := tx.Products.GetByID(in.ProductID)
		if err != nil {
			return domain.Internal("buscar producto", err)
		}
		if product == nil || !product.Active {
			return domain.NotFoundf("producto %d no existe o está inactivo", in.ProductID)
		}
		order.ProductName = product.Name

		reqs := make([]entity.MaterialRequirement, 0, len(in.Requirements))
		for _, req := range in.Requirements {
			material, err := tx.Materials.GetByID(req.RawMaterialID)
			if err != nil {
				return domain.Internal("buscar materia prima", err)
			}
			if material == nil || !material.Active {
				return domain.NotFoundf("materia prima %d no existe o está inactiva", req.RawMaterialID)
			}
			reqs = append(reqs, entity.MaterialRequirement{
				RawMaterialID:    req.RawMaterialID,
				RawMaterialName:  material.Name,
				QuantityRequired: req.QuantityRequired,
				QuantityAssigned: decimal.Zero,
				UnitMeasure:      req.UnitMeasure,
			})
		}

		if order.Number == "" {
			number, err := nextNumber(tx.Sequences, DocTypeProduction, now)
			if err != nil {
				return domain.Internal("numerar orden de produccion", err)
			}
			order.Number = number
		}

		if err := tx.Production.CreateHeader(order); err != nil {
			if err == domain.ErrDuplicate {
				return domain.Duplicate("el número de orden ya existe")
			}
			return domain.Internal("crear orden de produccion", err)
		}
		for i := range reqs {
			reqs[i].OrderID = order.ID
			if err := tx.Production.CreateRequirement(&reqs[i]); err != nil {
				return domain.Internal("crear requerimiento", err)
			}
		}
		order.Requirements = reqs

		return tx.Logs.Append(&entity.SystemLog{
			UserID:  actorID,
			Module:  "produccion",
			Action:  "CREAR_ORDEN_PRODUCCION",
			Details: "orden " + order.Number,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	return toProductionOrderResponse(order, order.Requirements), nil
}

// Get devuelve una orden con sus requerimientos.
func (uc *ProductionOrderUseCase) Get(id int64) (*dto.ProductionOrderResponse, error) {
	order, err := uc.production.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar orden de produccion", err)
	}
	if order == nil {
		return nil, domain.NotFoundf("orden de produccion %d no existe", id)
	}
	reqs, err := uc.production.GetRequirementsByOrderID(id)
	if err != nil {
		return nil, domain.Internal("buscar requerimientos", err)
	}
	requirements := make([]entity.MaterialRequirement, 0, len(reqs))
	for _, r := range reqs {
		requirements = append(requirements, *r)
	}
	return toProductionOrderResponse(order, requirements), nil
}

// List devuelve las órdenes de producción, con caché de lectura.
func (uc *ProductionOrderUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductionOrderResponse, error) {
	page.DefaultPage()
	key, err := uc.cache.BuildKey(ctx, cache.DomainProduction, "list", pageToken(page))
	if err != nil {
		return nil, domain.Internal("clave de cache", err)
	}

	var out []dto.ProductionOrderResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		orders, err := uc.production.List(page.Limit, page.Offset)
		if err != nil {
			return nil, domain.Internal("listar ordenes de produccion", err)
		}
		items := make([]dto.ProductionOrderResponse, 0, len(orders))
		for _, o := range orders {
			items = append(items, *toProductionOrderResponse(o, nil))
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus cambia el estado de la orden (PLANIFICADA, EN_PROCESO,
// TERMINADA, CANCELADA u otro valor operativo).
func (uc *ProductionOrderUseCase) UpdateStatus(ctx context.Context, actorID, id int64, status string) error {
	err := uc.txr.Run(ctx, func(tx repository.Tx) error {
		if err := tx.Production.UpdateStatus(id, status); err != nil {
			if err == domain.ErrNotFound {
				return domain.NotFoundf("orden de produccion %d no existe", id)
			}
			return domain.Internal("actualizar estado", err)
		}
		return tx.Logs.Append(&entity.SystemLog{
			UserID:  actorID,
			Module:  "produccion",
			Action:  "CAMBIAR_ESTADO_ORDEN_PRODUCCION",
			Details: status,
		})
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *ProductionOrderUseCase) invalidate(ctx context.Context) {
	for _, domainName := range []string{cache.DomainProduction, cache.DomainReports} {
		if err := uc.cache.Invalidate(ctx, domainName); err != nil {
			uc.log.Warn().Err(err).Str("dominio", domainName).Msg("cache: no se pudo invalidar")
		}
	}
}

func toProductionOrderResponse(o *entity.ProductionOrder, reqs []entity.MaterialRequirement) *dto.ProductionOrderResponse {
	if o == nil {
		return nil
	}
	resp := &dto.ProductionOrderResponse{
		ID:              o.ID,
		Number:          o.Number,
		ProductID:       o.ProductID,
		ProductName:     o.ProductName,
		QuantityPlanned: o.QuantityPlanned,
		StartDate:       o.StartDate,
		EndDate:         o.EndDate,
		Status:          o.Status,
		Priority:        o.Priority,
		Notes:           o.Notes,
		ResponsibleName: o.ResponsibleName,
		CreatedAt:       o.CreatedAt,
	}
	for _, r := range reqs {
		resp.Requirements = append(resp.Requirements, dto.MaterialRequirementResponse{
			ID:               r.ID,
			RawMaterialID:    r.RawMaterialID,
			RawMaterialName:  r.RawMaterialName,
			QuantityRequired: r.QuantityRequired,
			QuantityAssigned: r.QuantityAssigned,
			UnitMeasure:      r.UnitMeasure,
		})
	}
	return resp
}
