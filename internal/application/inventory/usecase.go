// Package inventory ajustes manuales de stock y consulta del kardex.
package inventory

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

// TxRunner ejecuta fn dentro de una transacción con los repos atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}

// UseCase ajustes de inventario y lectura del kardex.
type UseCase struct {
	txr       TxRunner
	movements repository.InventoryMovementRepository
	cache     *cache.Cache
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(txr TxRunner, movements repository.InventoryMovementRepository, c *cache.Cache, log *logger.Logger) *UseCase {
	return &UseCase{txr: txr, movements: movements, cache: c, log: log}
}

// AdjustStock aplica un ajuste manual sobre un producto o una materia prima:
// ENTRADA suma, SALIDA resta y CORRECCION sobrescribe el stock con la
// cantidad indicada. La fila se bloquea con FOR UPDATE y el movimiento
// registra el stock antes y después, todo en una transacción junto con la
// bitácora.
func (uc *UseCase) AdjustStock(ctx context.Context, actorID int64, in dto.AdjustStockRequest) (*dto.MovementResponse, error) {
	switch in.Type {
	case "ENTRADA", "SALIDA":
		if !in.Quantity.IsPositive() {
			return nil, domain.Validation("la cantidad debe ser mayor que cero")
		}
	case "CORRECCION":
		if in.Quantity.IsNegative() {
			return nil, domain.Validation("la corrección no puede dejar stock negativo")
		}
	default:
		return nil, domain.Validation("tipo de ajuste desconocido: " + in.Type)
	}
	if (in.ProductID > 0) == (in.MaterialID > 0) {
		return nil, domain.Validation("el ajuste debe referenciar un producto o una materia prima")
	}

	var movement *entity.InventoryMovement
	err := uc.txr.Run(ctx, func(tx repository.Tx) error {
		var err error
		if in.ProductID > 0 {
			movement, err = uc.adjustProduct(tx, in)
		} else {
			movement, err = uc.adjustMaterial(tx, in)
		}
		if err != nil {
			return err
		}
		movement.UserID = actorID
		if err := tx.Movements.Create(movement); err != nil {
			return domain.Internal("registrar movimiento", err)
		}

		return tx.Logs.Append(&entity.SystemLog{
			UserID:  actorID,
			Module:  "inventario",
			Action:  "AJUSTAR_STOCK",
			Details: in.Type + " " + movement.Reason,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, cacheDomainsFor(in))
	return toMovementResponse(movement), nil
}

func (uc *UseCase) adjustProduct(tx repository.Tx, in dto.AdjustStockRequest) (*entity.InventoryMovement, error) {
	product, err := tx.Products.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, domain.Internal("bloquear producto", err)
	}
	if product == nil || !product.Active {
		return nil, domain.NotFoundf("producto %d no existe o está inactivo", in.ProductID)
	}

	before := product.StockActual
	after, movType := applyAdjustment(before, in)
	if err := tx.Products.UpdateStock(in.ProductID, after); err != nil {
		return nil, domain.Internal("actualizar stock", err)
	}

	return &entity.InventoryMovement{
		ProductID:     in.ProductID,
		ProductName:   product.Name,
		Type:          movType,
		Quantity:      in.Quantity,
		StockBefore:   before,
		StockAfter:    after,
		Reason:        "producto " + product.Code + ": " + in.Reason,
		ReferenceType: "AJUSTE_MANUAL",
	}, nil
}

func (uc *UseCase) adjustMaterial(tx repository.Tx, in dto.AdjustStockRequest) (*entity.InventoryMovement, error) {
	material, err := tx.Materials.GetForUpdate(in.MaterialID)
	if err != nil {
		return nil, domain.Internal("bloquear materia prima", err)
	}
	if material == nil || !material.Active {
		return nil, domain.NotFoundf("materia prima %d no existe o está inactiva", in.MaterialID)
	}

	before := material.StockActual
	after, movType := applyAdjustment(before, in)
	if err := tx.Materials.UpdateStock(in.MaterialID, after); err != nil {
		return nil, domain.Internal("actualizar stock", err)
	}

	return &entity.InventoryMovement{
		MaterialID:    in.MaterialID,
		MaterialName:  material.Name,
		Type:          movType,
		Quantity:      in.Quantity,
		StockBefore:   before,
		StockAfter:    after,
		Reason:        "materia prima " + material.Code + ": " + in.Reason,
		ReferenceType: "AJUSTE_MANUAL",
	}, nil
}

func applyAdjustment(before decimal.Decimal, in dto.AdjustStockRequest) (decimal.Decimal, string) {
	switch in.Type {
	case "ENTRADA":
		return before.Add(in.Quantity), entity.MovementEntrada
	case "SALIDA":
		return before.Sub(in.Quantity), entity.MovementSalida
	default:
		return in.Quantity, entity.MovementCorreccion
	}
}

// Movements devuelve el kardex filtrado por producto o materia prima (el
// primero con ID > 0) o el global.
func (uc *UseCase) Movements(productID, materialID int64, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	var (
		movements []*entity.InventoryMovement
		err       error
	)
	switch {
	case productID > 0:
		movements, err = uc.movements.ListByProduct(productID, page.Limit, page.Offset)
	case materialID > 0:
		movements, err = uc.movements.ListByMaterial(materialID, page.Limit, page.Offset)
	default:
		movements, err = uc.movements.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, domain.Internal("listar movimientos", err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

func cacheDomainsFor(in dto.AdjustStockRequest) []string {
	if in.ProductID > 0 {
		return []string{cache.DomainProducts, cache.DomainReports}
	}
	return []string{cache.DomainMaterials, cache.DomainReports}
}

func (uc *UseCase) invalidate(ctx context.Context, domains []string) {
	for _, domainName := range domains {
		if err := uc.cache.Invalidate(ctx, domainName); err != nil {
			uc.log.Warn().Err(err).Str("dominio", domainName).Msg("cache: no se pudo invalidar")
		}
	}
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		MaterialID:    m.MaterialID,
		MaterialName:  m.MaterialName,
		Type:          m.Type,
		Quantity:      m.Quantity,
		StockBefore:   m.StockBefore,
		StockAfter:    m.StockAfter,
		Reason:        m.Reason,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
		UserName:      m.UserName,
		CreatedAt:     m.CreatedAt,
	}
}
