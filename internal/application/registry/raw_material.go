package registry

import (
	"context"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
	"github.com/pansoft/panaderia-mrp/internal/infrastructure/cache"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

// RawMaterialUseCase casos de uso del catálogo de materias primas.
type RawMaterialUseCase struct {
	materials repository.RawMaterialRepository
	cache     *cache.Cache
	auditor   auditor
}

// NewRawMaterialUseCase construye el caso de uso de materias primas.
func NewRawMaterialUseCase(materials repository.RawMaterialRepository, c *cache.Cache, logs repository.SystemLogRepository, log *logger.Logger) *RawMaterialUseCase {
	return &RawMaterialUseCase{
		materials: materials,
		cache:     c,
		auditor:   auditor{logs: logs, log: log},
	}
}

// Create da de alta una materia prima.
func (uc *RawMaterialUseCase) Create(ctx context.Context, actorID int64, in dto.CreateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	code := in.Code
	if code == "" {
		code = GenerateCode(PrefixRawMaterial)
	}
	if in.StockInitial.IsNegative() {
		return nil, domain.Validation("el stock inicial no puede ser negativo")
	}

	material := &entity.RawMaterial{
		Code:        code,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		UnitMeasure: in.UnitMeasure,
		UnitCost:    in.UnitCost,
		StockActual: in.StockInitial,
		StockMin:    in.StockMin,
		StockMax:    in.StockMax,
		ExpiryDate:  in.ExpiryDate,
		Lot:         in.Lot,
		Location:    in.Location,
		SupplierID:  in.SupplierID,
		CreatedBy:   actorID,
		Active:      true,
	}
	if err := uc.materials.Create(material); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.Duplicate("el código de materia prima ya existe")
		}
		return nil, domain.Internal("crear materia prima", err)
	}

	uc.invalidate(ctx)
	uc.auditor.record(actorID, "materias_primas", "CREAR_MATERIA_PRIMA", "materia prima "+material.Code)
	return toRawMaterialResponse(material), nil
}

// Get devuelve una materia prima por ID.
func (uc *RawMaterialUseCase) Get(id int64) (*dto.RawMaterialResponse, error) {
	material, err := uc.materials.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar materia prima", err)
	}
	if material == nil {
		return nil, domain.NotFoundf("materia prima %d no existe", id)
	}
	return toRawMaterialResponse(material), nil
}

// GetByCode devuelve una materia prima por su código de catálogo.
func (uc *RawMaterialUseCase) GetByCode(code string) (*dto.RawMaterialResponse, error) {
	material, err := uc.materials.GetByCode(code)
	if err != nil {
		return nil, domain.Internal("buscar materia prima", err)
	}
	if material == nil {
		return nil, domain.NotFoundf("materia prima %s no existe", code)
	}
	return toRawMaterialResponse(material), nil
}

// List devuelve las materias primas activas, con caché de lectura.
func (uc *RawMaterialUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.RawMaterialResponse, error) {
	page.DefaultPage()
	key, err := uc.cache.BuildKey(ctx, cache.DomainMaterials, "list", pageToken(page))
	if err != nil {
		return nil, domain.Internal("clave de cache", err)
	}

	var out []dto.RawMaterialResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		materials, err := uc.materials.List(page.Limit, page.Offset)
		if err != nil {
			return nil, domain.Internal("listar materias primas", err)
		}
		items := make([]dto.RawMaterialResponse, 0, len(materials))
		for _, m := range materials {
			items = append(items, *toRawMaterialResponse(m))
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update aplica cambios parciales. El stock no se toca aquí.
func (uc *RawMaterialUseCase) Update(ctx context.Context, actorID, id int64, in dto.UpdateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	material, err := uc.materials.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar materia prima", err)
	}
	if material == nil {
		return nil, domain.NotFoundf("materia prima %d no existe", id)
	}

	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.Description != nil {
		material.Description = *in.Description
	}
	if in.Category != nil {
		material.Category = *in.Category
	}
	if in.UnitMeasure != nil {
		material.UnitMeasure = *in.UnitMeasure
	}
	if in.UnitCost != nil {
		material.UnitCost = *in.UnitCost
	}
	if in.StockMin != nil {
		material.StockMin = *in.StockMin
	}
	if in.StockMax != nil {
		material.StockMax = *in.StockMax
	}
	if in.ExpiryDate != nil {
		material.ExpiryDate = in.ExpiryDate
	}
	if in.Lot != nil {
		material.Lot = *in.Lot
	}
	if in.Location != nil {
		material.Location = *in.Location
	}
	if in.SupplierID != nil {
		material.SupplierID = in.SupplierID
	}

	if err := uc.materials.Update(material); err != nil {
		return nil, domain.Internal("actualizar materia prima", err)
	}

	uc.invalidate(ctx)
	uc.auditor.record(actorID, "materias_primas", "ACTUALIZAR_MATERIA_PRIMA", "materia prima "+material.Code)
	return toRawMaterialResponse(material), nil
}

// Deactivate baja lógica de la materia prima.
func (uc *RawMaterialUseCase) Deactivate(ctx context.Context, actorID, id int64) error {
	if err := uc.materials.Deactivate(id); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFoundf("materia prima %d no existe", id)
		}
		return domain.Internal("desactivar materia prima", err)
	}
	uc.invalidate(ctx)
	uc.auditor.record(actorID, "materias_primas", "DESACTIVAR_MATERIA_PRIMA", "")
	return nil
}

func (uc *RawMaterialUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx, cache.DomainMaterials); err != nil {
		uc.auditor.log.Warn().Err(err).Msg("cache: no se pudo invalidar materias primas")
	}
	if err := uc.cache.Invalidate(ctx, cache.DomainReports); err != nil {
		uc.auditor.log.Warn().Err(err).Msg("cache: no se pudo invalidar reportes")
	}
}

func toRawMaterialResponse(m *entity.RawMaterial) *dto.RawMaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.RawMaterialResponse{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		Description:  m.Description,
		Category:     m.Category,
		UnitMeasure:  m.UnitMeasure,
		UnitCost:     m.UnitCost,
		StockActual:  m.StockActual,
		StockMin:     m.StockMin,
		StockMax:     m.StockMax,
		ExpiryDate:   m.ExpiryDate,
		Lot:          m.Lot,
		Location:     m.Location,
		SupplierID:   m.SupplierID,
		SupplierName: m.SupplierName,
		CreatedAt:    m.CreatedAt,
		Active:       m.Active,
	}
}
