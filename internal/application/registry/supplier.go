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

// SupplierUseCase casos de uso del registro de proveedores.
type SupplierUseCase struct {
	suppliers repository.SupplierRepository
	cache     *cache.Cache
	auditor   auditor
}

// NewSupplierUseCase construye el caso de uso de proveedores.
func NewSupplierUseCase(suppliers repository.SupplierRepository, c *cache.Cache, logs repository.SystemLogRepository, log *logger.Logger) *SupplierUseCase {
	return &SupplierUseCase{
		suppliers: suppliers,
		cache:     c,
		auditor:   auditor{logs: logs, log: log},
	}
}

// Create da de alta un proveedor. Calificación por defecto 5.
func (uc *SupplierUseCase) Create(ctx context.Context, actorID int64, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	code := in.Code
	if code == "" {
		code = GenerateCode(PrefixSupplier)
	}
	rating := in.Rating
	if rating == 0 {
		rating = 5
	}

	supplier := &entity.Supplier{
		Code:         code,
		Name:         in.Name,
		RUC:          in.RUC,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		Contact:      in.Contact,
		SupplierType: in.SupplierType,
		Products:     in.Products,
		DeliveryDays: in.DeliveryDays,
		Rating:       rating,
		CreditLimit:  in.CreditLimit,
		PaymentTerms: in.PaymentTerms,
		CreatedBy:    actorID,
		Active:       true,
	}
	if err := uc.suppliers.Create(supplier); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.Duplicate("el código de proveedor ya existe")
		}
		return nil, domain.Internal("crear proveedor", err)
	}

	uc.invalidate(ctx)
	uc.auditor.record(actorID, "proveedores", "CREAR_PROVEEDOR", "proveedor "+supplier.Code)
	return toSupplierResponse(supplier), nil
}

// Get devuelve un proveedor por ID.
func (uc *SupplierUseCase) Get(id int64) (*dto.SupplierResponse, error) {
	supplier, err := uc.suppliers.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar proveedor", err)
	}
	if supplier == nil {
		return nil, domain.NotFoundf("proveedor %d no existe", id)
	}
	return toSupplierResponse(supplier), nil
}

// GetByCode devuelve un proveedor por su código de catálogo.
func (uc *SupplierUseCase) GetByCode(code string) (*dto.SupplierResponse, error) {
	supplier, err := uc.suppliers.GetByCode(code)
	if err != nil {
		return nil, domain.Internal("buscar proveedor", err)
	}
	if supplier == nil {
		return nil, domain.NotFoundf("proveedor %s no existe", code)
	}
	return toSupplierResponse(supplier), nil
}

// List devuelve los proveedores activos, con caché de lectura.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	page.DefaultPage()
	key, err := uc.cache.BuildKey(ctx, cache.DomainSuppliers, "list", pageToken(page))
	if err != nil {
		return nil, domain.Internal("clave de cache", err)
	}

	var out []dto.SupplierResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		suppliers, err := uc.suppliers.List(page.Limit, page.Offset)
		if err != nil {
			return nil, domain.Internal("listar proveedores", err)
		}
		items := make([]dto.SupplierResponse, 0, len(suppliers))
		for _, s := range suppliers {
			items = append(items, *toSupplierResponse(s))
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update aplica cambios parciales al proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, actorID, id int64, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.suppliers.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar proveedor", err)
	}
	if supplier == nil {
		return nil, domain.NotFoundf("proveedor %d no existe", id)
	}

	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.RUC != nil {
		supplier.RUC = *in.RUC
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Contact != nil {
		supplier.Contact = *in.Contact
	}
	if in.SupplierType != nil {
		supplier.SupplierType = *in.SupplierType
	}
	if in.Products != nil {
		supplier.Products = *in.Products
	}
	if in.DeliveryDays != nil {
		supplier.DeliveryDays = *in.DeliveryDays
	}
	if in.Rating != nil {
		supplier.Rating = *in.Rating
	}
	if in.CreditLimit != nil {
		supplier.CreditLimit = *in.CreditLimit
	}
	if in.PaymentTerms != nil {
		supplier.PaymentTerms = *in.PaymentTerms
	}

	if err := uc.suppliers.Update(supplier); err != nil {
		return nil, domain.Internal("actualizar proveedor", err)
	}

	uc.invalidate(ctx)
	uc.auditor.record(actorID, "proveedores", "ACTUALIZAR_PROVEEDOR", "proveedor "+supplier.Code)
	return toSupplierResponse(supplier), nil
}

// Deactivate baja lógica del proveedor; los documentos que lo referencian
// se conservan.
func (uc *SupplierUseCase) Deactivate(ctx context.Context, actorID, id int64) error {
	if err := uc.suppliers.Deactivate(id); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFoundf("proveedor %d no existe", id)
		}
		return domain.Internal("desactivar proveedor", err)
	}
	uc.invalidate(ctx)
	uc.auditor.record(actorID, "proveedores", "DESACTIVAR_PROVEEDOR", "")
	return nil
}

func (uc *SupplierUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx, cache.DomainSuppliers); err != nil {
		uc.auditor.log.Warn().Err(err).Msg("cache: no se pudo invalidar proveedores")
	}
	if err := uc.cache.Invalidate(ctx, cache.DomainReports); err != nil {
		uc.auditor.log.Warn().Err(err).Msg("cache: no se pudo invalidar reportes")
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:           s.ID,
		Code:         s.Code,
		Name:         s.Name,
		RUC:          s.RUC,
		Address:      s.Address,
		Phone:        s.Phone,
		Email:        s.Email,
		Contact:      s.Contact,
		SupplierType: s.SupplierType,
		Products:     s.Products,
		DeliveryDays: s.DeliveryDays,
		Rating:       s.Rating,
		CreditLimit:  s.CreditLimit,
		Balance:      s.Balance,
		PaymentTerms: s.PaymentTerms,
		CreatedAt:    s.CreatedAt,
		Active:       s.Active,
	}
}
