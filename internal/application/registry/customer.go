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

// CustomerUseCase casos de uso del registro de clientes.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	cache     *cache.Cache
	auditor   auditor
}

// NewCustomerUseCase construye el caso de uso de clientes.
func NewCustomerUseCase(customers repository.CustomerRepository, c *cache.Cache, logs repository.SystemLogRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{
		customers: customers,
		cache:     c,
		auditor:   auditor{logs: logs, log: log},
	}
}

// Create da de alta un cliente. Categoría por defecto REGULAR.
func (uc *CustomerUseCase) Create(ctx context.Context, actorID int64, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	code := in.Code
	if code == "" {
		code = GenerateCode(PrefixCustomer)
	}
	category := in.Category
	if category == "" {
		category = "REGULAR"
	}

	customer := &entity.Customer{
		Code:           code,
		Name:           in.Name,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          in.Email,
		Contact:        in.Contact,
		CustomerType:   in.CustomerType,
		CreditLimit:    in.CreditLimit,
		CreditDays:     in.CreditDays,
		Category:       category,
		CreatedBy:      actorID,
		Active:         true,
	}
	if err := uc.customers.Create(customer); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.Duplicate("el código de cliente ya existe")
		}
		return nil, domain.Internal("crear cliente", err)
	}

	uc.invalidate(ctx)
	uc.auditor.record(actorID, "clientes", "CREAR_CLIENTE", "cliente "+customer.Code)
	return toCustomerResponse(customer), nil
}

// Get devuelve un cliente por ID.
func (uc *CustomerUseCase) Get(id int64) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar cliente", err)
	}
	if customer == nil {
		return nil, domain.NotFoundf("cliente %d no existe", id)
	}
	return toCustomerResponse(customer), nil
}

// GetByCode devuelve un cliente por su código de catálogo.
func (uc *CustomerUseCase) GetByCode(code string) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByCode(code)
	if err != nil {
		return nil, domain.Internal("buscar cliente", err)
	}
	if customer == nil {
		return nil, domain.NotFoundf("cliente %s no existe", code)
	}
	return toCustomerResponse(customer), nil
}

// List devuelve los clientes activos, con caché de lectura.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	key, err := uc.cache.BuildKey(ctx, cache.DomainCustomers, "list", pageToken(page))
	if err != nil {
		return nil, domain.Internal("clave de cache", err)
	}

	var out []dto.CustomerResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		customers, err := uc.customers.List(page.Limit, page.Offset)
		if err != nil {
			return nil, domain.Internal("listar clientes", err)
		}
		items := make([]dto.CustomerResponse, 0, len(customers))
		for _, c := range customers {
			items = append(items, *toCustomerResponse(c))
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update aplica cambios parciales al cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, actorID, id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar cliente", err)
	}
	if customer == nil {
		return nil, domain.NotFoundf("cliente %d no existe", id)
	}

	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.DocumentType != nil {
		customer.DocumentType = *in.DocumentType
	}
	if in.DocumentNumber != nil {
		customer.DocumentNumber = *in.DocumentNumber
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Contact != nil {
		customer.Contact = *in.Contact
	}
	if in.CustomerType != nil {
		customer.CustomerType = *in.CustomerType
	}
	if in.CreditLimit != nil {
		customer.CreditLimit = *in.CreditLimit
	}
	if in.CreditDays != nil {
		customer.CreditDays = *in.CreditDays
	}
	if in.Category != nil {
		customer.Category = *in.Category
	}

	if err := uc.customers.Update(customer); err != nil {
		return nil, domain.Internal("actualizar cliente", err)
	}

	uc.invalidate(ctx)
	uc.auditor.record(actorID, "clientes", "ACTUALIZAR_CLIENTE", "cliente "+customer.Code)
	return toCustomerResponse(customer), nil
}

// Deactivate baja lógica del cliente; sus ventas históricas se conservan.
func (uc *CustomerUseCase) Deactivate(ctx context.Context, actorID, id int64) error {
	if err := uc.customers.Deactivate(id); err != nil {
		if err == domain.ErrNotFound {
			return domain.NotFoundf("cliente %d no existe", id)
		}
		return domain.Internal("desactivar cliente", err)
	}
	uc.invalidate(ctx)
	uc.auditor.record(actorID, "clientes", "DESACTIVAR_CLIENTE", "")
	return nil
}

func (uc *CustomerUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx, cache.DomainCustomers); err != nil {
		uc.auditor.log.Warn().Err(err).Msg("cache: no se pudo invalidar clientes")
	}
	if err := uc.cache.Invalidate(ctx, cache.DomainReports); err != nil {
		uc.auditor.log.Warn().Err(err).Msg("cache: no se pudo invalidar reportes")
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:             c.ID,
		Code:           c.Code,
		Name:           c.Name,
		DocumentType:   c.DocumentType,
		DocumentNumber: c.DocumentNumber,
		Address:        c.Address,
		Phone:          c.Phone,
		Email:          c.Email,
		Contact:        c.Contact,
		CustomerType:   c.CustomerType,
		CreditLimit:    c.CreditLimit,
		Balance:        c.Balance,
		CreditDays:     c.CreditDays,
		Category:       c.Category,
		CreatedAt:      c.CreatedAt,
		Active:         c.Active,
	}
}
