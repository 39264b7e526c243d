package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

var testLogger = logger.New(logger.Config{Level: "error"})

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// memStore estado compartido de los fakes. El runner lo clona antes de cada
// transacción y lo restaura si el callback falla, simulando el ROLLBACK.
type memStore struct {
	products      map[int64]*entity.Product
	movements     []*entity.InventoryMovement
	nextID        int64
	failMovements bool
}

func newMemStore() *memStore {
	return &memStore{products: map[int64]*entity.Product{}, nextID: 1}
}

func (s *memStore) clone() *memStore {
	dup := &memStore{
		products:      make(map[int64]*entity.Product, len(s.products)),
		movements:     append([]*entity.InventoryMovement(nil), s.movements...),
		nextID:        s.nextID,
		failMovements: s.failMovements,
	}
	for id, p := range s.products {
		copied := *p
		dup.products[id] = &copied
	}
	return dup
}

type fakeProducts struct{ store *memStore }

func (f *fakeProducts) Create(p *entity.Product) error {
	for _, existing := range f.store.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	p.ID = f.store.nextID
	f.store.nextID++
	copied := *p
	f.store.products[p.ID] = &copied
	return nil
}

func (f *fakeProducts) GetByID(id int64) (*entity.Product, error) {
	return f.store.products[id], nil
}

func (f *fakeProducts) GetByCode(code string) (*entity.Product, error) {
	for _, p := range f.store.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) GetForUpdate(id int64) (*entity.Product, error) {
	return f.store.products[id], nil
}

func (f *fakeProducts) Update(p *entity.Product) error {
	copied := *p
	f.store.products[p.ID] = &copied
	return nil
}

func (f *fakeProducts) UpdateStock(id int64, stock decimal.Decimal) error {
	p, ok := f.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *p
	updated.StockActual = stock
	f.store.products[id] = &updated
	return nil
}

func (f *fakeProducts) List(int, int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.store.products))
	for _, p := range f.store.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) Deactivate(id int64) error {
	p, ok := f.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *p
	updated.Active = false
	f.store.products[id] = &updated
	return nil
}

type fakeMovements struct{ store *memStore }

func (f *fakeMovements) Create(m *entity.InventoryMovement) error {
	if f.store.failMovements {
		return errors.New("kardex no disponible")
	}
	m.ID = int64(len(f.store.movements) + 1)
	f.store.movements = append(f.store.movements, m)
	return nil
}

func (f *fakeMovements) List(int, int) ([]*entity.InventoryMovement, error) {
	return f.store.movements, nil
}

func (f *fakeMovements) ListByProduct(productID int64, _, _ int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range f.store.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovements) ListByMaterial(materialID int64, _, _ int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range f.store.movements {
		if m.MaterialID == materialID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeLogs struct{ logs []*entity.SystemLog }

func (f *fakeLogs) Append(l *entity.SystemLog) error { f.logs = append(f.logs, l); return nil }
func (f *fakeLogs) List(int, int) ([]*entity.SystemLog, error) {
	return f.logs, nil
}

type fakeTxRunner struct {
	store     *memStore
	rollbacks int
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(tx repository.Tx) error) error {
	snapshot := r.store.clone()
	err := fn(repository.Tx{
		Products:  &fakeProducts{store: r.store},
		Movements: &fakeMovements{store: r.store},
	})
	if err != nil {
		*r.store = *snapshot
		r.rollbacks++
	}
	return err
}

func newProductFixture() (*memStore, *fakeTxRunner, *fakeLogs, *ProductUseCase) {
	store := newMemStore()
	runner := &fakeTxRunner{store: store}
	logs := &fakeLogs{}
	uc := NewProductUseCase(runner, &fakeProducts{store: store}, nil, logs, testLogger)
	return store, runner, logs, uc
}

func createRequest(code, stock string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:         code,
		Name:         "Pan francés",
		Category:     "panes",
		UnitMeasure:  "unidad",
		SalePrice:    dec("0.50"),
		StockInitial: dec(stock),
	}
}

// El alta con stock inicial S deja exactamente un movimiento CREACION de
// 0 a S, y el listado devuelve el producto con ese stock.
func TestCreateProduct_RegistraMovimientoCreacion(t *testing.T) {
	store, _, logs, uc := newProductFixture()

	resp, err := uc.Create(context.Background(), 7, createRequest("", "25"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Code, "PROD-"))
	assert.True(t, resp.StockActual.Equal(dec("25")))
	assert.True(t, resp.Active)

	require.Len(t, store.movements, 1)
	movement := store.movements[0]
	assert.Equal(t, resp.ID, movement.ProductID)
	assert.Equal(t, entity.MovementCreacion, movement.Type)
	assert.True(t, movement.Quantity.Equal(dec("25")))
	assert.True(t, movement.StockBefore.IsZero())
	assert.True(t, movement.StockAfter.Equal(dec("25")))
	assert.Equal(t, int64(7), movement.UserID)

	listed, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].StockActual.Equal(dec("25")))

	require.Len(t, logs.logs, 1)
	assert.Equal(t, "CREAR_PRODUCTO", logs.logs[0].Action)
}

func TestCreateProduct_CodigoDuplicado(t *testing.T) {
	store, runner, _, uc := newProductFixture()

	_, err := uc.Create(context.Background(), 7, createRequest("PROD-20240101-AB12CD", "10"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), 7, createRequest("PROD-20240101-AB12CD", "5"))
	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, domain.KindDuplicate, opErr.Kind)

	assert.Len(t, store.products, 1)
	assert.Len(t, store.movements, 1)
	assert.Equal(t, 1, runner.rollbacks)
}

// Si el kardex no se puede escribir, el alta completa se revierte: el
// producto no queda creado.
func TestCreateProduct_FallaKardexRevierteAlta(t *testing.T) {
	store, runner, logs, uc := newProductFixture()
	store.failMovements = true

	_, err := uc.Create(context.Background(), 7, createRequest("", "25"))
	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, domain.KindInternal, opErr.Kind)

	assert.Empty(t, store.products)
	assert.Empty(t, store.movements)
	assert.Equal(t, 1, runner.rollbacks)
	assert.Empty(t, logs.logs)
}

func TestCreateProduct_StockInicialNegativo(t *testing.T) {
	store, _, _, uc := newProductFixture()

	_, err := uc.Create(context.Background(), 7, createRequest("", "-1"))
	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, domain.KindValidation, opErr.Kind)
	assert.Empty(t, store.products)
}

func TestProductGetByCode(t *testing.T) {
	_, _, _, uc := newProductFixture()

	created, err := uc.Create(context.Background(), 7, createRequest("PROD-20240101-AB12CD", "10"))
	require.NoError(t, err)

	found, err := uc.GetByCode("PROD-20240101-AB12CD")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Pan francés", found.Name)

	_, err = uc.GetByCode("PROD-20240101-ZZZZZZ")
	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, domain.KindNotFound, opErr.Kind)
}
