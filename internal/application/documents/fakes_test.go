package documents

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

var testLogger = logger.New(logger.Config{Level: "error"})

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// memStore almacén en memoria compartido por los fakes de repositorio.
type memStore struct {
	products  map[int64]*entity.Product
	materials map[int64]*entity.RawMaterial
	suppliers map[int64]*entity.Supplier
	customers map[int64]*entity.Customer

	purchases       []*entity.PurchaseOrder
	purchaseDetails []*entity.PurchaseOrderDetail
	sales           []*entity.Sale
	saleDetails     []*entity.SaleDetail
	orders          []*entity.ProductionOrder
	requirements    []*entity.MaterialRequirement
	movements       []*entity.InventoryMovement
	logs            []*entity.SystemLog
	sequences       map[string]int64

	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[int64]*entity.Product),
		materials: make(map[int64]*entity.RawMaterial),
		suppliers: make(map[int64]*entity.Supplier),
		customers: make(map[int64]*entity.Customer),
		sequences: make(map[string]int64),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// clone copia el estado para poder revertirlo. Las entidades nunca se mutan
// en sitio (los fakes reemplazan punteros), así que basta copiar mapas y
// slices.
func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.materials {
		c.materials[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	c.purchases = append([]*entity.PurchaseOrder(nil), s.purchases...)
	c.purchaseDetails = append([]*entity.PurchaseOrderDetail(nil), s.purchaseDetails...)
	c.sales = append([]*entity.Sale(nil), s.sales...)
	c.saleDetails = append([]*entity.SaleDetail(nil), s.saleDetails...)
	c.orders = append([]*entity.ProductionOrder(nil), s.orders...)
	c.requirements = append([]*entity.MaterialRequirement(nil), s.requirements...)
	c.movements = append([]*entity.InventoryMovement(nil), s.movements...)
	c.logs = append([]*entity.SystemLog(nil), s.logs...)
	c.nextID = s.nextID
	return c
}

func (s *memStore) tx() repository.Tx {
	return repository.Tx{
		Products:   &fakeProducts{s},
		Materials:  &fakeMaterials{s},
		Suppliers:  &fakeSuppliers{s},
		Customers:  &fakeCustomers{s},
		Purchases:  &fakePurchases{s},
		Sales:      &fakeSales{s},
		Production: &fakeProduction{s},
		Movements:  &fakeMovements{s},
		Sequences:  &fakeSequences{s},
		Logs:       &fakeLogs{s},
	}
}

func (s *memStore) addProduct(p entity.Product) *entity.Product {
	p.ID = s.id()
	p.Active = true
	s.products[p.ID] = &p
	return &p
}

func (s *memStore) addMaterial(m entity.RawMaterial) *entity.RawMaterial {
	m.ID = s.id()
	m.Active = true
	s.materials[m.ID] = &m
	return &m
}

func (s *memStore) addSupplier(sp entity.Supplier) *entity.Supplier {
	sp.ID = s.id()
	sp.Active = true
	s.suppliers[sp.ID] = &sp
	return &sp
}

func (s *memStore) addCustomer(c entity.Customer) *entity.Customer {
	c.ID = s.id()
	c.Active = true
	s.customers[c.ID] = &c
	return &c
}

// fakeTxRunner ejecuta el callback sobre el store y revierte el estado si
// falla, como haría un ROLLBACK real.
type fakeTxRunner struct {
	store     *memStore
	rollbacks int
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(tx repository.Tx) error) error {
	snapshot := r.store.clone()
	if err := fn(r.store.tx()); err != nil {
		*r.store = *snapshot
		r.rollbacks++
		return err
	}
	return nil
}

// ── fakes de repositorio ──

type fakeProducts struct{ s *memStore }

func (f *fakeProducts) Create(p *entity.Product) error {
	p.ID = f.s.id()
	f.s.products[p.ID] = p
	return nil
}

func (f *fakeProducts) GetByID(id int64) (*entity.Product, error) { return f.s.products[id], nil }

func (f *fakeProducts) GetByCode(code string) (*entity.Product, error) {
	for _, p := range f.s.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) GetForUpdate(id int64) (*entity.Product, error) { return f.s.products[id], nil }

func (f *fakeProducts) Update(p *entity.Product) error {
	f.s.products[p.ID] = p
	return nil
}

func (f *fakeProducts) UpdateStock(id int64, stock decimal.Decimal) error {
	p, ok := f.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *p
	updated.StockActual = stock
	f.s.products[id] = &updated
	return nil
}

func (f *fakeProducts) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProducts) Deactivate(id int64) error                         { return nil }

type fakeMaterials struct{ s *memStore }

func (f *fakeMaterials) Create(m *entity.RawMaterial) error {
	m.ID = f.s.id()
	f.s.materials[m.ID] = m
	return nil
}
func (f *fakeMaterials) GetByID(id int64) (*entity.RawMaterial, error) { return f.s.materials[id], nil }
func (f *fakeMaterials) GetByCode(string) (*entity.RawMaterial, error) { return nil, nil }
func (f *fakeMaterials) GetForUpdate(id int64) (*entity.RawMaterial, error) {
	return f.s.materials[id], nil
}
func (f *fakeMaterials) Update(m *entity.RawMaterial) error { return nil }
func (f *fakeMaterials) UpdateStock(id int64, stock decimal.Decimal) error {
	m, ok := f.s.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *m
	updated.StockActual = stock
	f.s.materials[id] = &updated
	return nil
}
func (f *fakeMaterials) List(int, int) ([]*entity.RawMaterial, error) { return nil, nil }
func (f *fakeMaterials) Deactivate(int64) error                       { return nil }

type fakeSuppliers struct{ s *memStore }

func (f *fakeSuppliers) Create(sp *entity.Supplier) error {
	sp.ID = f.s.id()
	f.s.suppliers[sp.ID] = sp
	return nil
}
func (f *fakeSuppliers) GetByID(id int64) (*entity.Supplier, error) { return f.s.suppliers[id], nil }
func (f *fakeSuppliers) GetByCode(string) (*entity.Supplier, error) { return nil, nil }
func (f *fakeSuppliers) Update(*entity.Supplier) error              { return nil }
func (f *fakeSuppliers) List(int, int) ([]*entity.Supplier, error)  { return nil, nil }
func (f *fakeSuppliers) Deactivate(int64) error                     { return nil }

type fakeCustomers struct{ s *memStore }

func (f *fakeCustomers) Create(c *entity.Customer) error {
	c.ID = f.s.id()
	f.s.customers[c.ID] = c
	return nil
}
func (f *fakeCustomers) GetByID(id int64) (*entity.Customer, error) { return f.s.customers[id], nil }
func (f *fakeCustomers) GetByCode(string) (*entity.Customer, error) { return nil, nil }
func (f *fakeCustomers) Update(*entity.Customer) error              { return nil }
func (f *fakeCustomers) List(int, int) ([]*entity.Customer, error)  { return nil, nil }
func (f *fakeCustomers) Deactivate(int64) error                     { return nil }

type fakePurchases struct{ s *memStore }

func (f *fakePurchases) CreateHeader(o *entity.PurchaseOrder) error {
	for _, existing := range f.s.purchases {
		if existing.Number == o.Number {
			return domain.ErrDuplicate
		}
	}
	o.ID = f.s.id()
	f.s.purchases = append(f.s.purchases, o)
	return nil
}

func (f *fakePurchases) CreateDetail(d *entity.PurchaseOrderDetail) error {
	d.ID = f.s.id()
	f.s.purchaseDetails = append(f.s.purchaseDetails, d)
	return nil
}

func (f *fakePurchases) GetByID(id int64) (*entity.PurchaseOrder, error) {
	for _, o := range f.s.purchases {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakePurchases) GetDetailsByOrderID(orderID int64) ([]*entity.PurchaseOrderDetail, error) {
	var out []*entity.PurchaseOrderDetail
	for _, d := range f.s.purchaseDetails {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakePurchases) List(int, int) ([]*entity.PurchaseOrder, error) {
	return f.s.purchases, nil
}

func (f *fakePurchases) UpdateStatus(id int64, status string) error {
	for i, o := range f.s.purchases {
		if o.ID == id {
			updated := *o
			updated.Status = status
			f.s.purchases[i] = &updated
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSales struct{ s *memStore }

func (f *fakeSales) CreateHeader(sale *entity.Sale) error {
	for _, existing := range f.s.sales {
		if existing.Number == sale.Number {
			return domain.ErrDuplicate
		}
	}
	sale.ID = f.s.id()
	f.s.sales = append(f.s.sales, sale)
	return nil
}

func (f *fakeSales) CreateDetail(d *entity.SaleDetail) error {
	d.ID = f.s.id()
	f.s.saleDetails = append(f.s.saleDetails, d)
	return nil
}

func (f *fakeSales) GetByID(id int64) (*entity.Sale, error) {
	for _, sale := range f.s.sales {
		if sale.ID == id {
			return sale, nil
		}
	}
	return nil, nil
}

func (f *fakeSales) GetDetailsBySaleID(saleID int64) ([]*entity.SaleDetail, error) {
	var out []*entity.SaleDetail
	for _, d := range f.s.saleDetails {
		if d.SaleID == saleID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSales) List(int, int) ([]*entity.Sale, error) { return f.s.sales, nil }

func (f *fakeSales) UpdateStatus(id int64, status string) error {
	for i, sale := range f.s.sales {
		if sale.ID == id {
			updated := *sale
			updated.Status = status
			f.s.sales[i] = &updated
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeProduction struct{ s *memStore }

func (f *fakeProduction) CreateHeader(o *entity.ProductionOrder) error {
	for _, existing := range f.s.orders {
		if existing.Number == o.Number {
			return domain.ErrDuplicate
		}
	}
	o.ID = f.s.id()
	f.s.orders = append(f.s.orders, o)
	return nil
}

func (f *fakeProduction) CreateRequirement(r *entity.MaterialRequirement) error {
	r.ID = f.s.id()
	f.s.requirements = append(f.s.requirements, r)
	return nil
}

func (f *fakeProduction) GetByID(id int64) (*entity.ProductionOrder, error) {
	for _, o := range f.s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeProduction) GetRequirementsByOrderID(orderID int64) ([]*entity.MaterialRequirement, error) {
	var out []*entity.MaterialRequirement
	for _, r := range f.s.requirements {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProduction) List(int, int) ([]*entity.ProductionOrder, error) { return f.s.orders, nil }

func (f *fakeProduction) UpdateStatus(id int64, status string) error {
	for i, o := range f.s.orders {
		if o.ID == id {
			updated := *o
			updated.Status = status
			f.s.orders[i] = &updated
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeMovements struct{ s *memStore }

func (f *fakeMovements) Create(m *entity.InventoryMovement) error {
	m.ID = f.s.id()
	f.s.movements = append(f.s.movements, m)
	return nil
}

func (f *fakeMovements) ListByProduct(productID int64, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range f.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovements) ListByMaterial(materialID int64, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range f.s.movements {
		if m.MaterialID == materialID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovements) List(int, int) ([]*entity.InventoryMovement, error) {
	return f.s.movements, nil
}

type fakeSequences struct{ s *memStore }

func (f *fakeSequences) Next(docType string, year int) (int64, error) {
	key := fmt.Sprintf("%s-%d", docType, year)
	f.s.sequences[key]++
	return f.s.sequences[key], nil
}

type fakeLogs struct{ s *memStore }

func (f *fakeLogs) Append(l *entity.SystemLog) error {
	l.ID = f.s.id()
	f.s.logs = append(f.s.logs, l)
	return nil
}

func (f *fakeLogs) List(int, int) ([]*entity.SystemLog, error) { return f.s.logs, nil }
