package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pansoft/panaderia-mrp/internal/application/documents"
	"github.com/pansoft/panaderia-mrp/internal/application/inventory"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
)

// Ensure TxRunner implements the application-side ports.
var _ documents.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con todos los repos atados a la tx
// y hace Commit o Rollback según el resultado.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := repository.Tx{
		Products:   NewProductRepository(tx),
		Materials:  NewRawMaterialRepository(tx),
		Suppliers:  NewSupplierRepository(tx),
		Customers:  NewCustomerRepository(tx),
		Purchases:  NewPurchaseOrderRepository(tx),
		Sales:      NewSaleRepository(tx),
		Production: NewProductionOrderRepository(tx),
		Movements:  NewInventoryMovementRepository(tx),
		Sequences:  NewSequenceRepository(tx),
		Logs:       NewSystemLogRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
