package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Hash legado de "Admin2024!"; ver application/auth.
const adminSeedHash = "cdfb7d2852fc553ce2e4c4af161f9230c1084f2629bcca3a2a103d10c3aa58f7"

// ApplySchema crea las tablas si no existen y siembra el usuario admin
// inicial. Es idempotente; se ejecuta en cada arranque.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	seed := `
		INSERT INTO usuarios (username, nombre, rol, password, permisos, email)
		VALUES ('admin', 'Administrador Principal', 'admin', $1, 'all', 'admin@panaderia.com')
		ON CONFLICT (username) DO NOTHING`
	if _, err := pool.Exec(ctx, seed, adminSeedHash); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
