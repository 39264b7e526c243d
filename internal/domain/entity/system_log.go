package entity

import "time"

// SystemLog entrada de bitácora. Las escrituras de documentos se registran
// dentro de la misma transacción; las de registros maestros son best-effort
// después del commit.
type SystemLog struct {
	ID        int64
	UserID    int64
	UserName  string
	Action    string // p.ej. CREAR_PRODUCTO, CREAR_VENTA
	Module    string // p.ej. productos, ventas
	Details   string
	IPAddress string
	CreatedAt time.Time
}
