package repository

// SequenceRepository asigna correlativos de documentos por tipo y año.
// Next debe ser atómico: dos transacciones concurrentes nunca reciben el
// mismo valor para el mismo (tipo, año).
type SequenceRepository interface {
	Next(docType string, year int) (int64, error)
}
