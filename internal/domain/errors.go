package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// ErrorKind clasifica un fallo de operación de negocio.
type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDACION"
	KindDuplicate    ErrorKind = "DUPLICADO"
	KindNotFound     ErrorKind = "NO_ENCONTRADO"
	KindUnauthorized ErrorKind = "NO_AUTORIZADO"
	KindInternal     ErrorKind = "INTERNO"
)

// OpError resultado estructurado de una operación: clase de error + mensaje
// apto para mostrar al usuario. Todas las operaciones de negocio fallan con
// un *OpError o con un sentinel de arriba.
type OpError struct {
	Kind    ErrorKind
	Message string
	Err     error // causa interna, no se expone al cliente
}

func (e *OpError) Error() string { return e.Message }

func (e *OpError) Unwrap() error { return e.Err }

// Validation construye un fallo de validación con mensaje visible.
func Validation(msg string) *OpError {
	return &OpError{Kind: KindValidation, Message: msg}
}

// Duplicate construye un fallo por recurso duplicado.
func Duplicate(msg string) *OpError {
	return &OpError{Kind: KindDuplicate, Message: msg, Err: ErrDuplicate}
}

// NotFoundf construye un fallo por recurso inexistente.
func NotFoundf(format string, args ...any) *OpError {
	return &OpError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...), Err: ErrNotFound}
}

// Unauthorized construye un fallo de credenciales o permisos.
func Unauthorized(msg string) *OpError {
	return &OpError{Kind: KindUnauthorized, Message: msg, Err: ErrUnauthorized}
}

// Internal envuelve una causa interna; op nombra la operación que falló y el
// mensaje visible queda genérico.
func Internal(op string, err error) *OpError {
	return &OpError{Kind: KindInternal, Message: "error interno", Err: fmt.Errorf("%s: %w", op, err)}
}

// AsOpError extrae el *OpError de una cadena de errores, si existe.
func AsOpError(err error) (*OpError, bool) {
	var op *OpError
	if errors.As(err, &op) {
		return op, true
	}
	return nil, false
}
