package domain

import "errors"

// Kind clasifica un error de dominio para que la capa HTTP pueda mapearlo
// a un código de estado sin inspeccionar el mensaje.
type Kind string

const (
	KindValidation          Kind = "VALIDATION"
	KindNotFound            Kind = "NOT_FOUND"
	KindConflict            Kind = "CONFLICT"
	KindInsufficientStock   Kind = "INSUFFICIENT_STOCK"
	KindInsufficientBalance Kind = "INSUFFICIENT_BALANCE"
	KindStateTransition     Kind = "STATE_TRANSITION"
	KindConcurrency         Kind = "CONCURRENCY"
	KindInternal            Kind = "INTERNAL"
)

// Error es un error de dominio estructurado: tipo + mensaje legible.
// Nunca transporta internals (stack traces, texto crudo de la DB).
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Errores de dominio comunes (sin dependencias externas).
var (
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "recurso no encontrado"}
	ErrConcurrency         = &Error{Kind: KindConcurrency, Message: "conflicto de concurrencia, reintente la operación"}
	ErrInsufficientStock   = &Error{Kind: KindInsufficientStock, Message: "stock insuficiente"}
	ErrInsufficientBalance = &Error{Kind: KindInsufficientBalance, Message: "saldo insuficiente"}

	ErrEmptyPurchase = &Error{Kind: KindValidation, Message: "la compra debe tener al menos un producto"}
	ErrEmptySale     = &Error{Kind: KindValidation, Message: "la venta debe tener al menos un producto"}
	ErrMissingBranch = &Error{Kind: KindValidation, Message: "debe especificar la sucursal"}
	ErrNoStockRecord = &Error{Kind: KindNotFound, Message: "no existe stock para el producto en la sucursal"}

	ErrCardExpired      = &Error{Kind: KindStateTransition, Message: "la tarjeta está expirada"}
	ErrInvalidCardState = &Error{Kind: KindStateTransition, Message: "no se puede operar esta tarjeta en su estado actual"}
)

// Validation construye un error de validación con mensaje propio.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// NotFoundf construye un error de recurso ausente con mensaje propio.
func NotFoundf(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Conflict construye un error de duplicidad con mensaje propio.
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// InsufficientStock construye el error de sobreventa con detalle del producto.
func InsufficientStock(msg string) *Error {
	return &Error{Kind: KindInsufficientStock, Message: msg}
}

// KindOf devuelve el Kind de un error; KindInternal si no es un error de dominio.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// AsError devuelve el *Error de dominio subyacente, o un envoltorio KindInternal
// con mensaje genérico (los internals no cruzan el borde de la operación).
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Kind: KindInternal, Message: "error interno"}
}
