package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrSessionExpired     = errors.New("sesión expirada")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Pedidos y pagos.
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrAlreadyPaid        = errors.New("el pedido ya está pagado")
	ErrPaymentNotVerified = errors.New("el pago no pudo verificarse con el proveedor")
	ErrAmountMismatch     = errors.New("el monto capturado no coincide con el total del pedido")
	ErrDuplicateCapture   = errors.New("la captura ya fue aplicada a otro pedido")
)

// ValidationError reporta de una sola vez todos los campos violados de una
// entrada. errors.Is(err, ErrInvalidInput) responde true para que el borde
// HTTP lo traduzca con el mismo código que cualquier entrada inválida.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "entrada inválida: " + strings.Join(e.Fields, ", ")
}

// Is hace que la validación estructurada matchee el sentinela ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError construye el error si hay campos violados; nil si no.
func NewValidationError(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
