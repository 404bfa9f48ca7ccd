package repository

import (
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
// El pedido es un snapshot inmutable: después de Create solo mutan los flags
// de pago y entrega, y siempre vía las operaciones condicionales de este puerto.
type OrderRepository interface {
	// Create persiste cabecera y líneas del pedido.
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	ListByUser(userID string) ([]*entity.Order, error)
	ListAll() ([]*entity.Order, error)

	// MarkPaid fija is_paid/paid_at/payment_result de forma condicional:
	// solo transiciona si el pedido sigue impago. Dos confirmaciones
	// concurrentes no pueden transicionar ambas; la perdedora recibe
	// domain.ErrAlreadyPaid. Una captura ya aplicada a otro pedido produce
	// domain.ErrDuplicateCapture (índice único en el storage).
	MarkPaid(id string, paidAt time.Time, result entity.PaymentResult) error

	// MarkDelivered fija is_delivered/delivered_at. ErrAlreadyDelivered no
	// existe: re-marcar entrega es un no-op condicional igual que el pago.
	MarkDelivered(id string, deliveredAt time.Time) error

	// ExistsCaptureID indica si una captura del proveedor ya fue registrada
	// contra algún pedido (defensa contra replay de capturas).
	ExistsCaptureID(captureID string) (bool, error)
}
