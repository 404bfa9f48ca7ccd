package order

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/application/payment"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción con el repo de
// pedidos atado a la tx (cabecera + líneas se persisten atómicamente).
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// PaymentVerifier cruza una captura del proveedor contra el pedido.
// Implementado por payment.Verifier.
type PaymentVerifier interface {
	Verify(ctx context.Context, order *entity.Order, captureID string) (*payment.CaptureDetails, error)
}

// ReceiptPDFGenerator genera el recibo PDF de un pedido.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order) ([]byte, error)
}
