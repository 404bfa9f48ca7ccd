// Package payment verifica capturas del proveedor de pagos contra el snapshot
// del pedido antes de permitir la transición a pagado.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// StatusCompleted estado que debe reportar el proveedor para aceptar la captura.
const StatusCompleted = "COMPLETED"

// CaptureDetails datos de la captura reportados por el proveedor (out-of-band).
type CaptureDetails struct {
	CaptureID  string
	Amount     decimal.Decimal
	Currency   string
	Status     string
	PayerEmail string
	UpdateTime string
}

// Gateway puerto hacia el proveedor de pagos. El adaptador consulta la captura
// directamente al proveedor; nunca se usan los campos que reporte el cliente.
type Gateway interface {
	GetCaptureDetails(ctx context.Context, captureID string) (*CaptureDetails, error)
}

// CaptureIndex subset del repositorio de pedidos que el verificador necesita:
// saber si una captura ya fue aplicada a algún pedido (anti-replay).
type CaptureIndex interface {
	ExistsCaptureID(captureID string) (bool, error)
}

// Verifier cruza la captura contra el pedido:
// (a) existe en el proveedor y está COMPLETED,
// (b) el monto capturado es exactamente el total del pedido (comparación decimal, sin tolerancia),
// (c) la captura no fue usada en otro pedido.
// Los fallos son recuperables: el pedido queda impago y el cliente puede reintentar.
type Verifier struct {
	gateway  Gateway
	captures CaptureIndex
	currency string // moneda esperada (config); vacío = no se exige
}

// NewVerifier construye el verificador.
func NewVerifier(gateway Gateway, captures CaptureIndex, currency string) *Verifier {
	return &Verifier{gateway: gateway, captures: captures, currency: currency}
}

// Verify valida la captura contra el pedido y devuelve los datos del proveedor.
func (v *Verifier) Verify(ctx context.Context, order *entity.Order, captureID string) (*CaptureDetails, error) {
	if captureID == "" {
		return nil, domain.NewValidationError([]string{"capture_id"})
	}

	details, err := v.gateway.GetCaptureDetails(ctx, captureID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("captura %s inexistente en el proveedor: %w", captureID, domain.ErrPaymentNotVerified)
		}
		// Fallo de red o del proveedor: no fatal, el cliente puede reintentar.
		return nil, fmt.Errorf("consultar captura %s: %v: %w", captureID, err, domain.ErrPaymentNotVerified)
	}

	if details.Status != StatusCompleted {
		return nil, fmt.Errorf("captura %s en estado %s: %w", captureID, details.Status, domain.ErrPaymentNotVerified)
	}
	if v.currency != "" && details.Currency != v.currency {
		return nil, fmt.Errorf("captura %s en moneda %s (se espera %s): %w", captureID, details.Currency, v.currency, domain.ErrPaymentNotVerified)
	}
	if !details.Amount.Equal(order.TotalPrice) {
		return nil, fmt.Errorf("capturado %s vs total %s: %w", details.Amount, order.TotalPrice, domain.ErrAmountMismatch)
	}

	used, err := v.captures.ExistsCaptureID(captureID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, domain.ErrDuplicateCapture
	}

	return details, nil
}
