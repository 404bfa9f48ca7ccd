package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineRequest línea del carrito enviada por el cliente.
// El precio NO se acepta del cliente: el servidor lo re-resuelve del catálogo.
type CartLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// ShippingRequest dirección de envío; todos los campos requeridos no vacíos.
type ShippingRequest struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// CreateOrderRequest entrada para colocar un pedido.
type CreateOrderRequest struct {
	Items         []CartLineRequest `json:"items" validate:"required,min=1,dive"`
	Shipping      ShippingRequest   `json:"shipping" validate:"required"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
}

// ConfirmPaymentRequest entrada para confirmar el pago de un pedido.
// Solo se usa el capture id: estado, monto y payer se consultan al proveedor
// out-of-band, nunca se confía en lo que reporte el cliente.
type ConfirmPaymentRequest struct {
	CaptureID string `json:"capture_id" validate:"required"`
}

// OrderItemResponse línea del snapshot del pedido.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// ShippingResponse dirección de envío del pedido.
type ShippingResponse struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentResultResponse resultado del pago reportado por el proveedor.
type PaymentResultResponse struct {
	CaptureID  string `json:"capture_id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	PayerEmail string `json:"payer_email"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	UserName      string              `json:"user_name,omitempty"`
	UserEmail     string              `json:"user_email,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	Shipping      ShippingResponse    `json:"shipping"`
	PaymentMethod string              `json:"payment_method"`

	ItemsPrice    decimal.Decimal `json:"items_price"`
	TaxPrice      decimal.Decimal `json:"tax_price"`
	ShippingPrice decimal.Decimal `json:"shipping_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`

	IsPaid        bool                   `json:"is_paid"`
	PaidAt        *time.Time             `json:"paid_at,omitempty"`
	PaymentResult *PaymentResultResponse `json:"payment_result,omitempty"`

	IsDelivered bool       `json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderListResponse listado de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
}
