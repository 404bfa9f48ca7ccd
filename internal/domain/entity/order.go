package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem es una línea del snapshot del pedido: copia nombre, imagen y
// precio unitario del catálogo al momento de crear el pedido, de modo que
// cambios posteriores del producto no alteren pedidos ya colocados.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Image     string
	UnitPrice decimal.Decimal
	Quantity  int
}

// ShippingAddress dirección de envío del pedido. Todos los campos son requeridos.
type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// PaymentResult datos reportados por el proveedor al confirmar el pago.
// Se escribe una sola vez, junto con la transición a pagado.
type PaymentResult struct {
	CaptureID  string
	Status     string
	UpdateTime string
	PayerEmail string
}

// Order representa un pedido. Items, dirección, método de pago y totales son
// inmutables después de la creación; solo mutan los flags de pago y entrega.
type Order struct {
	ID            string
	UserID        string
	Items         []OrderItem
	Shipping      ShippingAddress
	PaymentMethod string

	// Totales calculados en el servidor al crear el pedido; nunca se recalculan.
	ItemsPrice    decimal.Decimal
	TaxPrice      decimal.Decimal
	ShippingPrice decimal.Decimal
	TotalPrice    decimal.Decimal

	IsPaid        bool
	PaidAt        *time.Time
	PaymentResult *PaymentResult

	IsDelivered bool
	DeliveredAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Datos del dueño para listados admin (join con users; solo lectura).
	UserName  string
	UserEmail string
}
