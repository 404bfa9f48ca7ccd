// Package pricing: valoración del pedido a partir de las líneas del carrito
// (servicio de dominio, sin efectos secundarios).
// itemsPrice = Σ(precio unitario autoritativo × cantidad), redondeado a 2 decimales.
// shippingPrice = 0 si itemsPrice supera el umbral de envío gratis; si no, tarifa plana.
// taxPrice = itemsPrice × tasa de impuesto, redondeado a 2 decimales.
// totalPrice = itemsPrice + taxPrice + shippingPrice.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
)

// Line es una línea a valorar: precio unitario del catálogo y cantidad.
// El precio llega siempre del lado servidor; nunca del carrito del cliente.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Rates reglas configurables de la tienda.
type Rates struct {
	TaxRate         decimal.Decimal // ej. 0.05
	FreeShippingMin decimal.Decimal // envío gratis si itemsPrice > este valor
	FlatShippingFee decimal.Decimal // tarifa plana si no aplica envío gratis
}

// Summary totales del pedido, fijados al momento de la creación.
type Summary struct {
	ItemsPrice    decimal.Decimal
	TaxPrice      decimal.Decimal
	ShippingPrice decimal.Decimal
	TotalPrice    decimal.Decimal
}

// DefaultRates reglas por defecto de la tienda: IVA 5%, envío gratis sobre 100, tarifa plana 10.
func DefaultRates() Rates {
	return Rates{
		TaxRate:         decimal.NewFromFloat(0.05),
		FreeShippingMin: decimal.NewFromInt(100),
		FlatShippingFee: decimal.NewFromInt(10),
	}
}

// ParseRates construye Rates desde strings decimales (config por env).
func ParseRates(taxRate, freeShippingMin, flatShippingFee string) (Rates, error) {
	tax, err := decimal.NewFromString(taxRate)
	if err != nil {
		return Rates{}, fmt.Errorf("pricing: tasa de impuesto inválida %q: %w", taxRate, err)
	}
	min, err := decimal.NewFromString(freeShippingMin)
	if err != nil {
		return Rates{}, fmt.Errorf("pricing: umbral de envío gratis inválido %q: %w", freeShippingMin, err)
	}
	fee, err := decimal.NewFromString(flatShippingFee)
	if err != nil {
		return Rates{}, fmt.Errorf("pricing: tarifa de envío inválida %q: %w", flatShippingFee, err)
	}
	if tax.IsNegative() || min.IsNegative() || fee.IsNegative() {
		return Rates{}, domain.ErrInvalidInput
	}
	return Rates{TaxRate: tax, FreeShippingMin: min, FlatShippingFee: fee}, nil
}

// Calculate valora las líneas con las reglas dadas. Función pura.
// Retorna ErrEmptyCart sin líneas y ErrInvalidInput con cantidades < 1 o precios negativos.
func Calculate(lines []Line, r Rates) (Summary, error) {
	if len(lines) == 0 {
		return Summary{}, domain.ErrEmptyCart
	}

	items := decimal.Zero
	for _, ln := range lines {
		if ln.Quantity < 1 || ln.UnitPrice.IsNegative() {
			return Summary{}, domain.ErrInvalidInput
		}
		items = items.Add(ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}
	items = items.Round(2)

	shipping := r.FlatShippingFee
	if items.GreaterThan(r.FreeShippingMin) {
		shipping = decimal.Zero
	}

	tax := items.Mul(r.TaxRate).Round(2)

	return Summary{
		ItemsPrice:    items,
		TaxPrice:      tax,
		ShippingPrice: shipping,
		TotalPrice:    items.Add(tax).Add(shipping),
	}, nil
}
