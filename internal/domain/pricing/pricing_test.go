package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Carrito [60 × 2]: itemsPrice=120 supera el umbral de 100 → envío gratis.
// tax = 120 × 0.05 = 6.00; total = 126.00.
func TestCalculate_EnvioGratisSobreUmbral(t *testing.T) {
	sum, err := pricing.Calculate([]pricing.Line{
		{UnitPrice: d("60"), Quantity: 2},
	}, pricing.DefaultRates())
	require.NoError(t, err)

	assert.True(t, sum.ItemsPrice.Equal(d("120")), "itemsPrice: %s", sum.ItemsPrice)
	assert.True(t, sum.ShippingPrice.Equal(decimal.Zero), "shippingPrice: %s", sum.ShippingPrice)
	assert.True(t, sum.TaxPrice.Equal(d("6.00")), "taxPrice: %s", sum.TaxPrice)
	assert.True(t, sum.TotalPrice.Equal(d("126.00")), "totalPrice: %s", sum.TotalPrice)
}

// Carrito [20 × 1]: bajo el umbral → envío plano 10. tax=1.00; total=31.00.
func TestCalculate_EnvioPlanoBajoUmbral(t *testing.T) {
	sum, err := pricing.Calculate([]pricing.Line{
		{UnitPrice: d("20"), Quantity: 1},
	}, pricing.DefaultRates())
	require.NoError(t, err)

	assert.True(t, sum.ItemsPrice.Equal(d("20")))
	assert.True(t, sum.ShippingPrice.Equal(d("10")))
	assert.True(t, sum.TaxPrice.Equal(d("1.00")))
	assert.True(t, sum.TotalPrice.Equal(d("31.00")))
}

// itemsPrice exactamente en el umbral no aplica envío gratis (se exige estrictamente mayor).
func TestCalculate_UmbralExactoPagaEnvio(t *testing.T) {
	sum, err := pricing.Calculate([]pricing.Line{
		{UnitPrice: d("100"), Quantity: 1},
	}, pricing.DefaultRates())
	require.NoError(t, err)

	assert.True(t, sum.ShippingPrice.Equal(d("10")))
	assert.True(t, sum.TotalPrice.Equal(d("115.00")))
}

// El total siempre cierra: total = items + tax + shipping, con varias líneas
// y precios con centavos que obligan al redondeo.
func TestCalculate_TotalCierra(t *testing.T) {
	lines := []pricing.Line{
		{UnitPrice: d("19.99"), Quantity: 3},
		{UnitPrice: d("5.55"), Quantity: 1},
		{UnitPrice: d("0.01"), Quantity: 7},
	}
	sum, err := pricing.Calculate(lines, pricing.DefaultRates())
	require.NoError(t, err)

	expectedItems := d("19.99").Mul(d("3")).Add(d("5.55")).Add(d("0.07")).Round(2)
	assert.True(t, sum.ItemsPrice.Equal(expectedItems))
	assert.True(t, sum.TotalPrice.Equal(sum.ItemsPrice.Add(sum.TaxPrice).Add(sum.ShippingPrice)))
}

// Carrito vacío → ErrEmptyCart.
func TestCalculate_CarritoVacio(t *testing.T) {
	_, err := pricing.Calculate(nil, pricing.DefaultRates())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

// Cantidad cero o precio negativo → ErrInvalidInput.
func TestCalculate_LineasInvalidas(t *testing.T) {
	_, err := pricing.Calculate([]pricing.Line{{UnitPrice: d("10"), Quantity: 0}}, pricing.DefaultRates())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = pricing.Calculate([]pricing.Line{{UnitPrice: d("-1"), Quantity: 1}}, pricing.DefaultRates())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ParseRates: strings de config válidos e inválidos.
func TestParseRates(t *testing.T) {
	r, err := pricing.ParseRates("0.05", "100", "10")
	require.NoError(t, err)
	assert.True(t, r.TaxRate.Equal(d("0.05")))

	_, err = pricing.ParseRates("cinco", "100", "10")
	assert.Error(t, err)

	_, err = pricing.ParseRates("-0.05", "100", "10")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
