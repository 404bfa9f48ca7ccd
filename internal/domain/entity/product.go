package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Price es el precio autoritativo: los pedidos siempre se valoran con este
// valor, nunca con el precio que envíe el cliente.
type Product struct {
	ID           string
	Name         string
	Description  string
	Image        string // URL pública (host de imágenes)
	Brand        string
	Category     string
	Price        decimal.Decimal
	CountInStock int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
