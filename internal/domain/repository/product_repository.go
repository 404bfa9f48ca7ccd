package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDs resuelve varios productos de una vez (valoración del carrito).
	// Devuelve solo los encontrados; el caller decide si faltar alguno es error.
	GetByIDs(ids []string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
