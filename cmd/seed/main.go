// seed puebla la base con usuarios demo (admin y cliente) y un catálogo de
// ejemplo. Los usuarios son idempotentes por email; los productos se insertan
// siempre (IDs nuevos en cada corrida).
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	users := []struct {
		name, email, password, role string
	}{
		{"Admin", "admin@tienda.local", "admin12345", entity.RoleAdmin},
		{"Juan Pérez", "juan@tienda.local", "cliente12345", entity.RoleUser},
	}
	for _, u := range users {
		existing, err := userRepo.GetByEmail(u.email)
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("consultar usuario")
		}
		if existing != nil {
			log.Info().Str("email", u.email).Msg("usuario ya existe, saltando")
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear password")
		}
		now := time.Now().UTC()
		user := &entity.User{
			ID:           uuid.NewString(),
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Role:         u.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(user); err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("crear usuario")
		}
		log.Info().Str("email", u.email).Str("role", u.role).Msg("usuario creado")
	}

	products := []struct {
		name, description, brand, category, price string
		stock                                     int
	}{
		{"Auriculares Bluetooth", "Auriculares inalámbricos con cancelación de ruido", "AirSound", "Electrónica", "89.99", 25},
		{"Teclado mecánico", "Teclado mecánico retroiluminado, switches rojos", "KeyPro", "Electrónica", "59.50", 40},
		{"Cafetera de filtro", "Cafetera de goteo de 12 tazas con temporizador", "HomeBrew", "Hogar", "34.90", 15},
		{"Mochila urbana", "Mochila resistente al agua con puerto USB", "Trek", "Accesorios", "45.00", 30},
		{"Monitor 27\"", "Monitor IPS 27 pulgadas 144Hz", "ViewMax", "Electrónica", "229.99", 10},
		{"Lámpara de escritorio", "Lámpara LED regulable con brazo articulado", "Lumen", "Hogar", "19.99", 50},
	}
	for _, p := range products {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			log.Fatal().Err(err).Str("product", p.name).Msg("precio inválido")
		}
		now := time.Now().UTC()
		product := &entity.Product{
			ID:           uuid.NewString(),
			Name:         p.name,
			Description:  p.description,
			Brand:        p.brand,
			Category:     p.category,
			Price:        price,
			CountInStock: p.stock,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := productRepo.Create(product); err != nil {
			log.Fatal().Err(err).Str("product", p.name).Msg("crear producto")
		}
		log.Info().Str("product", p.name).Str("price", p.price).Msg("producto creado")
	}

	log.Info().Msg("seed completado")
}
