package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/order"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	OrderUC   *order.OrderUseCase
	ReceiptUC *order.ReceiptUseCase
	ProductUC *usecase.ProductUseCase
	UserUC    *usecase.UserUseCase

	JWTSecret      string
	RefreshTTL     time.Duration
	SecureCookies  bool // producción: SameSite=None + Secure en la cookie de refresh
	PayPalClientID string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Config pública (para el SDK de pagos del frontend)
	configHandler := NewConfigHandler(deps.PayPalClientID)
	api.Get("/config/paypal", configHandler.PayPal)

	// Auth (público + perfil protegido)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.RefreshTTL, deps.SecureCookies)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/profile", AuthMiddleware(deps.JWTSecret), authHandler.GetProfile)
	authGroup.Put("/profile", AuthMiddleware(deps.JWTSecret), authHandler.UpdateProfile)

	// Products: lecturas públicas, escrituras admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", AuthMiddleware(deps.JWTSecret), RequireAdmin(), productHandler.Create)
	products.Put("/:id", AuthMiddleware(deps.JWTSecret), RequireAdmin(), productHandler.Update)
	products.Delete("/:id", AuthMiddleware(deps.JWTSecret), RequireAdmin(), productHandler.Delete)
	products.Post("/:id/image", AuthMiddleware(deps.JWTSecret), RequireAdmin(), productHandler.UploadImage)

	// Orders (protegido; rutas admin marcadas)
	orders := api.Group("/orders", AuthMiddleware(deps.JWTSecret))
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/mine", orderHandler.ListMine)
	orders.Get("/", RequireAdmin(), orderHandler.ListAll)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/pay", orderHandler.ConfirmPayment)
	orders.Put("/:id/deliver", RequireAdmin(), orderHandler.ConfirmDelivery)
	orders.Get("/:id/receipt", orderHandler.DownloadReceipt)

	// Users (solo admin)
	users := api.Group("/users", AuthMiddleware(deps.JWTSecret), RequireAdmin())
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
