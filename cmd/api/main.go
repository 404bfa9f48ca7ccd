package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	apporder "github.com/jhoicas/Tienda-api/internal/application/order"
	"github.com/jhoicas/Tienda-api/internal/application/payment"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/pricing"
	infracloudinary "github.com/jhoicas/Tienda-api/internal/infrastructure/cloudinary"
	infrapaypal "github.com/jhoicas/Tienda-api/internal/infrastructure/paypal"
	infrapdf "github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rates, err := pricing.ParseRates(cfg.Pricing.TaxRate, cfg.Pricing.FreeShippingMin, cfg.Pricing.FlatShippingFee)
	if err != nil {
		log.Fatal().Err(err).Msg("reglas de precios inválidas")
	}

	accessTTL := time.Duration(cfg.JWT.AccessExpMinutes) * time.Minute
	refreshTTL := time.Duration(cfg.JWT.RefreshExpDays) * 24 * time.Hour
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		Issuer:     cfg.JWT.Issuer,
	})

	paypalClient := infrapaypal.NewClient(cfg.PayPal)
	verifier := payment.NewVerifier(paypalClient, orderRepo, cfg.PayPal.Currency)
	orderUC := apporder.NewOrderUseCase(txRunner, orderRepo, productRepo, verifier, rates)

	pdfGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := apporder.NewReceiptUseCase(orderRepo, pdfGenerator)

	uploader, err := infracloudinary.NewUploader(cfg.Cloudinary)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar Cloudinary")
	}
	productUC := usecase.NewProductUseCase(productRepo, uploader)
	userUC := usecase.NewUserUseCase(userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OrderUC:        orderUC,
		ReceiptUC:      receiptUC,
		ProductUC:      productUC,
		UserUC:         userUC,
		JWTSecret:      cfg.JWT.Secret,
		RefreshTTL:     refreshTTL,
		SecureCookies:  cfg.App.Env == "production",
		PayPalClientID: cfg.PayPal.ClientID,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
