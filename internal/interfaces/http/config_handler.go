package http

import "github.com/gofiber/fiber/v2"

// ConfigHandler expone configuración pública para el frontend.
type ConfigHandler struct {
	paypalClientID string
}

// NewConfigHandler construye el handler de configuración pública.
func NewConfigHandler(paypalClientID string) *ConfigHandler {
	return &ConfigHandler{paypalClientID: paypalClientID}
}

// PayPal godoc
// @Summary      Client ID público de PayPal para el SDK del frontend
// @Tags         config
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/config/paypal [get]
func (h *ConfigHandler) PayPal(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"clientId": h.paypalClientID})
}
