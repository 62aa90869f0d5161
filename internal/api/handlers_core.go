package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) ListChartKinds(c *fiber.Ctx) error {
	bridge, err := handler.newRegistry(handler.settings.ViewportWidth)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "chart renderers unavailable")
	}
	kind, _ := bridge.DefaultKind()
	return c.JSON(chartKindsResponse{Kinds: bridge.Kinds(), Default: kind})
}
