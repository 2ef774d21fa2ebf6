package action_history

import (
	"github.com/gofiber/fiber/v2"
)

type ActionHistoryController struct {
	Service ActionHistoryService
}

func NewActionHistoryController(service ActionHistoryService) *ActionHistoryController {
	return &ActionHistoryController{Service: service}
}

func (c *ActionHistoryController) List(ctx *fiber.Ctx) error {
	items, err := c.Service.List(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(items)
}

func (c *ActionHistoryController) Clear(ctx *fiber.Ctx) error {
	if err := c.Service.Clear(ctx.Context()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
