package sync

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type SyncController struct {
	Service SyncService
}

func NewSyncController(service SyncService) *SyncController {
	return &SyncController{Service: service}
}

func (c *SyncController) CreateSetting(ctx *fiber.Ctx) error {
	var setting SyncSetting
	if err := ctx.BodyParser(&setting); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	if err := c.Service.CreateSetting(ctx.Context(), &setting); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(setting)
}

func (c *SyncController) GetSetting(ctx *fiber.Ctx) error {
	setting, err := c.Service.GetSetting(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sync setting not found"})
	}
	return ctx.JSON(setting)
}

func (c *SyncController) ListSettings(ctx *fiber.Ctx) error {
	settings, err := c.Service.ListSettings(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(settings)
}

func (c *SyncController) UpdateSetting(ctx *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := ctx.BodyParser(&updates); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	if err := c.Service.UpdateSetting(ctx.Context(), ctx.Params("id"), updates); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"updated": true})
}

func (c *SyncController) DeleteSetting(ctx *fiber.Ctx) error {
	if err := c.Service.DeleteSetting(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *SyncController) RunSync(ctx *fiber.Ctx) error {
	if err := c.Service.RunSync(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

func (c *SyncController) TestConnection(ctx *fiber.Ctx) error {
	if err := c.Service.TestConnection(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func (c *SyncController) GetTableSchema(ctx *fiber.Ctx) error {
	schema, err := c.Service.GetTableSchema(ctx.Context(), ctx.Params("id"), ctx.Params("table"))
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(schema)
}

func (c *SyncController) ListLogs(ctx *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(ctx.Query("limit", "20"), 10, 64)

	logs, err := c.Service.ListLogs(ctx.Context(), ctx.Params("id"), limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(logs)
}
