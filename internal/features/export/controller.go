package export

import (
	"fmt"

	"go-marketing/pkg/filter"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	Service ExportService
}

func NewExportController(service ExportService) *ExportController {
	return &ExportController{Service: service}
}

func (c *ExportController) ExportFilter(ctx *fiber.Ctx) error {
	var request struct {
		Name   string                `json:"name"`
		Filter filter.AdvancedFilter `json:"filter"`
	}
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	data, filename, err := c.Service.ExportFilter(ctx.Context(), &request.Filter, request.Name)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return sendWorkbook(ctx, data, filename)
}

func (c *ExportController) ExportSegment(ctx *fiber.Ctx) error {
	data, filename, err := c.Service.ExportSegment(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return sendWorkbook(ctx, data, filename)
}

func sendWorkbook(ctx *fiber.Ctx, data []byte, filename string) error {
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Send(data)
}
