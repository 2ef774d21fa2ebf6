package template

import (
	"go-marketing/pkg/filter"

	"github.com/gofiber/fiber/v2"
)

type TemplateController struct {
	Service TemplateService
}

func NewTemplateController(service TemplateService) *TemplateController {
	return &TemplateController{Service: service}
}

func (c *TemplateController) CreateTemplate(ctx *fiber.Ctx) error {
	var template MessageTemplate
	if err := ctx.BodyParser(&template); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	userID, _ := ctx.Locals("userID").(string)
	template.CreatedBy = userID

	if err := c.Service.CreateTemplate(ctx.Context(), &template); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(template)
}

func (c *TemplateController) GetTemplate(ctx *fiber.Ctx) error {
	template, err := c.Service.GetTemplate(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	return ctx.JSON(template)
}

func (c *TemplateController) ListTemplates(ctx *fiber.Ctx) error {
	templates, err := c.Service.ListTemplates(ctx.Context(), Channel(ctx.Query("channel")))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(templates)
}

func (c *TemplateController) UpdateTemplate(ctx *fiber.Ctx) error {
	var template MessageTemplate
	if err := ctx.BodyParser(&template); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	existing, err := c.Service.GetTemplate(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	template.ID = existing.ID

	if err := c.Service.UpdateTemplate(ctx.Context(), &template); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(template)
}

func (c *TemplateController) DeleteTemplate(ctx *fiber.Ctx) error {
	if err := c.Service.DeleteTemplate(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

type validateRequest struct {
	Content string `json:"content"`
}

func (c *TemplateController) Validate(ctx *fiber.Ctx) error {
	var req validateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	return ctx.JSON(c.Service.ValidateContent(req.Content))
}

type previewRequest struct {
	Content  string                `json:"content"`
	Customer filter.CustomerRecord `json:"customer"`
}

func (c *TemplateController) Preview(ctx *fiber.Ctx) error {
	var req previewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	return ctx.JSON(fiber.Map{"rendered": c.Service.Render(req.Content, req.Customer)})
}

func (c *TemplateController) Variables(ctx *fiber.Ctx) error {
	return ctx.JSON(KnownVariables)
}
