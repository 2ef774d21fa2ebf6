package campaign

import (
	"github.com/gofiber/fiber/v2"
)

type CampaignController struct {
	Service   CampaignService
	Scheduler *Scheduler
}

func NewCampaignController(service CampaignService, scheduler *Scheduler) *CampaignController {
	return &CampaignController{Service: service, Scheduler: scheduler}
}

func (c *CampaignController) CreateCampaign(ctx *fiber.Ctx) error {
	var campaign Campaign
	if err := ctx.BodyParser(&campaign); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	userID, _ := ctx.Locals("userID").(string)
	campaign.CreatedBy = userID

	if err := c.Service.CreateCampaign(ctx.Context(), &campaign); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if campaign.Active && campaign.Schedule != "" {
		if err := c.Scheduler.Register(&campaign); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return ctx.Status(fiber.StatusCreated).JSON(campaign)
}

func (c *CampaignController) GetCampaign(ctx *fiber.Ctx) error {
	campaign, err := c.Service.GetCampaign(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Campaign not found"})
	}
	return ctx.JSON(campaign)
}

func (c *CampaignController) ListCampaigns(ctx *fiber.Ctx) error {
	campaigns, err := c.Service.ListCampaigns(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(campaigns)
}

func (c *CampaignController) UpdateCampaign(ctx *fiber.Ctx) error {
	var campaign Campaign
	if err := ctx.BodyParser(&campaign); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	existing, err := c.Service.GetCampaign(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Campaign not found"})
	}
	campaign.ID = existing.ID

	if err := c.Service.UpdateCampaign(ctx.Context(), &campaign); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	c.Scheduler.Unregister(campaign.ID.Hex())
	if campaign.Active && campaign.Schedule != "" {
		if err := c.Scheduler.Register(&campaign); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return ctx.JSON(campaign)
}

func (c *CampaignController) DeleteCampaign(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	c.Scheduler.Unregister(id)
	if err := c.Service.DeleteCampaign(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *CampaignController) RunCampaign(ctx *fiber.Ctx) error {
	result, err := c.Service.RunCampaign(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(result)
}
