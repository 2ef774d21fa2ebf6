package campaign

import (
	"go-marketing/internal/config"
	"go-marketing/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CampaignApi struct {
	Controller *CampaignController
	Config     *config.Config
}

func NewCampaignApi(controller *CampaignController, config *config.Config) *CampaignApi {
	return &CampaignApi{
		Controller: controller,
		Config:     config,
	}
}

func (api *CampaignApi) Setup(app *fiber.App) {
	group := app.Group("/api/campaigns", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.Controller.CreateCampaign)
	group.Get("/", api.Controller.ListCampaigns)
	group.Get("/:id", api.Controller.GetCampaign)
	group.Put("/:id", api.Controller.UpdateCampaign)
	group.Post("/:id/run", api.Controller.RunCampaign)
	group.Delete("/:id", api.Controller.DeleteCampaign)
}
