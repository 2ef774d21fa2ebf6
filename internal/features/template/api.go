package template

import (
	"go-marketing/internal/config"
	"go-marketing/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TemplateApi struct {
	Controller *TemplateController
	Config     *config.Config
}

func NewTemplateApi(controller *TemplateController, config *config.Config) *TemplateApi {
	return &TemplateApi{
		Controller: controller,
		Config:     config,
	}
}

func (api *TemplateApi) Setup(app *fiber.App) {
	group := app.Group("/api/templates", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/variables", api.Controller.Variables)
	group.Post("/validate", api.Controller.Validate)
	group.Post("/preview", api.Controller.Preview)
	group.Post("/", api.Controller.CreateTemplate)
	group.Get("/", api.Controller.ListTemplates)
	group.Get("/:id", api.Controller.GetTemplate)
	group.Put("/:id", api.Controller.UpdateTemplate)
	group.Delete("/:id", api.Controller.DeleteTemplate)
}
