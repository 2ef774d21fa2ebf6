package export

import (
	"go-marketing/internal/config"
	"go-marketing/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	Controller *ExportController
	Config     *config.Config
}

func NewExportApi(controller *ExportController, config *config.Config) *ExportApi {
	return &ExportApi{
		Controller: controller,
		Config:     config,
	}
}

func (api *ExportApi) Setup(app *fiber.App) {
	group := app.Group("/api/export", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/customers", api.Controller.ExportFilter)
	group.Post("/segments/:id", api.Controller.ExportSegment)
}
