package action_history

import (
	"go-marketing/internal/config"
	"go-marketing/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ActionHistoryApi struct {
	Controller *ActionHistoryController
	Config     *config.Config
}

func NewActionHistoryApi(controller *ActionHistoryController, config *config.Config) *ActionHistoryApi {
	return &ActionHistoryApi{
		Controller: controller,
		Config:     config,
	}
}

func (api *ActionHistoryApi) Setup(app *fiber.App) {
	group := app.Group("/api/action-history", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/", api.Controller.List)
	group.Delete("/", api.Controller.Clear)
}
