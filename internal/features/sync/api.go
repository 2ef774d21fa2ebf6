package sync

import (
	"go-marketing/internal/config"
	"go-marketing/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	Controller *SyncController
	Config     *config.Config
}

func NewSyncApi(controller *SyncController, config *config.Config) *SyncApi {
	return &SyncApi{
		Controller: controller,
		Config:     config,
	}
}

func (api *SyncApi) Setup(app *fiber.App) {
	group := app.Group("/api/sync", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.Controller.CreateSetting)
	group.Get("/", api.Controller.ListSettings)
	group.Get("/:id", api.Controller.GetSetting)
	group.Put("/:id", api.Controller.UpdateSetting)
	group.Post("/:id/run", api.Controller.RunSync)
	group.Post("/:id/test", api.Controller.TestConnection)
	group.Get("/:id/schema/:table", api.Controller.GetTableSchema)
	group.Get("/:id/logs", api.Controller.ListLogs)
	group.Delete("/:id", api.Controller.DeleteSetting)
}
