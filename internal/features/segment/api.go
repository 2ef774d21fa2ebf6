package segment

import (
	"go-marketing/internal/config"
	"go-marketing/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SegmentApi struct {
	Controller *SegmentController
	Config     *config.Config
}

func NewSegmentApi(controller *SegmentController, config *config.Config) *SegmentApi {
	return &SegmentApi{
		Controller: controller,
		Config:     config,
	}
}

func (api *SegmentApi) Setup(app *fiber.App) {
	group := app.Group("/api/segments", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/fields", api.Controller.Fields)
	group.Post("/evaluate", api.Controller.Evaluate)
	group.Post("/", api.Controller.SaveSegment)
	group.Get("/", api.Controller.ListSegments)
	group.Get("/:id", api.Controller.GetSegment)
	group.Put("/:id", api.Controller.UpdateSegment)
	group.Patch("/:id/rename", api.Controller.RenameSegment)
	group.Post("/:id/evaluate", api.Controller.EvaluateSegment)
	group.Delete("/:id", api.Controller.DeleteSegment)
}
