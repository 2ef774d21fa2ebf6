package sale

import (
	"go-marketing/internal/config"
	"go-marketing/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SaleApi struct {
	Controller *SaleController
	Config     *config.Config
}

func NewSaleApi(controller *SaleController, config *config.Config) *SaleApi {
	return &SaleApi{
		Controller: controller,
		Config:     config,
	}
}

func (api *SaleApi) Setup(app *fiber.App) {
	group := app.Group("/api/sales", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.Controller.CreateSale)
	group.Get("/", api.Controller.ListSales)
}
