package product

import (
	"go-marketing/internal/config"
	"go-marketing/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProductApi struct {
	Controller *ProductController
	Config     *config.Config
}

func NewProductApi(controller *ProductController, config *config.Config) *ProductApi {
	return &ProductApi{
		Controller: controller,
		Config:     config,
	}
}

func (api *ProductApi) Setup(app *fiber.App) {
	group := app.Group("/api/products", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.Controller.CreateProduct)
	group.Get("/", api.Controller.ListProducts)
}
