package customer

import (
	"go-marketing/internal/config"
	"go-marketing/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CustomerApi struct {
	Controller *CustomerController
	Config     *config.Config
}

func NewCustomerApi(controller *CustomerController, config *config.Config) *CustomerApi {
	return &CustomerApi{
		Controller: controller,
		Config:     config,
	}
}

func (api *CustomerApi) Setup(app *fiber.App) {
	group := app.Group("/api/customers", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.Controller.CreateCustomer)
	group.Get("/", api.Controller.ListCustomers)
	group.Get("/:id", api.Controller.GetCustomer)
	group.Put("/:id", api.Controller.UpdateCustomer)
	group.Delete("/:id", api.Controller.DeleteCustomer)
}
