package sale

import (
	"github.com/gofiber/fiber/v2"
)

type SaleController struct {
	Service SaleService
}

func NewSaleController(service SaleService) *SaleController {
	return &SaleController{Service: service}
}

func (c *SaleController) CreateSale(ctx *fiber.Ctx) error {
	var sale Sale
	if err := ctx.BodyParser(&sale); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	if err := c.Service.CreateSale(ctx.Context(), &sale); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(sale)
}

func (c *SaleController) ListSales(ctx *fiber.Ctx) error {
	if customerID := ctx.Query("customer_id"); customerID != "" {
		sales, err := c.Service.ListCustomerSales(ctx.Context(), customerID)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.JSON(sales)
	}

	sales, err := c.Service.ListSales(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(sales)
}
