package segment

import (
	"go-marketing/pkg/filter"

	"github.com/gofiber/fiber/v2"
)

type SegmentController struct {
	Service SegmentService
}

func NewSegmentController(service SegmentService) *SegmentController {
	return &SegmentController{Service: service}
}

type saveSegmentRequest struct {
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Filter        filter.AdvancedFilter `json:"filter"`
	CustomerCount int                   `json:"customer_count"`
}

func (c *SegmentController) SaveSegment(ctx *fiber.Ctx) error {
	var req saveSegmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	userID, _ := ctx.Locals("userID").(string)

	segment, err := c.Service.SaveSegment(ctx.Context(), req.Name, req.Description, req.Filter, req.CustomerCount, userID)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(segment)
}

func (c *SegmentController) ListSegments(ctx *fiber.Ctx) error {
	segments, err := c.Service.ListSegments(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(segments)
}

func (c *SegmentController) GetSegment(ctx *fiber.Ctx) error {
	segment, err := c.Service.GetSegment(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Segment not found"})
	}
	return ctx.JSON(segment)
}

func (c *SegmentController) UpdateSegment(ctx *fiber.Ctx) error {
	var update SegmentUpdate
	if err := ctx.BodyParser(&update); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	ok, err := c.Service.UpdateSegment(ctx.Context(), ctx.Params("id"), update)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Segment not found"})
	}
	return ctx.JSON(fiber.Map{"updated": true})
}

type renameRequest struct {
	Name string `json:"name"`
}

func (c *SegmentController) RenameSegment(ctx *fiber.Ctx) error {
	var req renameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	ok, err := c.Service.RenameSegment(ctx.Context(), ctx.Params("id"), req.Name)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Segment not found"})
	}
	return ctx.JSON(fiber.Map{"renamed": true})
}

func (c *SegmentController) DeleteSegment(ctx *fiber.Ctx) error {
	ok, err := c.Service.DeleteSegment(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Segment not found"})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *SegmentController) Evaluate(ctx *fiber.Ctx) error {
	var req EvaluateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	result, err := c.Service.Evaluate(ctx.Context(), &req.Filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(result)
}

func (c *SegmentController) EvaluateSegment(ctx *fiber.Ctx) error {
	result, err := c.Service.EvaluateSegment(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Segment not found"})
	}
	return ctx.JSON(result)
}

// Fields exposes the static filterable-field catalog for the UI builder.
func (c *SegmentController) Fields(ctx *fiber.Ctx) error {
	reg := filter.DefaultRegistry()
	if cat := ctx.Query("category"); cat != "" {
		return ctx.JSON(reg.FieldsByCategory(filter.FieldCategory(cat)))
	}
	return ctx.JSON(reg.Fields())
}
