package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/dto"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/planning"
)

// PlanningHandler cálculo de pedidos de reactivos.
type PlanningHandler struct {
	uc *planning.UseCase
}

// NewPlanningHandler construye el handler.
func NewPlanningHandler(uc *planning.UseCase) *PlanningHandler {
	return &PlanningHandler{uc: uc}
}

// Plan godoc
// @Summary      Calcular CMA, CMJ, ROP y QAC
// @Description  Normaliza todas las cantidades a la unidad del conditionnement y calcula
//
//	el consumo del periodo, el punto de pedido y la cantidad a pedir.
//
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlanRequest  true  "entradas del cálculo"
// @Success      200   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/planning/plan [post]
func (h *PlanningHandler) Plan(c *fiber.Ctx) error {
	var in dto.PlanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Plan(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TestsPerContainer godoc
// @Summary      Tests por contenedor
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContainerRequest  true  "qty_per_test, capacity, dead_volume, tool (analyzer|manual)"
// @Success      200   {object}  dto.ContainerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/planning/tests-per-container [post]
func (h *PlanningHandler) TestsPerContainer(c *fiber.Ctx) error {
	var in dto.ContainerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.EstimateTestsPerContainer(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
