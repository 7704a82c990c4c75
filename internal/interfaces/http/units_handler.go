package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/dto"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/planning"
)

// UnitsHandler consulta y conversión de unidades.
type UnitsHandler struct {
	uc *planning.UseCase
}

// NewUnitsHandler construye el handler.
func NewUnitsHandler(uc *planning.UseCase) *UnitsHandler {
	return &UnitsHandler{uc: uc}
}

// List godoc
// @Summary      Unidades soportadas
// @Tags         units
// @Produce      json
// @Success      200  {array}  dto.UnitFamilyDTO
// @Router       /api/units [get]
func (h *UnitsHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListUnits())
}

// Convert godoc
// @Summary      Convertir un valor entre unidades
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConvertRequest  true  "value, from, to, density (g/ml, opcional)"
// @Success      200   {object}  dto.QuantityDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/units/convert [post]
func (h *UnitsHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Convert(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
