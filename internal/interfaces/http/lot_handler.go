package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/dto"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/inventory"
)

// LotHandler métricas de lotes e informes.
type LotHandler struct {
	uc *inventory.LotUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(uc *inventory.LotUseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// LotUsage godoc
// @Summary      Uso de un lote por volumen
// @Tags         lots
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LotUsageRequest  true  "total_volume, remaining_volume, tests_performed"
// @Success      200   {object}  dto.LotUsageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/lots/usage [post]
func (h *LotHandler) LotUsage(c *fiber.Ctx) error {
	var in dto.LotUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.LotUsage(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TestUsage godoc
// @Summary      Uso de un lote por tests
// @Tags         lots
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TestUsageRequest  true  "estimated_tests, performed_tests"
// @Success      200   {object}  dto.TestUsageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tests/usage [post]
func (h *LotHandler) TestUsage(c *fiber.Ctx) error {
	var in dto.TestUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.TestUsage(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Averages godoc
// @Summary      Promedios por analito
// @Description  Agrupa las filas por analito; los grupos de varios lotes se promedian a un decimal.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AveragesRequest  true  "records"
// @Success      200   {object}  dto.AveragesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/averages [post]
func (h *LotHandler) Averages(c *fiber.Ctx) error {
	var in dto.AveragesRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Averages(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
