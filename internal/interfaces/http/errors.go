package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/dto"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain"
)

// errorCodes código de respuesta por error de dominio. Todos se responden con 400.
var errorCodes = []struct {
	kind error
	code string
}{
	{domain.ErrInvalidUnit, "INVALID_UNIT"},
	{domain.ErrIncompatibleUnits, "INCOMPATIBLE_UNITS"},
	{domain.ErrMissingDensity, "MISSING_DENSITY"},
	{domain.ErrMissingRequiredField, "MISSING_REQUIRED_FIELD"},
	{domain.ErrDivisionByZero, "DIVISION_BY_ZERO"},
	{domain.ErrDeadVolumeExceedsCapacity, "DEAD_VOLUME_EXCEEDS_CAPACITY"},
	{domain.ErrInvalidInput, "VALIDATION"},
}

// writeError traduce err a dto.ErrorResponse. Un error no tipado es un 500.
func writeError(c *fiber.Ctx, err error) error {
	for _, e := range errorCodes {
		if errors.Is(err, e.kind) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    e.code,
				Message: err.Error(),
				Field:   domain.FieldOf(err),
			})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
