package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/dto"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/inventory"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/planning"
	"github.com/SofyMastertech/Gestion-Stock-CMA/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	PlanningUC  *planning.UseCase
	LotUC       *inventory.LotUseCase
	Logger      *logger.Logger // nil = sin log de acceso
}

// Router registra las rutas de la API. Todas son públicas y sin estado.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName})
	})

	api := app.Group("/api", RequestID(), AccessLog(deps.Logger), RequireJSON())

	unitsHandler := NewUnitsHandler(deps.PlanningUC)
	api.Get("/units", unitsHandler.List)
	api.Post("/units/convert", unitsHandler.Convert)

	planningGroup := api.Group("/planning")
	planningHandler := NewPlanningHandler(deps.PlanningUC)
	planningGroup.Post("/plan", planningHandler.Plan)
	planningGroup.Post("/tests-per-container", planningHandler.TestsPerContainer)

	lotHandler := NewLotHandler(deps.LotUC)
	api.Post("/lots/usage", lotHandler.LotUsage)
	api.Post("/tests/usage", lotHandler.TestUsage)
	api.Post("/reports/averages", lotHandler.Averages)
}
