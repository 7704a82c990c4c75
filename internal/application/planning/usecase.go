// Package planning orquesta los cálculos de pedido de reactivos: traduce los DTO
// de la API a entradas de dominio y registra cada cálculo.
package planning

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/dto"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain"
	domplanning "github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain/planning"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain/units"
	"github.com/SofyMastertech/Gestion-Stock-CMA/pkg/logger"
)

// UseCase expone conversión de unidades, cálculo de pedido y estimación de
// tests por contenedor. No guarda estado entre llamadas.
type UseCase struct {
	conv    *units.Converter
	planner *domplanning.Planner
	log     *logger.Logger
}

// NewUseCase construye el caso de uso. Con log nil no se registra nada.
func NewUseCase(conv *units.Converter, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &UseCase{conv: conv, planner: domplanning.NewPlanner(conv), log: log}
}

// ListUnits devuelve las tablas de unidades soportadas.
func (uc *UseCase) ListUnits() []dto.UnitFamilyDTO {
	fams := units.Families()
	out := make([]dto.UnitFamilyDTO, 0, len(fams))
	for _, f := range fams {
		fd := dto.UnitFamilyDTO{Family: string(f.Family), Base: f.Base, Units: make([]dto.UnitDTO, 0, len(f.Units))}
		for _, u := range f.Units {
			fd.Units = append(fd.Units, dto.UnitDTO{Label: u.Label, Factor: u.Factor})
		}
		out = append(out, fd)
	}
	return out
}

// Convert convierte un valor entre dos unidades.
func (uc *UseCase) Convert(ctx context.Context, in dto.ConvertRequest) (*dto.QuantityDTO, error) {
	q, err := uc.conv.ConvertQuantity(units.NewQuantity(in.Value, in.From), in.To, nullDecimal(in.Density))
	if err != nil {
		uc.log.Debug().Err(err).Str("from", in.From).Str("to", in.To).Msg("conversión rechazada")
		return nil, err
	}
	return &dto.QuantityDTO{Value: q.Value, Unit: q.Unit}, nil
}

// Plan calcula CMA, CMJ, ROP y QAC a partir de la petición.
func (uc *UseCase) Plan(ctx context.Context, in dto.PlanRequest) (*dto.PlanResponse, error) {
	calcID := uuid.NewString()
	log := uc.log.With().Str("calculation_id", calcID).Logger()

	inputs, err := toInputs(in)
	if err != nil {
		log.Warn().Err(err).Str("field", domain.FieldOf(err)).Msg("cálculo rechazado")
		return nil, err
	}
	res, err := uc.planner.Plan(inputs)
	if err != nil {
		log.Warn().Err(err).Str("field", domain.FieldOf(err)).Msg("cálculo rechazado")
		return nil, err
	}

	log.Debug().
		Str("unit", res.Unit).
		Str("cma", res.CMA.String()).
		Str("rop", res.ROP.String()).
		Str("qac", res.QAC.String()).
		Msg("cálculo de pedido")

	return toPlanResponse(calcID, res), nil
}

// EstimateTestsPerContainer estima los tests completos que rinde un contenedor.
func (uc *UseCase) EstimateTestsPerContainer(ctx context.Context, in dto.ContainerRequest) (*dto.ContainerResponse, error) {
	est, err := domplanning.EstimateTestsPerContainer(uc.conv, domplanning.ContainerInputs{
		QtyPerTest: quantity(in.QtyPerTest),
		Capacity:   quantity(in.Capacity),
		DeadVolume: quantity(in.DeadVolume),
		Tool:       domplanning.MeasurementTool(in.Tool),
		Density:    nullDecimal(in.Density),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("field", domain.FieldOf(err)).Msg("estimación rechazada")
		return nil, err
	}
	return &dto.ContainerResponse{
		Tests:     est.Tests,
		UsableQty: dto.QuantityDTO{Value: est.UsableQty.Value, Unit: est.UsableQty.Unit},
	}, nil
}

// ── mapeo DTO -> dominio ─────────────────────────────────────────────────────

func toInputs(in dto.PlanRequest) (domplanning.ConsumptionInputs, error) {
	out := domplanning.ConsumptionInputs{
		TestCount:    in.TestCount,
		QtyPerTest:   quantityPtr(in.QtyPerTest),
		LossBase:     quantityPtr(in.LossBase),
		CurrentStock: quantityPtr(in.CurrentStock),
		Packaging:    quantityPtr(in.Packaging),
		Dilution:     quantityPtr(in.Dilution),
		UnitContent:  quantityPtr(in.UnitContent),
		Density:      nullDecimal(in.Density),
	}
	var err error
	if out.Period, err = period(domplanning.FieldPeriod, in.Period); err != nil {
		return out, err
	}
	if out.LeadTime, err = period(domplanning.FieldLeadTime, in.LeadTime); err != nil {
		return out, err
	}
	if out.Calibration, err = schedule(domplanning.FieldCalibration, in.Calibration); err != nil {
		return out, err
	}
	if out.Control, err = schedule(domplanning.FieldControl, in.Control); err != nil {
		return out, err
	}
	if in.Confirmation != nil {
		out.Confirmation = &domplanning.Confirmation{
			RepeatPercent: in.Confirmation.RepeatPercent,
			QtyPerRepeat:  quantity(in.Confirmation.QtyPerRepeat),
		}
	}
	if in.LossRates != nil {
		out.LossRates = domplanning.LossRates{
			Manipulation:  in.LossRates.Manipulation,
			Contamination: in.LossRates.Contamination,
			Degradation:   in.LossRates.Degradation,
		}
	}
	return out, nil
}

func period(field string, p *dto.PeriodDTO) (*domplanning.Period, error) {
	if p == nil {
		return nil, nil
	}
	u, err := domplanning.ParseTimeUnit(p.Unit)
	if err != nil {
		return nil, domain.WithField(err, field)
	}
	return &domplanning.Period{Value: p.Value, Unit: u}, nil
}

func schedule(field string, s *dto.ScheduleDTO) (*domplanning.Schedule, error) {
	if s == nil {
		return nil, nil
	}
	u, err := domplanning.ParseTimeUnit(s.Per)
	if err != nil {
		return nil, domain.WithField(err, field)
	}
	return &domplanning.Schedule{Frequency: s.Frequency, Per: u, Quantity: quantity(s.Quantity)}, nil
}

func quantity(q dto.QuantityDTO) units.Quantity {
	return units.NewQuantity(q.Value, q.Unit)
}

func quantityPtr(q *dto.QuantityDTO) *units.Quantity {
	if q == nil {
		return nil
	}
	v := quantity(*q)
	return &v
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return units.NoDensity
	}
	return units.Density(*d)
}

// ── mapeo dominio -> DTO ─────────────────────────────────────────────────────

func toPlanResponse(calcID string, r *domplanning.PlanResult) *dto.PlanResponse {
	labeled := r.Labeled()
	results := make([]dto.LabeledValueDTO, 0, len(labeled))
	for _, l := range labeled {
		results = append(results, dto.LabeledValueDTO{Label: l.Label, Value: l.Value, Unit: l.Unit})
	}
	b := r.Breakdown
	return &dto.PlanResponse{
		CalculationID: calcID,
		Unit:          r.Unit,
		PeriodDays:    r.PeriodDays,
		LeadTimeDays:  r.LeadTimeDays,
		Breakdown: dto.BreakdownDTO{
			Consumption:  b.Consumption,
			Calibration:  b.Calibration,
			Control:      b.Control,
			CriticalLoss: b.CriticalLoss,
			Confirmation: b.Confirmation,
			Dilution:     b.Dilution,
			Calibrations: b.Calibrations,
			Controls:     b.Controls,
		},
		CMA:        r.CMA,
		CMJ:        r.CMJ,
		ROP:        r.ROP,
		QAC:        r.QAC.String(),
		Packagings: r.QAC.Packagings,
		Sufficient: r.QAC.Sufficient,
		Results:    results,
	}
}
