package planning

import (
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain/units"
	"github.com/shopspring/decimal"
)

// Nombres de campo usados en los errores. Coinciden con las claves JSON de la API.
const (
	FieldTestCount    = "test_count"
	FieldQtyPerTest   = "qty_per_test"
	FieldPeriod       = "period"
	FieldCalibration  = "calibration"
	FieldLossBase     = "loss_base"
	FieldConfirmation = "confirmation"
	FieldCurrentStock = "current_stock"
	FieldLeadTime     = "lead_time"
	FieldPackaging    = "packaging"

	FieldLossRates   = "loss_rates"
	FieldControl     = "control"
	FieldDilution    = "dilution"
	FieldUnitContent = "unit_content"
	FieldDensity     = "density"
)

// LossRates pérdidas críticas en porcentaje (0–100) sobre la cantidad base de pérdidas.
type LossRates struct {
	Manipulation  decimal.Decimal
	Contamination decimal.Decimal
	Degradation   decimal.Decimal
}

// Total suma de los tres porcentajes.
func (r LossRates) Total() decimal.Decimal {
	return r.Manipulation.Add(r.Contamination).Add(r.Degradation)
}

// Confirmation tests repetidos para confirmar resultados.
type Confirmation struct {
	RepeatPercent decimal.Decimal // 0–100 sobre TestCount
	QtyPerRepeat  units.Quantity
}

// ConsumptionInputs entradas de un cálculo de pedido. Los punteros nil indican campo ausente.
//
// Requeridos: TestCount, QtyPerTest, Period, Calibration, LossBase, Confirmation,
// CurrentStock, LeadTime, Packaging. El resto es opcional.
type ConsumptionInputs struct {
	TestCount    *decimal.Decimal
	QtyPerTest   *units.Quantity
	Period       *Period
	Calibration  *Schedule
	LossBase     *units.Quantity // cantidad sobre la que se aplican las pérdidas críticas
	Confirmation *Confirmation
	CurrentStock *units.Quantity
	LeadTime     *Period
	Packaging    *units.Quantity // tamaño de un conditionnement; su unidad es la unidad destino

	LossRates   LossRates
	Control     *Schedule
	Dilution    *units.Quantity
	UnitContent *units.Quantity // contenido de una unidad de conteo (1 box = 100 test, 1 vial = 5 ml)
	Density     decimal.NullDecimal
}

// checkRequired valida la presencia de los nueve campos requeridos, en orden.
func (in ConsumptionInputs) checkRequired() error {
	required := []struct {
		name    string
		present bool
	}{
		{FieldTestCount, in.TestCount != nil},
		{FieldQtyPerTest, in.QtyPerTest != nil},
		{FieldPeriod, in.Period != nil},
		{FieldCalibration, in.Calibration != nil},
		{FieldLossBase, in.LossBase != nil},
		{FieldConfirmation, in.Confirmation != nil},
		{FieldCurrentStock, in.CurrentStock != nil},
		{FieldLeadTime, in.LeadTime != nil},
		{FieldPackaging, in.Packaging != nil},
	}
	for _, r := range required {
		if !r.present {
			return domain.FieldError(domain.ErrMissingRequiredField, r.name, "")
		}
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

// checkScalars valida rangos de los escalares.
func (in ConsumptionInputs) checkScalars() error {
	if in.TestCount.IsNegative() {
		return domain.FieldError(domain.ErrInvalidInput, FieldTestCount, "no puede ser negativo")
	}
	if err := checkPeriod(FieldPeriod, *in.Period); err != nil {
		return err
	}
	if err := checkPeriod(FieldLeadTime, *in.LeadTime); err != nil {
		return err
	}
	if err := checkSchedule(FieldCalibration, *in.Calibration); err != nil {
		return err
	}
	if in.Control != nil {
		if err := checkSchedule(FieldControl, *in.Control); err != nil {
			return err
		}
	}
	for _, p := range []decimal.Decimal{in.LossRates.Manipulation, in.LossRates.Contamination, in.LossRates.Degradation} {
		if !isPercent(p) {
			return domain.FieldError(domain.ErrInvalidInput, FieldLossRates, "cada porcentaje debe estar entre 0 y 100")
		}
	}
	if !isPercent(in.Confirmation.RepeatPercent) {
		return domain.FieldError(domain.ErrInvalidInput, FieldConfirmation, "el porcentaje debe estar entre 0 y 100")
	}
	return nil
}

func checkPeriod(field string, p Period) error {
	if !validTimeUnit(p.Unit) {
		return domain.FieldError(domain.ErrInvalidInput, field, "unidad de tiempo desconocida: "+string(p.Unit))
	}
	if p.Value.IsNegative() {
		return domain.FieldError(domain.ErrInvalidInput, field, "no puede ser negativo")
	}
	return nil
}

func checkSchedule(field string, s Schedule) error {
	if !validTimeUnit(s.Per) {
		return domain.FieldError(domain.ErrInvalidInput, field, "unidad de tiempo desconocida: "+string(s.Per))
	}
	if s.Frequency.IsNegative() {
		return domain.FieldError(domain.ErrInvalidInput, field, "la frecuencia no puede ser negativa")
	}
	return nil
}

func validTimeUnit(u TimeUnit) bool {
	return u == Day || u == Week || u == Month
}

func isPercent(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}
