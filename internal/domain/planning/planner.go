// Package planning compone conversiones de unidades en un pronóstico de consumo
// de reactivos y una cantidad a pedir (QAC).
package planning

import (
	"errors"

	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain/units"
	"github.com/shopspring/decimal"
)

// Planner calcula CMA, CMJ, ROP y QAC. No tiene estado.
type Planner struct {
	conv *units.Converter
}

// NewPlanner construye el planificador sobre un conversor de unidades.
func NewPlanner(conv *units.Converter) *Planner {
	return &Planner{conv: conv}
}

// Plan ejecuta el cálculo completo:
//
//	consumo      = qty_per_test * test_count
//	calibración  = n_calibraciones * qty
//	pérdidas     = loss_base * (manip + contam + degr) / 100
//	confirmación = test_count * repeat% / 100 * qty_per_repeat
//	CMA = consumo + calibración + control + pérdidas + confirmación + dilución
//	CMJ = CMA / días_periodo
//	ROP = CMA + CMJ * días_entrega - stock
//	QAC = ceil(ROP / conditionnement), o stock suficiente si ROP <= 0
//
// Cualquier error aborta el cálculo: nunca se devuelve un resultado parcial.
func (p *Planner) Plan(in ConsumptionInputs) (*PlanResult, error) {
	if err := in.checkRequired(); err != nil {
		return nil, err
	}
	if err := in.checkScalars(); err != nil {
		return nil, err
	}

	n, err := p.newNormalizer(in)
	if err != nil {
		return nil, err
	}
	qtyPerTest, err := n.toTarget(FieldQtyPerTest, *in.QtyPerTest)
	if err != nil {
		return nil, err
	}
	calibrationQty, err := n.toTarget(FieldCalibration, in.Calibration.Quantity)
	if err != nil {
		return nil, err
	}
	lossBase, err := n.toTarget(FieldLossBase, *in.LossBase)
	if err != nil {
		return nil, err
	}
	repeatQty, err := n.toTarget(FieldConfirmation, in.Confirmation.QtyPerRepeat)
	if err != nil {
		return nil, err
	}
	stock, err := n.toTarget(FieldCurrentStock, *in.CurrentStock)
	if err != nil {
		return nil, err
	}
	controlQty := decimal.Zero
	if in.Control != nil {
		if controlQty, err = n.toTarget(FieldControl, in.Control.Quantity); err != nil {
			return nil, err
		}
	}
	dilution := decimal.Zero
	if in.Dilution != nil {
		if dilution, err = n.toTarget(FieldDilution, *in.Dilution); err != nil {
			return nil, err
		}
	}

	testCount := *in.TestCount
	totalDays := in.Period.Days()

	var b Breakdown
	b.Consumption = qtyPerTest.Mul(testCount)
	b.Calibrations = calibrationCount(*in.Calibration, totalDays)
	b.Calibration = b.Calibrations.Mul(calibrationQty)
	if in.Control != nil {
		b.Controls = controlCount(*in.Control, totalDays)
		b.Control = b.Controls.Mul(controlQty)
	}
	b.CriticalLoss = lossBase.Mul(in.LossRates.Total()).Div(hundred)
	b.Confirmation = testCount.Mul(in.Confirmation.RepeatPercent).Div(hundred).Mul(repeatQty)
	b.Dilution = dilution

	cma := decimal.Sum(b.Consumption, b.Calibration, b.Control, b.CriticalLoss, b.Confirmation, b.Dilution)

	if totalDays.IsZero() {
		return nil, domain.FieldError(domain.ErrDivisionByZero, FieldPeriod, "el periodo declarado es cero")
	}
	cmj := cma.Div(totalDays)

	leadDays := in.LeadTime.Days()
	rop := cma.Add(cmj.Mul(leadDays)).Sub(stock)

	qac, err := orderQuantity(rop, in.Packaging.Value)
	if err != nil {
		return nil, err
	}

	return &PlanResult{
		Unit:          n.target,
		PackagingSize: in.Packaging.Value,
		PeriodDays:    totalDays,
		LeadTimeDays:  leadDays,
		Breakdown:     b,
		CMA:           cma,
		CMJ:           cmj,
		ROP:           rop,
		QAC:           qac,
	}, nil
}

func orderQuantity(rop, packagingSize decimal.Decimal) (OrderQuantity, error) {
	if packagingSize.IsZero() {
		return OrderQuantity{}, domain.FieldError(domain.ErrDivisionByZero, FieldPackaging, "el tamaño del conditionnement es cero")
	}
	if !rop.IsPositive() {
		return OrderQuantity{Sufficient: true}, nil
	}
	return OrderQuantity{Packagings: rop.Div(packagingSize).Ceil().IntPart()}, nil
}

// normalizer lleva cada cantidad de entrada a la unidad destino.
type normalizer struct {
	conv    *units.Converter
	target  string
	content *units.Quantity // solo con destino de conteo
	density decimal.NullDecimal
}

func (p *Planner) newNormalizer(in ConsumptionInputs) (*normalizer, error) {
	target, ok := units.Canonical(in.Packaging.Unit)
	if !ok {
		return nil, &domain.Error{Kind: domain.ErrInvalidUnit, Field: FieldPackaging, From: in.Packaging.Unit}
	}
	if in.Packaging.Value.IsNegative() {
		return nil, domain.FieldError(domain.ErrInvalidInput, FieldPackaging, "no puede ser negativo")
	}
	n := &normalizer{conv: p.conv, target: target, density: in.Density}

	// UnitContent solo tiene sentido cuando el conditionnement se cuenta en unidades.
	family, _ := units.FamilyOf(target)
	if in.UnitContent == nil || family != units.FamilyCount {
		return n, nil
	}
	contentUnit, ok := units.Canonical(in.UnitContent.Unit)
	if !ok {
		return nil, &domain.Error{Kind: domain.ErrInvalidUnit, Field: FieldUnitContent, From: in.UnitContent.Unit}
	}
	if contentUnit == target {
		return nil, domain.FieldError(domain.ErrInvalidInput, FieldUnitContent, "el contenido no puede expresarse en la propia unidad destino")
	}
	switch {
	case in.UnitContent.Value.IsZero():
		return nil, domain.FieldError(domain.ErrDivisionByZero, FieldUnitContent, "el contenido por unidad es cero")
	case in.UnitContent.Value.IsNegative():
		return nil, domain.FieldError(domain.ErrInvalidInput, FieldUnitContent, "no puede ser negativo")
	}
	n.content = &units.Quantity{Value: in.UnitContent.Value, Unit: contentUnit}
	return n, nil
}

// toTarget convierte q a la unidad destino. Con destino de conteo y contenido
// declarado, una cantidad física se expresa como fracción de unidad:
// valor en la unidad del contenido / contenido.
func (n *normalizer) toTarget(field string, q units.Quantity) (decimal.Decimal, error) {
	if q.Value.IsNegative() {
		return decimal.Zero, domain.FieldError(domain.ErrInvalidInput, field, "no puede ser negativo")
	}
	v, err := n.conv.Convert(q.Value, q.Unit, n.target, n.density)
	if err == nil {
		return v, nil
	}
	if n.content == nil || !errors.Is(err, domain.ErrIncompatibleUnits) {
		return decimal.Zero, domain.WithField(err, field)
	}
	inContent, cerr := n.conv.Convert(q.Value, q.Unit, n.content.Unit, n.density)
	if cerr != nil {
		if errors.Is(cerr, domain.ErrIncompatibleUnits) {
			return decimal.Zero, domain.WithField(err, field)
		}
		return decimal.Zero, domain.WithField(cerr, field)
	}
	return inContent.Div(n.content.Value), nil
}
