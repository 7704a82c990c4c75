package planning

import (
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain/units"
	"github.com/shopspring/decimal"
)

// MeasurementTool cómo se dispensa el reactivo; cambia el tratamiento del volumen muerto.
type MeasurementTool string

const (
	// Analyzer automate: el volumen muerto se pierde una sola vez por contenedor.
	Analyzer MeasurementTool = "analyzer"
	// Manual pipeteo manual: el volumen muerto se pierde en cada test.
	Manual MeasurementTool = "manual"
)

// ContainerInputs datos de un contenedor. QtyPerTest y DeadVolume se expresan
// en la unidad de Capacity antes de calcular.
type ContainerInputs struct {
	QtyPerTest units.Quantity
	Capacity   units.Quantity
	DeadVolume units.Quantity
	Tool       MeasurementTool
	Density    decimal.NullDecimal
}

// ContainerEstimate tests completos por contenedor y cantidad aprovechable.
type ContainerEstimate struct {
	Tests     int64
	UsableQty units.Quantity
}

// EstimateTestsPerContainer estima cuántos tests rinde un contenedor.
func EstimateTestsPerContainer(conv *units.Converter, in ContainerInputs) (*ContainerEstimate, error) {
	unit, ok := units.Canonical(in.Capacity.Unit)
	if !ok {
		return nil, &domain.Error{Kind: domain.ErrInvalidUnit, Field: "capacity", From: in.Capacity.Unit}
	}
	if family, _ := units.FamilyOf(unit); family == units.FamilyCount {
		return nil, &domain.Error{Kind: domain.ErrIncompatibleUnits, Field: "capacity", From: in.Capacity.Unit,
			Detail: "la capacidad debe expresarse en volumen o masa"}
	}
	qpt, err := conv.Convert(in.QtyPerTest.Value, in.QtyPerTest.Unit, unit, in.Density)
	if err != nil {
		return nil, domain.WithField(err, "qty_per_test")
	}
	dead, err := conv.Convert(in.DeadVolume.Value, in.DeadVolume.Unit, unit, in.Density)
	if err != nil {
		return nil, domain.WithField(err, "dead_volume")
	}
	capacity := in.Capacity.Value
	for _, c := range []struct {
		field string
		v     decimal.Decimal
	}{{"qty_per_test", qpt}, {"capacity", capacity}, {"dead_volume", dead}} {
		if c.v.IsNegative() {
			return nil, domain.FieldError(domain.ErrInvalidInput, c.field, "no puede ser negativo")
		}
	}
	if qpt.IsZero() {
		return nil, domain.FieldError(domain.ErrDivisionByZero, "qty_per_test", "la cantidad por test es cero")
	}

	switch in.Tool {
	case Analyzer:
		usable := capacity.Sub(dead)
		if usable.IsNegative() {
			return nil, domain.FieldError(domain.ErrDeadVolumeExceedsCapacity, "dead_volume", "")
		}
		return &ContainerEstimate{
			Tests:     usable.Div(qpt).Floor().IntPart(),
			UsableQty: units.Quantity{Value: usable, Unit: unit},
		}, nil
	case Manual:
		raw := capacity.Div(qpt.Add(dead))
		usable := capacity.Sub(raw.Mul(dead))
		return &ContainerEstimate{
			Tests:     raw.Floor().IntPart(),
			UsableQty: units.Quantity{Value: usable, Unit: unit},
		}, nil
	default:
		return nil, domain.FieldError(domain.ErrInvalidInput, "tool", "herramienta de medida desconocida: "+string(in.Tool))
	}
}
