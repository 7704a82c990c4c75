package planning

import (
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain/units"
	"github.com/shopspring/decimal"
)

// TimeUnit unidad de tiempo de un periodo o de un calendario.
type TimeUnit string

const (
	Day   TimeUnit = "day"
	Week  TimeUnit = "week"
	Month TimeUnit = "month"
)

// Days devuelve la duración en días: day=1, week=7, month=30.
func (u TimeUnit) Days() decimal.Decimal {
	switch u {
	case Week:
		return decimal.NewFromInt(7)
	case Month:
		return decimal.NewFromInt(30)
	default:
		return decimal.NewFromInt(1)
	}
}

var timeUnitLabels = map[string]TimeUnit{
	"day": Day, "days": Day, "d": Day, "jour": Day, "jours": Day,
	"week": Week, "weeks": Week, "semaine": Week, "semaines": Week,
	"month": Month, "months": Month, "mois": Month,
}

// ParseTimeUnit resuelve una etiqueta de tiempo (acepta las del formulario en francés).
func ParseTimeUnit(s string) (TimeUnit, error) {
	if u, ok := timeUnitLabels[units.Normalize(s)]; ok {
		return u, nil
	}
	return "", &domain.Error{Kind: domain.ErrInvalidInput, Detail: "unidad de tiempo desconocida: " + s}
}

// Period duración expresada en una unidad de tiempo.
type Period struct {
	Value decimal.Decimal
	Unit  TimeUnit
}

// Days convierte el periodo a días.
func (p Period) Days() decimal.Decimal {
	return p.Value.Mul(p.Unit.Days())
}

// Schedule actividad recurrente: Frequency veces por Per, cada una consume Quantity.
// Se usa para calibraciones y controles de calidad.
type Schedule struct {
	Frequency decimal.Decimal
	Per       TimeUnit
	Quantity  units.Quantity
}

// calibrationCount número de calibraciones en totalDays. Con calendario diario se
// cuentan solo días completos; con semana o mes se admite la fracción de periodo.
func calibrationCount(s Schedule, totalDays decimal.Decimal) decimal.Decimal {
	if s.Per == Day {
		return totalDays.Floor().Mul(s.Frequency)
	}
	return totalDays.Div(s.Per.Days()).Mul(s.Frequency)
}

// controlCount número de controles en totalDays: solo cuentan periodos completos.
func controlCount(s Schedule, totalDays decimal.Decimal) decimal.Decimal {
	return totalDays.Div(s.Per.Days()).Floor().Mul(s.Frequency)
}
