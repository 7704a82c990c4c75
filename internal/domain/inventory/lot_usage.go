// Package inventory calcula métricas de consumo por lote de reactivo y los
// promedios por analito usados en los informes.
package inventory

import (
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LotUsage métricas de un lote cerrado. Volúmenes en la unidad del lote.
type LotUsage struct {
	UsedVolume    decimal.Decimal
	VolumePerTest decimal.NullDecimal // ausente si no se realizó ningún test
	ResidualLoss  decimal.Decimal     // volumen restante no aprovechado
	LossPercent   decimal.Decimal
}

// ComputeLotUsage servicio de dominio sobre un lote:
//
//	usado      = total - restante
//	vol/test   = usado / tests
//	pérdida %  = restante / total * 100
func ComputeLotUsage(total, remaining decimal.Decimal, testsPerformed int64) (*LotUsage, error) {
	switch {
	case total.IsNegative():
		return nil, domain.FieldError(domain.ErrInvalidInput, "total_volume", "no puede ser negativo")
	case remaining.IsNegative():
		return nil, domain.FieldError(domain.ErrInvalidInput, "remaining_volume", "no puede ser negativo")
	case testsPerformed < 0:
		return nil, domain.FieldError(domain.ErrInvalidInput, "tests_performed", "no puede ser negativo")
	case remaining.GreaterThan(total):
		return nil, domain.FieldError(domain.ErrInvalidInput, "remaining_volume", "supera el volumen total")
	case total.IsZero():
		return nil, domain.FieldError(domain.ErrDivisionByZero, "total_volume", "el volumen total es cero")
	}

	used := total.Sub(remaining)
	u := &LotUsage{
		UsedVolume:   used,
		ResidualLoss: remaining,
		LossPercent:  remaining.Div(total).Mul(hundred),
	}
	if testsPerformed > 0 {
		u.VolumePerTest = decimal.NewNullDecimal(used.Div(decimal.NewFromInt(testsPerformed)))
	}
	return u, nil
}

// TestUsage aprovechamiento de un lote medido en tests.
type TestUsage struct {
	UsageFactor decimal.Decimal
	LostTests   int64
	LossPercent decimal.Decimal
}

// ComputeTestUsage compara tests estimados y realizados. Si se realizaron más
// tests de los estimados la pérdida es negativa.
func ComputeTestUsage(estimated, performed int64) (*TestUsage, error) {
	if estimated < 0 {
		return nil, domain.FieldError(domain.ErrInvalidInput, "estimated_tests", "no puede ser negativo")
	}
	if performed < 0 {
		return nil, domain.FieldError(domain.ErrInvalidInput, "performed_tests", "no puede ser negativo")
	}
	if estimated == 0 {
		return nil, domain.FieldError(domain.ErrDivisionByZero, "estimated_tests", "no hay tests estimados")
	}
	est := decimal.NewFromInt(estimated)
	lost := estimated - performed
	return &TestUsage{
		UsageFactor: decimal.NewFromInt(performed).Div(est),
		LostTests:   lost,
		LossPercent: decimal.NewFromInt(lost).Div(est).Mul(hundred),
	}, nil
}
