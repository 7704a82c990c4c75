package inventory

import (
	"strings"

	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MeanHalfUp media aritmética redondeada a un decimal, mitad hacia arriba
// (92.65 -> 92.7).
func MeanHalfUp(values []decimal.Decimal) (decimal.Decimal, error) {
	if len(values) == 0 {
		return decimal.Zero, domain.FieldError(domain.ErrInvalidInput, "values", "no hay valores que promediar")
	}
	return decimal.Avg(values[0], values[1:]...).Round(1), nil
}

// LotRecord fila de informe de un lote. Las columnas numéricas son opcionales:
// un informe por volumen no rellena las columnas de tests y viceversa.
type LotRecord struct {
	Analyte   string
	LotNumber string
	StartDate string
	EndDate   string

	TotalVolume     decimal.NullDecimal
	RemainingVolume decimal.NullDecimal
	TestsPerformed  decimal.NullDecimal
	VolumePerTest   decimal.NullDecimal
	EstimatedTests  decimal.NullDecimal
	LostTests       decimal.NullDecimal
	UsageFactor     decimal.NullDecimal
	LossPercent     decimal.NullDecimal
}

// AnalyteAverage fila agregada por analito. Lots indica cuántos lotes la componen.
type AnalyteAverage struct {
	LotRecord
	Lots int
}

// columns accesores de las columnas numéricas, en orden de informe.
var columns = []func(*LotRecord) *decimal.NullDecimal{
	func(r *LotRecord) *decimal.NullDecimal { return &r.TotalVolume },
	func(r *LotRecord) *decimal.NullDecimal { return &r.RemainingVolume },
	func(r *LotRecord) *decimal.NullDecimal { return &r.TestsPerformed },
	func(r *LotRecord) *decimal.NullDecimal { return &r.VolumePerTest },
	func(r *LotRecord) *decimal.NullDecimal { return &r.EstimatedTests },
	func(r *LotRecord) *decimal.NullDecimal { return &r.LostTests },
	func(r *LotRecord) *decimal.NullDecimal { return &r.UsageFactor },
	func(r *LotRecord) *decimal.NullDecimal { return &r.LossPercent },
}

// AverageByAnalyte agrupa los lotes por analito sin distinguir mayúsculas y
// devuelve una fila por grupo, en orden de primera aparición. Un grupo de un
// solo lote se devuelve tal cual; los demás llevan la media de cada columna
// numérica y fechas vacías.
func AverageByAnalyte(records []LotRecord) []AnalyteAverage {
	fold := cases.Fold()
	title := cases.Title(language.Und)

	var order []string
	groups := make(map[string][]LotRecord)
	for _, r := range records {
		key := fold.String(strings.TrimSpace(r.Analyte))
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	out := make([]AnalyteAverage, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			out = append(out, AnalyteAverage{LotRecord: group[0], Lots: 1})
			continue
		}
		avg := LotRecord{Analyte: title.String(key)}
		for _, col := range columns {
			var vals []decimal.Decimal
			for i := range group {
				if v := col(&group[i]); v.Valid {
					vals = append(vals, v.Decimal)
				}
			}
			if mean, err := MeanHalfUp(vals); err == nil {
				*col(&avg) = decimal.NewNullDecimal(mean)
			}
		}
		out = append(out, AnalyteAverage{LotRecord: avg, Lots: len(group)})
	}
	return out
}
