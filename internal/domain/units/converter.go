package units

import (
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain"
	"github.com/shopspring/decimal"
)

// Quantity valor con su unidad. La familia se deriva siempre de la etiqueta.
type Quantity struct {
	Value decimal.Decimal
	Unit  string
}

// NewQuantity construye una cantidad.
func NewQuantity(value decimal.Decimal, unit string) Quantity {
	return Quantity{Value: value, Unit: unit}
}

func (q Quantity) String() string {
	return q.Value.String() + " " + q.Unit
}

// Converter servicio de conversión de unidades. No tiene estado: es seguro
// usarlo desde varias goroutines.
type Converter struct{}

// NewConverter crea el servicio.
func NewConverter() *Converter {
	return &Converter{}
}

// IsValidUnit indica si unit pertenece a alguna familia.
func (c *Converter) IsValidUnit(unit string) bool {
	_, ok := resolve(unit)
	return ok
}

// AreCompatible indica si ambas unidades son válidas y de la misma familia.
// Volumen↔masa no es compatible aquí: esa conversión exige densidad y va por Convert.
func (c *Converter) AreCompatible(from, to string) bool {
	f, ok := resolve(from)
	if !ok {
		return false
	}
	t, ok := resolve(to)
	if !ok {
		return false
	}
	return f.family == t.family
}

// Convert convierte value de from a to. density (g/ml) solo se usa entre volumen y masa.
//
//	misma familia: value * factor[from] / factor[to]
//	volumen→masa:  value * vf[from] * density / mf[to]
//	masa→volumen:  value * mf[from] / density / vf[to]
//
// Las unidades de conteo solo se "convierten" a sí mismas.
func (c *Converter) Convert(value decimal.Decimal, from, to string, density decimal.NullDecimal) (decimal.Decimal, error) {
	f, ok := resolve(from)
	if !ok {
		return decimal.Zero, domain.ConversionError(domain.ErrInvalidUnit, from, to)
	}
	t, ok := resolve(to)
	if !ok {
		return decimal.Zero, domain.ConversionError(domain.ErrInvalidUnit, from, to)
	}
	if f.label == t.label {
		return value, nil
	}

	switch {
	case f.family == FamilyCount || t.family == FamilyCount:
		return decimal.Zero, domain.ConversionError(domain.ErrIncompatibleUnits, from, to)
	case f.family == t.family:
		return value.Mul(f.toBase).Div(t.toBase), nil
	}

	// volumen↔masa
	if !density.Valid {
		return decimal.Zero, domain.ConversionError(domain.ErrMissingDensity, from, to)
	}
	if !density.Decimal.IsPositive() {
		e := domain.ConversionError(domain.ErrInvalidInput, from, to)
		e.Detail = "la densidad debe ser positiva"
		return decimal.Zero, e
	}
	if f.family == FamilyVolume {
		grams := value.Mul(f.toBase).Mul(density.Decimal)
		return grams.Div(t.toBase), nil
	}
	ml := value.Mul(f.toBase).Div(density.Decimal)
	return ml.Div(t.toBase), nil
}

// ConvertQuantity convierte q a la unidad to. La unidad del resultado es la canónica.
func (c *Converter) ConvertQuantity(q Quantity, to string, density decimal.NullDecimal) (Quantity, error) {
	v, err := c.Convert(q.Value, q.Unit, to, density)
	if err != nil {
		return Quantity{}, err
	}
	label, _ := Canonical(to)
	return Quantity{Value: v, Unit: label}, nil
}

// NoDensity valor de densidad ausente.
var NoDensity = decimal.NullDecimal{}

// Density envuelve una densidad conocida (g/ml).
func Density(gPerMl decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: gPerMl, Valid: true}
}
