package dto

import "github.com/shopspring/decimal"

// ConvertRequest body para POST /api/units/convert.
type ConvertRequest struct {
	Value   decimal.Decimal  `json:"value"`
	From    string           `json:"from"`
	To      string           `json:"to"`
	Density *decimal.Decimal `json:"density,omitempty"` // g/ml, solo volumen <-> masa
}

// UnitDTO unidad canónica con su factor a la unidad base (nil en unidades de conteo).
type UnitDTO struct {
	Label  string           `json:"label"`
	Factor *decimal.Decimal `json:"factor,omitempty"`
}

// UnitFamilyDTO tabla de una familia de unidades.
type UnitFamilyDTO struct {
	Family string    `json:"family"`
	Base   string    `json:"base,omitempty"`
	Units  []UnitDTO `json:"units"`
}
