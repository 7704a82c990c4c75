// Package units valida y convierte cantidades entre las tres familias de unidades
// usadas en el laboratorio: volumen, masa y conteo.
package units

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Family familia física de una unidad. Cada unidad pertenece a una sola familia.
type Family string

const (
	FamilyVolume Family = "volume"
	FamilyMass   Family = "mass"
	FamilyCount  Family = "count"
)

// Etiquetas canónicas.
const (
	Microlitre = "µl"
	Millilitre = "ml"
	Litre      = "l"

	Milligram = "mg"
	Gram      = "g"
	Kilogram  = "kg"

	Box    = "box"
	Kit    = "kit"
	Sachet = "sachet"
	Vial   = "vial"
	Tube   = "tube"
	Case   = "case"
	Test   = "test"
)

type unitDef struct {
	label  string
	family Family
	toBase decimal.Decimal // ml para volumen, g para masa; cero en conteo
}

// definitions en el orden en que se listan por API.
var definitions = []unitDef{
	{Microlitre, FamilyVolume, decimal.New(1, -3)},
	{Millilitre, FamilyVolume, decimal.NewFromInt(1)},
	{Litre, FamilyVolume, decimal.NewFromInt(1000)},

	{Milligram, FamilyMass, decimal.New(1, -3)},
	{Gram, FamilyMass, decimal.NewFromInt(1)},
	{Kilogram, FamilyMass, decimal.NewFromInt(1000)},

	{Box, FamilyCount, decimal.Zero},
	{Kit, FamilyCount, decimal.Zero},
	{Sachet, FamilyCount, decimal.Zero},
	{Vial, FamilyCount, decimal.Zero},
	{Tube, FamilyCount, decimal.Zero},
	{Case, FamilyCount, decimal.Zero},
	{Test, FamilyCount, decimal.Zero},
}

// aliases etiquetas alternativas aceptadas (formularios en francés, "u" por "µ").
var aliases = map[string]string{
	"ul":      Microlitre,
	"boîte":   Box,
	"boite":   Box,
	"flacon":  Vial,
	"coffret": Case,
	"tests":   Test,
}

var lookup = buildLookup()

func buildLookup() map[string]unitDef {
	m := make(map[string]unitDef, len(definitions)+len(aliases))
	byLabel := make(map[string]unitDef, len(definitions))
	for _, d := range definitions {
		m[Normalize(d.label)] = d
		byLabel[d.label] = d
	}
	for alias, label := range aliases {
		m[Normalize(alias)] = byLabel[label]
	}
	return m
}

// Normalize aplica NFKC y case folding a una etiqueta de unidad. Así "ML", "µl"
// (signo micro) y "μl" (mu griega) resuelven a la misma clave.
func Normalize(label string) string {
	s := norm.NFKC.String(strings.TrimSpace(label))
	return cases.Fold().String(s)
}

func resolve(label string) (unitDef, bool) {
	d, ok := lookup[Normalize(label)]
	return d, ok
}

// Canonical devuelve la etiqueta canónica de label.
func Canonical(label string) (string, bool) {
	d, ok := resolve(label)
	if !ok {
		return "", false
	}
	return d.label, true
}

// FamilyOf devuelve la familia de label.
func FamilyOf(label string) (Family, bool) {
	d, ok := resolve(label)
	if !ok {
		return "", false
	}
	return d.family, true
}

// UnitInfo describe una unidad canónica. Factor es nil para unidades de conteo.
type UnitInfo struct {
	Label  string
	Factor *decimal.Decimal
}

// FamilyUnits tabla de una familia con su unidad base (vacía en conteo).
type FamilyUnits struct {
	Family Family
	Base   string
	Units  []UnitInfo
}

// Families lista las tablas de unidades. Cada llamada devuelve copias nuevas.
func Families() []FamilyUnits {
	out := []FamilyUnits{
		{Family: FamilyVolume, Base: Millilitre},
		{Family: FamilyMass, Base: Gram},
		{Family: FamilyCount},
	}
	for _, d := range definitions {
		info := UnitInfo{Label: d.label}
		if d.family != FamilyCount {
			f := d.toBase
			info.Factor = &f
		}
		for i := range out {
			if out[i].Family == d.family {
				out[i].Units = append(out[i].Units, info)
			}
		}
	}
	return out
}
