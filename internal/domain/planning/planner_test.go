package planning_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain/planning"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain/units"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de referencia:
//   100 tests x 2 ml, calibración 1/día x 1 ml durante 10 días,
//   5 % de pérdidas de manipulación sobre 500 ml, 2 % de confirmación a 1 ml,
//   stock 50 ml, entrega 5 días, conditionnement de 100 ml.
//
//   CMA = 200 + 10 + 25 + 2 = 237 ml ; CMJ = 23.7 ml/día
//   ROP = 237 + 118.5 - 50 = 305.5 ml ; QAC = ceil(3.055) = 4
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func qty(v, unit string) *units.Quantity {
	q := units.NewQuantity(dec(v), unit)
	return &q
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, what string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: esperado %s, obtenido %s", what, want, got.String())
}

func scenario() planning.ConsumptionInputs {
	testCount := dec("100")
	return planning.ConsumptionInputs{
		TestCount:  &testCount,
		QtyPerTest: qty("2", "ml"),
		Period:     &planning.Period{Value: dec("10"), Unit: planning.Day},
		Calibration: &planning.Schedule{
			Frequency: dec("1"),
			Per:       planning.Day,
			Quantity:  units.NewQuantity(dec("1"), "ml"),
		},
		LossBase:  qty("500", "ml"),
		LossRates: planning.LossRates{Manipulation: dec("5")},
		Confirmation: &planning.Confirmation{
			RepeatPercent: dec("2"),
			QtyPerRepeat:  units.NewQuantity(dec("1"), "ml"),
		},
		CurrentStock: qty("50", "ml"),
		LeadTime:     &planning.Period{Value: dec("5"), Unit: planning.Day},
		Packaging:    qty("100", "ml"),
	}
}

func newPlanner() *planning.Planner {
	return planning.NewPlanner(units.NewConverter())
}

func TestPlan_EscenarioReferencia(t *testing.T) {
	res, err := newPlanner().Plan(scenario())
	require.NoError(t, err)

	assert.Equal(t, "ml", res.Unit)
	assertDecimal(t, "200", res.Breakdown.Consumption, "consumo")
	assertDecimal(t, "10", res.Breakdown.Calibrations, "número de calibraciones")
	assertDecimal(t, "10", res.Breakdown.Calibration, "calibración")
	assertDecimal(t, "25", res.Breakdown.CriticalLoss, "pérdidas críticas")
	assertDecimal(t, "2", res.Breakdown.Confirmation, "confirmación")
	assertDecimal(t, "0", res.Breakdown.Control, "control")

	assertDecimal(t, "237", res.CMA, "CMA")
	assertDecimal(t, "23.7", res.CMJ, "CMJ")
	assertDecimal(t, "305.5", res.ROP, "ROP")
	assert.False(t, res.QAC.Sufficient)
	assert.Equal(t, int64(4), res.QAC.Packagings)

	labeled := res.Labeled()
	require.Len(t, labeled, 4)
	assert.Equal(t, planning.LabeledValue{Label: "CMA", Value: "237.00", Unit: "ml"}, labeled[0])
	assert.Equal(t, planning.LabeledValue{Label: "CMJ", Value: "23.70", Unit: "ml/day"}, labeled[1])
	assert.Equal(t, planning.LabeledValue{Label: "ROP", Value: "305.50", Unit: "ml"}, labeled[2])
	assert.Equal(t, planning.LabeledValue{Label: "QAC", Value: "4", Unit: "x 100 ml"}, labeled[3])
}

// TestPlan_UnidadesMezcladas verifica que cada campo se normaliza a la unidad del
// conditionnement antes de sumar.
func TestPlan_UnidadesMezcladas(t *testing.T) {
	in := scenario()
	in.QtyPerTest = qty("2000", "µl")
	in.Calibration.Quantity = units.NewQuantity(dec("0.001"), "L")
	in.LossBase = qty("0.5", "l")
	in.CurrentStock = qty("0.05", "l")

	res, err := newPlanner().Plan(in)
	require.NoError(t, err)
	assertDecimal(t, "237", res.CMA, "CMA")
	assertDecimal(t, "305.5", res.ROP, "ROP")
	assert.Equal(t, int64(4), res.QAC.Packagings)
}

func TestPlan_DestinoEnLitros(t *testing.T) {
	in := scenario()
	in.Packaging = qty("0.1", "l")

	res, err := newPlanner().Plan(in)
	require.NoError(t, err)
	assert.Equal(t, "l", res.Unit)
	assertDecimal(t, "0.237", res.CMA, "CMA")
	assert.Equal(t, int64(4), res.QAC.Packagings)
}

func TestPlan_StockSuficiente(t *testing.T) {
	for _, stock := range []string{"1000", "355.5"} {
		in := scenario()
		in.CurrentStock = qty(stock, "ml")

		res, err := newPlanner().Plan(in)
		require.NoError(t, err)
		assert.False(t, res.ROP.IsPositive(), "ROP con stock %s", stock)
		assert.True(t, res.QAC.Sufficient, "ROP <= 0 debe dar el centinela")
		assert.Zero(t, res.QAC.Packagings)
		assert.Equal(t, planning.StockSufficient, res.QAC.String())
		assert.Equal(t, planning.LabeledValue{Label: "QAC", Value: planning.StockSufficient}, res.Labeled()[3])
	}
}

// ── Campos requeridos ─────────────────────────────────────────────────────────

func TestPlan_CampoRequeridoAusente(t *testing.T) {
	cases := map[string]func(*planning.ConsumptionInputs){
		planning.FieldTestCount:    func(in *planning.ConsumptionInputs) { in.TestCount = nil },
		planning.FieldQtyPerTest:   func(in *planning.ConsumptionInputs) { in.QtyPerTest = nil },
		planning.FieldPeriod:       func(in *planning.ConsumptionInputs) { in.Period = nil },
		planning.FieldCalibration:  func(in *planning.ConsumptionInputs) { in.Calibration = nil },
		planning.FieldLossBase:     func(in *planning.ConsumptionInputs) { in.LossBase = nil },
		planning.FieldConfirmation: func(in *planning.ConsumptionInputs) { in.Confirmation = nil },
		planning.FieldCurrentStock: func(in *planning.ConsumptionInputs) { in.CurrentStock = nil },
		planning.FieldLeadTime:     func(in *planning.ConsumptionInputs) { in.LeadTime = nil },
		planning.FieldPackaging:    func(in *planning.ConsumptionInputs) { in.Packaging = nil },
	}
	for field, drop := range cases {
		t.Run(field, func(t *testing.T) {
			in := scenario()
			drop(&in)
			res, err := newPlanner().Plan(in)
			require.ErrorIs(t, err, domain.ErrMissingRequiredField)
			assert.Nil(t, res, "nunca se devuelve un resultado parcial")
			assert.Equal(t, field, domain.FieldOf(err))
		})
	}
}

// ── Errores de unidades ───────────────────────────────────────────────────────

func TestPlan_UnidadesIncompatiblesNombraElCampo(t *testing.T) {
	in := scenario()
	in.LossBase = qty("5", "box")

	res, err := newPlanner().Plan(in)
	require.ErrorIs(t, err, domain.ErrIncompatibleUnits)
	assert.Nil(t, res)

	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, planning.FieldLossBase, de.Field)
	assert.Equal(t, "box", de.From)
	assert.Equal(t, "ml", de.To)
}

func TestPlan_UnidadInvalida(t *testing.T) {
	in := scenario()
	in.CurrentStock = qty("5", "gallon")
	_, err := newPlanner().Plan(in)
	require.ErrorIs(t, err, domain.ErrInvalidUnit)
	assert.Equal(t, planning.FieldCurrentStock, domain.FieldOf(err))

	in = scenario()
	in.Packaging = qty("100", "cc")
	_, err = newPlanner().Plan(in)
	require.ErrorIs(t, err, domain.ErrInvalidUnit)
	assert.Equal(t, planning.FieldPackaging, domain.FieldOf(err))
}

func TestPlan_RutaDensidad(t *testing.T) {
	in := scenario()
	in.QtyPerTest = qty("2", "g")

	_, err := newPlanner().Plan(in)
	require.ErrorIs(t, err, domain.ErrMissingDensity, "sin densidad no se supone 1.0")
	assert.Equal(t, planning.FieldQtyPerTest, domain.FieldOf(err))

	in.Density = units.Density(dec("1"))
	res, err := newPlanner().Plan(in)
	require.NoError(t, err)
	assertDecimal(t, "237", res.CMA, "CMA con densidad 1")

	in.Density = units.Density(dec("2"))
	res, err = newPlanner().Plan(in)
	require.NoError(t, err)
	assertDecimal(t, "100", res.Breakdown.Consumption, "2 g a 2 g/ml = 1 ml por test")
}

// ── División por cero ─────────────────────────────────────────────────────────

func TestPlan_PeriodoCero(t *testing.T) {
	in := scenario()
	in.Period.Value = decimal.Zero
	res, err := newPlanner().Plan(in)
	require.ErrorIs(t, err, domain.ErrDivisionByZero)
	assert.Nil(t, res)
	assert.Equal(t, planning.FieldPeriod, domain.FieldOf(err))
}

func TestPlan_ConditionnementCero(t *testing.T) {
	in := scenario()
	in.Packaging = qty("0", "ml")
	_, err := newPlanner().Plan(in)
	require.ErrorIs(t, err, domain.ErrDivisionByZero)
	assert.Equal(t, planning.FieldPackaging, domain.FieldOf(err))
}

// ── Destino en unidades de conteo ─────────────────────────────────────────────

func countScenario(packaging, content *units.Quantity, perTest *units.Quantity, tests string) planning.ConsumptionInputs {
	testCount := dec(tests)
	return planning.ConsumptionInputs{
		TestCount:    &testCount,
		QtyPerTest:   perTest,
		Period:       &planning.Period{Value: dec("30"), Unit: planning.Day},
		Calibration:  &planning.Schedule{Frequency: decimal.Zero, Per: planning.Day, Quantity: *perTest},
		LossBase:     qty("0", perTest.Unit),
		Confirmation: &planning.Confirmation{RepeatPercent: decimal.Zero, QtyPerRepeat: *perTest},
		CurrentStock: qty("2", packaging.Unit),
		LeadTime:     &planning.Period{Value: decimal.Zero, Unit: planning.Day},
		Packaging:    packaging,
		UnitContent:  content,
	}
}

func TestPlan_CajasDeTests(t *testing.T) {
	in := countScenario(qty("1", "boîte"), qty("100", "test"), qty("1", "test"), "1000")

	res, err := newPlanner().Plan(in)
	require.NoError(t, err)
	assert.Equal(t, "box", res.Unit)
	assertDecimal(t, "10", res.Breakdown.Consumption, "1000 tests / 100 tests por caja")
	assertDecimal(t, "8", res.ROP, "ROP")
	assert.Equal(t, int64(8), res.QAC.Packagings)
}

func TestPlan_Viales(t *testing.T) {
	in := countScenario(qty("1", "flacon"), qty("5", "ml"), qty("50", "µl"), "200")
	in.CurrentStock = qty("0", "vial")

	res, err := newPlanner().Plan(in)
	require.NoError(t, err)
	assert.Equal(t, "vial", res.Unit)
	assertDecimal(t, "2", res.Breakdown.Consumption, "200 x 0.05 ml / 5 ml")
	assert.Equal(t, int64(2), res.QAC.Packagings)
}

func TestPlan_ConteoSinContenido(t *testing.T) {
	in := countScenario(qty("1", "vial"), nil, qty("50", "µl"), "200")
	_, err := newPlanner().Plan(in)
	require.ErrorIs(t, err, domain.ErrIncompatibleUnits)
	assert.Equal(t, planning.FieldQtyPerTest, domain.FieldOf(err))
}

func TestPlan_ContenidoCero(t *testing.T) {
	in := countScenario(qty("1", "box"), qty("0", "test"), qty("1", "test"), "200")
	_, err := newPlanner().Plan(in)
	require.ErrorIs(t, err, domain.ErrDivisionByZero)
	assert.Equal(t, planning.FieldUnitContent, domain.FieldOf(err))
}

// ── Calendarios, control y dilución ───────────────────────────────────────────

func TestPlan_CalibracionSemanal(t *testing.T) {
	in := scenario()
	in.Period = &planning.Period{Value: dec("1"), Unit: planning.Month}
	in.Calibration = &planning.Schedule{Frequency: dec("2"), Per: planning.Week, Quantity: units.NewQuantity(dec("1"), "ml")}

	res, err := newPlanner().Plan(in)
	require.NoError(t, err)
	want := dec("30").Div(dec("7")).Mul(dec("2"))
	assert.True(t, want.Equal(res.Breakdown.Calibrations), "30/7 semanas x 2, sin redondear")
	assertDecimal(t, "30", res.PeriodDays, "días del periodo")
}

func TestPlan_CalibracionDiariaSoloDiasCompletos(t *testing.T) {
	in := scenario()
	in.Period.Value = dec("10.5")
	in.Calibration.Frequency = dec("3")

	res, err := newPlanner().Plan(in)
	require.NoError(t, err)
	assertDecimal(t, "30", res.Breakdown.Calibrations, "floor(10.5) x 3")
}

func TestPlan_ControlYDilucion(t *testing.T) {
	in := scenario()
	in.Control = &planning.Schedule{Frequency: dec("1"), Per: planning.Week, Quantity: units.NewQuantity(dec("0.5"), "ml")}
	in.Period = &planning.Period{Value: dec("30"), Unit: planning.Day}
	in.Dilution = qty("250", "µl")

	res, err := newPlanner().Plan(in)
	require.NoError(t, err)
	assertDecimal(t, "4", res.Breakdown.Controls, "solo semanas completas")
	assertDecimal(t, "2", res.Breakdown.Control, "control")
	assertDecimal(t, "0.25", res.Breakdown.Dilution, "dilución")
	assertDecimal(t, "30", res.Breakdown.Calibrations, "calibraciones diarias")
	assertDecimal(t, "259.25", res.CMA, "200 + 30 + 2 + 25 + 2 + 0.25")
}

func TestPlan_PorcentajesFueraDeRango(t *testing.T) {
	in := scenario()
	in.LossRates.Degradation = dec("101")
	_, err := newPlanner().Plan(in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, planning.FieldLossRates, domain.FieldOf(err))

	in = scenario()
	in.Confirmation.RepeatPercent = dec("-1")
	_, err = newPlanner().Plan(in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, planning.FieldConfirmation, domain.FieldOf(err))
}

func TestPlan_UnidadDeTiempoDesconocida(t *testing.T) {
	in := scenario()
	in.LeadTime.Unit = "fortnight"
	_, err := newPlanner().Plan(in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, planning.FieldLeadTime, domain.FieldOf(err))
}

func TestParseTimeUnit(t *testing.T) {
	for label, want := range map[string]planning.TimeUnit{
		"Jours": planning.Day, "day": planning.Day,
		"Semaine": planning.Week, "weeks": planning.Week,
		"Mois": planning.Month, "MONTH": planning.Month,
	} {
		got, err := planning.ParseTimeUnit(label)
		require.NoError(t, err, label)
		assert.Equal(t, want, got, label)
	}
	_, err := planning.ParseTimeUnit("año")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestPlan_Concurrente el planificador no comparte estado entre llamadas.
func TestPlan_Concurrente(t *testing.T) {
	p := newPlanner()
	var wg sync.WaitGroup
	results := make([]*planning.PlanResult, 32)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = p.Plan(scenario())
		}(i)
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i])
		assertDecimal(t, "305.5", results[i].ROP, "ROP")
	}
}
