package planning

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// StockSufficient centinela de QAC cuando el punto de pedido es <= 0.
const StockSufficient = "stock sufficient"

// OrderQuantity QAC: número de conditionnements a pedir, o stock suficiente.
type OrderQuantity struct {
	Packagings int64
	Sufficient bool
}

func (q OrderQuantity) String() string {
	if q.Sufficient {
		return StockSufficient
	}
	return strconv.FormatInt(q.Packagings, 10)
}

// Breakdown componentes de la CMA, todos en la unidad destino.
type Breakdown struct {
	Consumption  decimal.Decimal
	Calibration  decimal.Decimal
	Control      decimal.Decimal
	CriticalLoss decimal.Decimal
	Confirmation decimal.Decimal
	Dilution     decimal.Decimal

	Calibrations decimal.Decimal // número de calibraciones en el periodo
	Controls     decimal.Decimal // número de controles en el periodo
}

// PlanResult resultado de un cálculo. Se produce completo o no se produce.
type PlanResult struct {
	Unit          string // unidad destino (la del conditionnement)
	PackagingSize decimal.Decimal
	PeriodDays    decimal.Decimal
	LeadTimeDays  decimal.Decimal

	Breakdown Breakdown

	CMA decimal.Decimal // consumo medio ajustado del periodo
	CMJ decimal.Decimal // consumo medio diario
	ROP decimal.Decimal // punto de pedido
	QAC OrderQuantity
}

// LabeledValue valor listo para mostrar o exportar.
type LabeledValue struct {
	Label string
	Value string
	Unit  string
}

// Labeled devuelve CMA, CMJ, ROP y QAC como pares valor+unidad (dos decimales).
func (r PlanResult) Labeled() []LabeledValue {
	qac := LabeledValue{Label: "QAC", Value: r.QAC.String()}
	if !r.QAC.Sufficient {
		qac.Unit = fmt.Sprintf("x %s %s", r.PackagingSize.String(), r.Unit)
	}
	return []LabeledValue{
		{Label: "CMA", Value: r.CMA.StringFixed(2), Unit: r.Unit},
		{Label: "CMJ", Value: r.CMJ.StringFixed(2), Unit: r.Unit + "/day"},
		{Label: "ROP", Value: r.ROP.StringFixed(2), Unit: r.Unit},
		qac,
	}
}
