package dto

import "github.com/shopspring/decimal"

// PeriodDTO duración en una unidad de tiempo (day, week, month o sus alias).
type PeriodDTO struct {
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
}

// ScheduleDTO actividad recurrente: frequency veces por per, cada una consume quantity.
type ScheduleDTO struct {
	Frequency decimal.Decimal `json:"frequency"`
	Per       string          `json:"per"`
	Quantity  QuantityDTO     `json:"quantity"`
}

// LossRatesDTO porcentajes de pérdidas críticas (0–100).
type LossRatesDTO struct {
	Manipulation  decimal.Decimal `json:"manipulation"`
	Contamination decimal.Decimal `json:"contamination"`
	Degradation   decimal.Decimal `json:"degradation"`
}

// ConfirmationDTO tests de confirmación.
type ConfirmationDTO struct {
	RepeatPercent decimal.Decimal `json:"repeat_percent"`
	QtyPerRepeat  QuantityDTO     `json:"qty_per_repeat"`
}

// PlanRequest body para POST /api/planning/plan. Los nueve primeros campos son obligatorios.
type PlanRequest struct {
	TestCount    *decimal.Decimal `json:"test_count"`
	QtyPerTest   *QuantityDTO     `json:"qty_per_test"`
	Period       *PeriodDTO       `json:"period"`
	Calibration  *ScheduleDTO     `json:"calibration"`
	LossBase     *QuantityDTO     `json:"loss_base"`
	Confirmation *ConfirmationDTO `json:"confirmation"`
	CurrentStock *QuantityDTO     `json:"current_stock"`
	LeadTime     *PeriodDTO       `json:"lead_time"`
	Packaging    *QuantityDTO     `json:"packaging"`

	LossRates   *LossRatesDTO    `json:"loss_rates,omitempty"`
	Control     *ScheduleDTO     `json:"control,omitempty"`
	Dilution    *QuantityDTO     `json:"dilution,omitempty"`
	UnitContent *QuantityDTO     `json:"unit_content,omitempty"` // contenido de una unidad de conteo
	Density     *decimal.Decimal `json:"density,omitempty"`
}

// BreakdownDTO componentes de la CMA en la unidad destino.
type BreakdownDTO struct {
	Consumption  decimal.Decimal `json:"consumption"`
	Calibration  decimal.Decimal `json:"calibration"`
	Control      decimal.Decimal `json:"control"`
	CriticalLoss decimal.Decimal `json:"critical_loss"`
	Confirmation decimal.Decimal `json:"confirmation"`
	Dilution     decimal.Decimal `json:"dilution"`
	Calibrations decimal.Decimal `json:"calibrations"`
	Controls     decimal.Decimal `json:"controls"`
}

// LabeledValueDTO valor formateado con su unidad.
type LabeledValueDTO struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// PlanResponse resultado de un cálculo de pedido.
type PlanResponse struct {
	CalculationID string            `json:"calculation_id"`
	Unit          string            `json:"unit"`
	PeriodDays    decimal.Decimal   `json:"period_days"`
	LeadTimeDays  decimal.Decimal   `json:"lead_time_days"`
	Breakdown     BreakdownDTO      `json:"breakdown"`
	CMA           decimal.Decimal   `json:"cma"`
	CMJ           decimal.Decimal   `json:"cmj"`
	ROP           decimal.Decimal   `json:"rop"`
	QAC           string            `json:"qac"`        // número de conditionnements o "stock sufficient"
	Packagings    int64             `json:"packagings"` // 0 si el stock es suficiente
	Sufficient    bool              `json:"stock_sufficient"`
	Results       []LabeledValueDTO `json:"results"`
}

// ContainerRequest body para POST /api/planning/tests-per-container.
type ContainerRequest struct {
	QtyPerTest QuantityDTO      `json:"qty_per_test"`
	Capacity   QuantityDTO      `json:"capacity"`
	DeadVolume QuantityDTO      `json:"dead_volume"`
	Tool       string           `json:"tool"` // analyzer | manual
	Density    *decimal.Decimal `json:"density,omitempty"`
}

// ContainerResponse tests completos por contenedor.
type ContainerResponse struct {
	Tests     int64       `json:"tests"`
	UsableQty QuantityDTO `json:"usable_qty"`
}
