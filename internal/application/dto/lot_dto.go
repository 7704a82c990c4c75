package dto

import "github.com/shopspring/decimal"

// LotUsageRequest body para POST /api/lots/usage.
type LotUsageRequest struct {
	TotalVolume     decimal.Decimal `json:"total_volume"`
	RemainingVolume decimal.Decimal `json:"remaining_volume"`
	TestsPerformed  int64           `json:"tests_performed"`
}

// LotUsageResponse métricas de un lote.
type LotUsageResponse struct {
	UsedVolume    decimal.Decimal  `json:"used_volume"`
	VolumePerTest *decimal.Decimal `json:"volume_per_test"` // null si no hubo tests
	ResidualLoss  decimal.Decimal  `json:"residual_loss"`
	LossPercent   decimal.Decimal  `json:"loss_percent"`
}

// TestUsageRequest body para POST /api/tests/usage.
type TestUsageRequest struct {
	EstimatedTests int64 `json:"estimated_tests"`
	PerformedTests int64 `json:"performed_tests"`
}

// TestUsageResponse aprovechamiento medido en tests.
type TestUsageResponse struct {
	UsageFactor decimal.Decimal `json:"usage_factor"`
	LostTests   int64           `json:"lost_tests"`
	LossPercent decimal.Decimal `json:"loss_percent"`
}

// LotRecordDTO fila de informe por lote; las columnas numéricas son opcionales.
type LotRecordDTO struct {
	Analyte         string           `json:"analyte"`
	LotNumber       string           `json:"lot_number,omitempty"`
	StartDate       string           `json:"start_date,omitempty"`
	EndDate         string           `json:"end_date,omitempty"`
	TotalVolume     *decimal.Decimal `json:"total_volume,omitempty"`
	RemainingVolume *decimal.Decimal `json:"remaining_volume,omitempty"`
	TestsPerformed  *decimal.Decimal `json:"tests_performed,omitempty"`
	VolumePerTest   *decimal.Decimal `json:"volume_per_test,omitempty"`
	EstimatedTests  *decimal.Decimal `json:"estimated_tests,omitempty"`
	LostTests       *decimal.Decimal `json:"lost_tests,omitempty"`
	UsageFactor     *decimal.Decimal `json:"usage_factor,omitempty"`
	LossPercent     *decimal.Decimal `json:"loss_percent,omitempty"`
}

// AveragesRequest body para POST /api/reports/averages.
type AveragesRequest struct {
	Records []LotRecordDTO `json:"records"`
}

// AnalyteAverageDTO fila agregada por analito.
type AnalyteAverageDTO struct {
	LotRecordDTO
	Lots int `json:"lots"`
}

// AveragesResponse filas agregadas en orden de primera aparición.
type AveragesResponse struct {
	Total int                 `json:"total"`
	Rows  []AnalyteAverageDTO `json:"rows"`
}
