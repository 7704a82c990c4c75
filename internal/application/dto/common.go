package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error HTTP. Field indica el campo de entrada culpable, si lo hay.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// QuantityDTO valor con su unidad declarada.
type QuantityDTO struct {
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
}

// HealthResponse cuerpo de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
