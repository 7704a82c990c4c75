package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/application/dto"
	"github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain"
	dominventory "github.com/SofyMastertech/Gestion-Stock-CMA/internal/domain/inventory"
	"github.com/SofyMastertech/Gestion-Stock-CMA/pkg/logger"
)

// LotUseCase métricas de consumo por lote e informes promediados por analito.
type LotUseCase struct {
	log *logger.Logger
}

// NewLotUseCase construye el caso de uso de lotes.
func NewLotUseCase(log *logger.Logger) *LotUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &LotUseCase{log: log}
}

// LotUsage calcula volumen usado, volumen por test y pérdida residual de un lote.
func (uc *LotUseCase) LotUsage(ctx context.Context, in dto.LotUsageRequest) (*dto.LotUsageResponse, error) {
	u, err := dominventory.ComputeLotUsage(in.TotalVolume, in.RemainingVolume, in.TestsPerformed)
	if err != nil {
		uc.log.Warn().Err(err).Str("field", domain.FieldOf(err)).Msg("uso de lote rechazado")
		return nil, err
	}
	return &dto.LotUsageResponse{
		UsedVolume:    u.UsedVolume,
		VolumePerTest: fromNull(u.VolumePerTest),
		ResidualLoss:  u.ResidualLoss,
		LossPercent:   u.LossPercent,
	}, nil
}

// TestUsage compara tests estimados y realizados.
func (uc *LotUseCase) TestUsage(ctx context.Context, in dto.TestUsageRequest) (*dto.TestUsageResponse, error) {
	u, err := dominventory.ComputeTestUsage(in.EstimatedTests, in.PerformedTests)
	if err != nil {
		uc.log.Warn().Err(err).Str("field", domain.FieldOf(err)).Msg("uso de tests rechazado")
		return nil, err
	}
	return &dto.TestUsageResponse{
		UsageFactor: u.UsageFactor,
		LostTests:   u.LostTests,
		LossPercent: u.LossPercent,
	}, nil
}

// Averages agrupa las filas por analito y promedia las columnas numéricas.
func (uc *LotUseCase) Averages(ctx context.Context, in dto.AveragesRequest) (*dto.AveragesResponse, error) {
	records := make([]dominventory.LotRecord, 0, len(in.Records))
	for i, r := range in.Records {
		if strings.TrimSpace(r.Analyte) == "" {
			return nil, domain.FieldError(domain.ErrMissingRequiredField, fmt.Sprintf("records[%d].analyte", i), "")
		}
		records = append(records, toLotRecord(r))
	}

	avgs := dominventory.AverageByAnalyte(records)
	rows := make([]dto.AnalyteAverageDTO, 0, len(avgs))
	for _, a := range avgs {
		rows = append(rows, dto.AnalyteAverageDTO{LotRecordDTO: toLotRecordDTO(a.LotRecord), Lots: a.Lots})
	}
	uc.log.Debug().Int("records", len(records)).Int("rows", len(rows)).Msg("promedios por analito")
	return &dto.AveragesResponse{Total: len(rows), Rows: rows}, nil
}

func toLotRecord(r dto.LotRecordDTO) dominventory.LotRecord {
	return dominventory.LotRecord{
		Analyte:         r.Analyte,
		LotNumber:       r.LotNumber,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		TotalVolume:     toNull(r.TotalVolume),
		RemainingVolume: toNull(r.RemainingVolume),
		TestsPerformed:  toNull(r.TestsPerformed),
		VolumePerTest:   toNull(r.VolumePerTest),
		EstimatedTests:  toNull(r.EstimatedTests),
		LostTests:       toNull(r.LostTests),
		UsageFactor:     toNull(r.UsageFactor),
		LossPercent:     toNull(r.LossPercent),
	}
}

func toLotRecordDTO(r dominventory.LotRecord) dto.LotRecordDTO {
	return dto.LotRecordDTO{
		Analyte:         r.Analyte,
		LotNumber:       r.LotNumber,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		TotalVolume:     fromNull(r.TotalVolume),
		RemainingVolume: fromNull(r.RemainingVolume),
		TestsPerformed:  fromNull(r.TestsPerformed),
		VolumePerTest:   fromNull(r.VolumePerTest),
		EstimatedTests:  fromNull(r.EstimatedTests),
		LostTests:       fromNull(r.LostTests),
		UsageFactor:     fromNull(r.UsageFactor),
		LossPercent:     fromNull(r.LossPercent),
	}
}

func toNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func fromNull(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
