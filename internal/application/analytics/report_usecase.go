package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/vitastock/vitastock-api/internal/application/dto"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

const reportMaxRows = 100 // filas por sección en el reporte PDF

// ExpiryReportData datos del reporte de vencimientos.
type ExpiryReportData struct {
	GeneratedAt time.Time
	KPIs        dto.KPIsDTO
	Expired     []repository.BatchAlertResult
	Expiring    []repository.BatchAlertResult
}

// ExpiryReportGenerator renderiza el reporte de vencimientos (PDF).
type ExpiryReportGenerator interface {
	GenerateExpiryReport(ctx context.Context, data *ExpiryReportData) ([]byte, error)
}

// ReportUseCase genera el reporte descargable de vencimientos: KPIs del día,
// lotes vencidos y lotes que vencen en los próximos 30 días.
type ReportUseCase struct {
	dashboard     *DashboardUseCase
	dashboardRepo repository.DashboardRepository
	generator     ExpiryReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard *DashboardUseCase, dashboardRepo repository.DashboardRepository, generator ExpiryReportGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, dashboardRepo: dashboardRepo, generator: generator}
}

// GenerateExpiryReport arma los datos y devuelve los bytes del PDF.
func (uc *ReportUseCase) GenerateExpiryReport(ctx context.Context) ([]byte, error) {
	today := startOfDay(time.Now())

	kpis, err := uc.dashboard.GetKPIs(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: kpis: %w", err)
	}
	expired, err := uc.dashboardRepo.ListExpiredBatches(ctx, today, reportMaxRows)
	if err != nil {
		return nil, fmt.Errorf("reporte: lotes vencidos: %w", err)
	}
	expiring, err := uc.dashboardRepo.ListExpiringBatches(ctx, today, expiringMonthDays, reportMaxRows)
	if err != nil {
		return nil, fmt.Errorf("reporte: lotes por vencer: %w", err)
	}

	return uc.generator.GenerateExpiryReport(ctx, &ExpiryReportData{
		GeneratedAt: time.Now(),
		KPIs:        *kpis,
		Expired:     expired,
		Expiring:    expiring,
	})
}
