// Package analytics contiene los casos de uso de lectura para el panel de
// control: KPIs de vencimiento, series temporales y acciones prioritarias.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vitastock/vitastock-api/internal/application/dto"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

const (
	dashboardTopCategories   = 6  // categorías en el gráfico de distribución
	dashboardPriorityActions = 10 // acciones prioritarias en el panel
	dashboardRecentMovements = 8  // movimientos recientes en el panel
	expiringSoonDays         = 7  // umbral "vence pronto"
	expiringMonthDays        = 30 // umbral "vence este mes"
	wasteWindowDays          = 30 // ventana de la tasa de merma
	calendarDays             = 365
)

// KPICache cachea los KPIs del panel con un TTL corto. Una implementación nil
// se interpreta como cache deshabilitado.
type KPICache interface {
	Get(ctx context.Context) (*dto.KPIsDTO, bool)
	Set(ctx context.Context, kpis *dto.KPIsDTO)
}

// DashboardUseCase genera el resumen del panel de control.
//
// Fuente de datos: DashboardRepository (consultas read-only). No muta lotes ni
// movimientos bajo ninguna circunstancia.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
	cache         KPICache
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository, cache KPICache) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo, cache: cache}
}

// GetSummary construye el DashboardSummaryDTO completo.
//
// Cuatro llamadas en paralelo:
//  1. GetKPIs               → contadores + tasa de merma
//  2. GetExpiryBuckets(90)  → series de 7, 30 y 90 días (una sola consulta)
//  3. GetCategoryDistribution(6)
//  4. acciones prioritarias + movimientos recientes
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	today := startOfDay(time.Now())

	type kpisResult struct {
		kpis *dto.KPIsDTO
		err  error
	}
	type bucketsResult struct {
		buckets []repository.ExpiryBucket
		err     error
	}
	type categoriesResult struct {
		categories []repository.CategoryCount
		err        error
	}
	type activityResult struct {
		actions   []dto.PriorityActionDTO
		movements []dto.MovementListItemResponse
		err       error
	}

	kpisCh := make(chan kpisResult, 1)
	bucketsCh := make(chan bucketsResult, 1)
	categoriesCh := make(chan categoriesResult, 1)
	activityCh := make(chan activityResult, 1)

	go func() {
		kpis, err := uc.GetKPIs(ctx)
		kpisCh <- kpisResult{kpis, err}
	}()
	go func() {
		buckets, err := uc.dashboardRepo.GetExpiryBuckets(ctx, today, 90)
		bucketsCh <- bucketsResult{buckets, err}
	}()
	go func() {
		categories, err := uc.dashboardRepo.GetCategoryDistribution(ctx, dashboardTopCategories)
		categoriesCh <- categoriesResult{categories, err}
	}()
	go func() {
		actions, err := uc.buildPriorityActions(ctx, today)
		if err != nil {
			activityCh <- activityResult{err: err}
			return
		}
		recent, err := uc.dashboardRepo.ListRecentMovements(ctx, dashboardRecentMovements)
		activityCh <- activityResult{actions: actions, movements: toMovementItems(recent), err: err}
	}()

	kpis := <-kpisCh
	buckets := <-bucketsCh
	categories := <-categoriesCh
	activity := <-activityCh

	if kpis.err != nil {
		return nil, fmt.Errorf("dashboard: kpis: %w", kpis.err)
	}
	if buckets.err != nil {
		return nil, fmt.Errorf("dashboard: serie de vencimientos: %w", buckets.err)
	}
	if categories.err != nil {
		return nil, fmt.Errorf("dashboard: distribución por categoría: %w", categories.err)
	}
	if activity.err != nil {
		return nil, fmt.Errorf("dashboard: actividad: %w", activity.err)
	}

	catLabels := make([]string, 0, len(categories.categories))
	catData := make([]int64, 0, len(categories.categories))
	for _, c := range categories.categories {
		catLabels = append(catLabels, c.Name)
		catData = append(catData, c.Total)
	}

	return &dto.DashboardSummaryDTO{
		KPIs:            *kpis.kpis,
		Series7:         buildSeries(today, 7, buckets.buckets),
		Series30:        buildSeries(today, 30, buckets.buckets),
		Series90:        buildSeries(today, 90, buckets.buckets),
		CategorySummary: dto.CategoryDistributionDTO{Labels: catLabels, Data: catData},
		PriorityActions: activity.actions,
		RecentMovements: activity.movements,
	}, nil
}

// GetKPIs calcula los contadores del panel. Si hay cache y tiene una entrada
// fresca, se devuelve esa con FromCache=true.
func (uc *DashboardUseCase) GetKPIs(ctx context.Context) (*dto.KPIsDTO, error) {
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx); ok {
			cached.FromCache = true
			return cached, nil
		}
	}
	today := startOfDay(time.Now())

	expired, err := uc.dashboardRepo.CountExpiredBatches(ctx, today)
	if err != nil {
		return nil, err
	}
	soon7, err := uc.dashboardRepo.CountBatchesExpiringWithin(ctx, today, expiringSoonDays)
	if err != nil {
		return nil, err
	}
	soon30, err := uc.dashboardRepo.CountBatchesExpiringWithin(ctx, today, expiringMonthDays)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.dashboardRepo.CountLowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	outflow, err := uc.dashboardRepo.GetOutflowTotals(ctx, today.AddDate(0, 0, -wasteWindowDays), today.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	kpis := &dto.KPIsDTO{
		ExpiredCount:  expired,
		Soon7Count:    soon7,
		Soon30Count:   soon30,
		LowStockCount: lowStock,
		WasteRatePct:  wasteRatePct(outflow),
		GeneratedAt:   time.Now().Format(time.RFC3339),
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, kpis)
	}
	return kpis, nil
}

// GetExpiryCalendar devuelve unidades que vencen por día durante el próximo año.
func (uc *DashboardUseCase) GetExpiryCalendar(ctx context.Context) (*dto.ExpiryCalendarDTO, error) {
	today := startOfDay(time.Now())
	buckets, err := uc.dashboardRepo.GetExpiryBuckets(ctx, today, calendarDays)
	if err != nil {
		return nil, err
	}
	days := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		days[b.Date.Format("2006-01-02")] = b.Total
	}
	return &dto.ExpiryCalendarDTO{Days: days}, nil
}

// buildPriorityActions arma el top de acciones: vencidos primero, luego
// próximos a vencer y por último productos bajo stock mínimo.
func (uc *DashboardUseCase) buildPriorityActions(ctx context.Context, today time.Time) ([]dto.PriorityActionDTO, error) {
	actions := make([]dto.PriorityActionDTO, 0, dashboardPriorityActions)

	expired, err := uc.dashboardRepo.ListExpiredBatches(ctx, today, dashboardPriorityActions)
	if err != nil {
		return nil, err
	}
	for _, b := range expired {
		actions = append(actions, dto.PriorityActionDTO{
			Type:     "vencido",
			Product:  b.ProductName,
			Location: b.LocationName,
			Date:     b.ExpiryDate.Format("2006-01-02"),
			Quantity: b.Quantity,
			BatchID:  b.BatchID,
		})
	}
	if len(actions) < dashboardPriorityActions {
		expiring, err := uc.dashboardRepo.ListExpiringBatches(ctx, today, expiringSoonDays, dashboardPriorityActions-len(actions))
		if err != nil {
			return nil, err
		}
		for _, b := range expiring {
			actions = append(actions, dto.PriorityActionDTO{
				Type:     "vence_pronto",
				Product:  b.ProductName,
				Location: b.LocationName,
				Date:     b.ExpiryDate.Format("2006-01-02"),
				Quantity: b.Quantity,
				BatchID:  b.BatchID,
			})
		}
	}
	if len(actions) < dashboardPriorityActions {
		low, err := uc.dashboardRepo.ListLowStockProducts(ctx, dashboardPriorityActions-len(actions))
		if err != nil {
			return nil, err
		}
		for _, p := range low {
			actions = append(actions, dto.PriorityActionDTO{
				Type:      "stock_bajo",
				Product:   p.ProductName,
				Location:  p.LocationName,
				Quantity:  p.TotalStock,
				ProductID: p.ProductID,
			})
		}
	}
	return actions, nil
}

// wasteRatePct merma / (merma + salidas) en porcentaje con 2 decimales.
// Sin salidas en la ventana, la tasa es "0.00".
func wasteRatePct(t repository.OutflowTotals) string {
	total := t.WasteUnits.Add(t.OutUnits)
	if total.IsZero() {
		return "0.00"
	}
	return t.WasteUnits.Div(total).Mul(decimal.NewFromInt(100)).Round(2).StringFixed(2)
}

// buildSeries rellena los días sin vencimientos con 0 para que el gráfico
// tenga un punto por día en [today, today+days).
func buildSeries(today time.Time, days int, buckets []repository.ExpiryBucket) dto.TimeseriesDTO {
	byDay := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		byDay[b.Date.Format("2006-01-02")] = b.Total
	}
	labels := make([]string, 0, days)
	data := make([]int64, 0, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i).Format("2006-01-02")
		labels = append(labels, day)
		data = append(data, byDay[day])
	}
	return dto.TimeseriesDTO{Labels: labels, Data: data}
}

func toMovementItems(list []repository.MovementListItem) []dto.MovementListItemResponse {
	out := make([]dto.MovementListItemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, dto.MovementListItemResponse{
			MovementResponse: dto.MovementResponse{
				ID:                    item.Movement.ID,
				BatchID:               item.Movement.BatchID,
				MovementType:          item.Movement.MovementType,
				Quantity:              item.Movement.Quantity,
				DestinationLocationID: item.Movement.DestinationLocationID,
				Note:                  item.Movement.Note,
				CreatedAt:             item.Movement.CreatedAt,
				CreatedBy:             item.Movement.CreatedBy,
			},
			ProductName:         item.ProductName,
			LotCode:             item.LotCode,
			LocationName:        item.LocationName,
			DestinationLocation: item.DestinationLocation,
		})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
