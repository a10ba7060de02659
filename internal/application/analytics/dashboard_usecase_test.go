package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitastock/vitastock-api/internal/application/dto"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

// fakeDashboardRepo implementación en memoria del puerto de consultas del panel.
type fakeDashboardRepo struct {
	expired    int64
	soon7      int64
	soon30     int64
	lowStock   int64
	outflow    repository.OutflowTotals
	buckets    []repository.ExpiryBucket
	categories []repository.CategoryCount
	expiredL   []repository.BatchAlertResult
	expiringL  []repository.BatchAlertResult
	lowStockL  []repository.LowStockResult
	recent     []repository.MovementListItem
}

func (f *fakeDashboardRepo) CountExpiredBatches(_ context.Context, _ time.Time) (int64, error) {
	return f.expired, nil
}
func (f *fakeDashboardRepo) CountBatchesExpiringWithin(_ context.Context, _ time.Time, days int) (int64, error) {
	if days <= 7 {
		return f.soon7, nil
	}
	return f.soon30, nil
}
func (f *fakeDashboardRepo) CountLowStockProducts(_ context.Context) (int64, error) {
	return f.lowStock, nil
}
func (f *fakeDashboardRepo) GetOutflowTotals(_ context.Context, _, _ time.Time) (repository.OutflowTotals, error) {
	return f.outflow, nil
}
func (f *fakeDashboardRepo) GetExpiryBuckets(_ context.Context, _ time.Time, _ int) ([]repository.ExpiryBucket, error) {
	return f.buckets, nil
}
func (f *fakeDashboardRepo) GetCategoryDistribution(_ context.Context, limit int) ([]repository.CategoryCount, error) {
	if limit < len(f.categories) {
		return f.categories[:limit], nil
	}
	return f.categories, nil
}
func (f *fakeDashboardRepo) ListExpiredBatches(_ context.Context, _ time.Time, limit int) ([]repository.BatchAlertResult, error) {
	if limit < len(f.expiredL) {
		return f.expiredL[:limit], nil
	}
	return f.expiredL, nil
}
func (f *fakeDashboardRepo) ListExpiringBatches(_ context.Context, _ time.Time, _ int, limit int) ([]repository.BatchAlertResult, error) {
	if limit < len(f.expiringL) {
		return f.expiringL[:limit], nil
	}
	return f.expiringL, nil
}
func (f *fakeDashboardRepo) ListLowStockProducts(_ context.Context, limit int) ([]repository.LowStockResult, error) {
	if limit < len(f.lowStockL) {
		return f.lowStockL[:limit], nil
	}
	return f.lowStockL, nil
}
func (f *fakeDashboardRepo) ListRecentMovements(_ context.Context, limit int) ([]repository.MovementListItem, error) {
	if limit < len(f.recent) {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

// fakeKPICache cache en memoria de una sola entrada.
type fakeKPICache struct {
	entry *dto.KPIsDTO
	hits  int
	sets  int
}

func (c *fakeKPICache) Get(_ context.Context) (*dto.KPIsDTO, bool) {
	if c.entry == nil {
		return nil, false
	}
	c.hits++
	copia := *c.entry
	return &copia, true
}

func (c *fakeKPICache) Set(_ context.Context, kpis *dto.KPIsDTO) {
	c.sets++
	copia := *kpis
	c.entry = &copia
}

func TestGetKPIs_ContadoresYTasaDeMerma(t *testing.T) {
	repo := &fakeDashboardRepo{
		expired:  3,
		soon7:    5,
		soon30:   12,
		lowStock: 2,
		outflow: repository.OutflowTotals{
			WasteUnits: decimal.NewFromInt(25),
			OutUnits:   decimal.NewFromInt(75),
		},
	}
	uc := NewDashboardUseCase(repo, nil)

	kpis, err := uc.GetKPIs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), kpis.ExpiredCount)
	assert.Equal(t, int64(5), kpis.Soon7Count)
	assert.Equal(t, int64(12), kpis.Soon30Count)
	assert.Equal(t, int64(2), kpis.LowStockCount)
	assert.Equal(t, "25.00", kpis.WasteRatePct)
	assert.False(t, kpis.FromCache)
	assert.NotEmpty(t, kpis.GeneratedAt)
}

func TestGetKPIs_SinSalidasLaTasaEsCero(t *testing.T) {
	repo := &fakeDashboardRepo{}
	uc := NewDashboardUseCase(repo, nil)

	kpis, err := uc.GetKPIs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.00", kpis.WasteRatePct)
}

func TestGetKPIs_CacheAside(t *testing.T) {
	repo := &fakeDashboardRepo{expired: 7}
	cache := &fakeKPICache{}
	uc := NewDashboardUseCase(repo, cache)

	// Primera llamada: miss, consulta y guarda.
	first, err := uc.GetKPIs(context.Background())
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, 1, cache.sets)

	// Segunda llamada: hit, no vuelve a consultar.
	repo.expired = 99
	second, err := uc.GetKPIs(context.Background())
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, int64(7), second.ExpiredCount)
	assert.Equal(t, 1, cache.hits)
}

func TestGetSummary_SeriesRellenanDiasSinVencimientos(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeDashboardRepo{
		buckets: []repository.ExpiryBucket{
			{Date: today, Total: 4},
			{Date: today.AddDate(0, 0, 3), Total: 9},
		},
	}
	uc := NewDashboardUseCase(repo, nil)

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Series7.Labels, 7)
	require.Len(t, summary.Series7.Data, 7)
	require.Len(t, summary.Series30.Data, 30)
	require.Len(t, summary.Series90.Data, 90)

	// Los días sin datos quedan en 0; los que tienen, con su total.
	byLabel := map[string]int64{}
	for i, label := range summary.Series7.Labels {
		byLabel[label] = summary.Series7.Data[i]
	}
	assert.Equal(t, int64(4), byLabel[today.Format("2006-01-02")])
	assert.Equal(t, int64(9), byLabel[today.AddDate(0, 0, 3).Format("2006-01-02")])
	assert.Equal(t, int64(0), byLabel[today.AddDate(0, 0, 1).Format("2006-01-02")])
}

func TestGetSummary_AccionesPrioritariasOrdenadas(t *testing.T) {
	expiry := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeDashboardRepo{
		expiredL: []repository.BatchAlertResult{
			{BatchID: "b1", ProductName: "Yogur", LocationName: "Heladera", ExpiryDate: expiry, Quantity: 6},
		},
		expiringL: []repository.BatchAlertResult{
			{BatchID: "b2", ProductName: "Queso", LocationName: "Heladera", ExpiryDate: expiry.AddDate(0, 0, 15), Quantity: 2},
		},
		lowStockL: []repository.LowStockResult{
			{ProductID: "p1", ProductName: "Arroz", LocationName: "Alacena", TotalStock: 1, MinStock: 4},
		},
	}
	uc := NewDashboardUseCase(repo, nil)

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.PriorityActions, 3)
	assert.Equal(t, "vencido", summary.PriorityActions[0].Type)
	assert.Equal(t, "b1", summary.PriorityActions[0].BatchID)
	assert.Equal(t, "vence_pronto", summary.PriorityActions[1].Type)
	assert.Equal(t, "stock_bajo", summary.PriorityActions[2].Type)
	assert.Equal(t, "p1", summary.PriorityActions[2].ProductID)
	assert.Empty(t, summary.PriorityActions[2].Date)
}

func TestGetSummary_MovimientosRecientes(t *testing.T) {
	repo := &fakeDashboardRepo{
		recent: []repository.MovementListItem{
			{
				Movement: entity.Movement{
					ID:           "m1",
					BatchID:      "b1",
					MovementType: entity.MovementTypeOUT,
					Quantity:     3,
					CreatedAt:    time.Now(),
				},
				ProductName:  "Leche",
				LotCode:      "L-001",
				LocationName: "Heladera",
			},
		},
	}
	uc := NewDashboardUseCase(repo, nil)

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.RecentMovements, 1)
	assert.Equal(t, "Leche", summary.RecentMovements[0].ProductName)
	assert.Equal(t, entity.MovementTypeOUT, summary.RecentMovements[0].MovementType)
}

func TestGetExpiryCalendar_MapaPorFecha(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeDashboardRepo{
		buckets: []repository.ExpiryBucket{
			{Date: today.AddDate(0, 0, 40), Total: 11},
		},
	}
	uc := NewDashboardUseCase(repo, nil)

	cal, err := uc.GetExpiryCalendar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(11), cal.Days[today.AddDate(0, 0, 40).Format("2006-01-02")])
	assert.Len(t, cal.Days, 1)
}
