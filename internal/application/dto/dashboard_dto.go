package dto

// KPIsDTO indicadores del panel de control.
type KPIsDTO struct {
	ExpiredCount   int64  `json:"expired_count"`    // lotes vencidos con stock
	Soon7Count     int64  `json:"soon7_count"`      // vencen en <= 7 días
	Soon30Count    int64  `json:"soon30_count"`     // vencen en <= 30 días
	LowStockCount  int64  `json:"low_stock_count"`  // productos bajo stock mínimo
	WasteRatePct   string `json:"waste_rate_pct"`   // merma / salidas últimos 30 días, % con 2 decimales
	GeneratedAt    string `json:"generated_at"`     // RFC3339
	FromCache      bool   `json:"from_cache"`
}

// TimeseriesDTO serie de vencimientos: labels (fechas) y data (unidades por día).
type TimeseriesDTO struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// CategoryDistributionDTO distribución de productos por categoría.
type CategoryDistributionDTO struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// PriorityActionDTO acción prioritaria del panel.
type PriorityActionDTO struct {
	Type      string `json:"type"` // vencido | vence_pronto | stock_bajo
	Product   string `json:"product"`
	Location  string `json:"location"`
	Date      string `json:"date,omitempty"` // YYYY-MM-DD, vacío para stock_bajo
	Quantity  int64  `json:"quantity"`
	BatchID   string `json:"batch_id,omitempty"`
	ProductID string `json:"product_id,omitempty"`
}

// DashboardSummaryDTO respuesta completa del panel de control.
type DashboardSummaryDTO struct {
	KPIs             KPIsDTO                    `json:"kpis"`
	Series7          TimeseriesDTO              `json:"series_7"`
	Series30         TimeseriesDTO              `json:"series_30"`
	Series90         TimeseriesDTO              `json:"series_90"`
	CategorySummary  CategoryDistributionDTO    `json:"category_summary"`
	PriorityActions  []PriorityActionDTO        `json:"priority_actions"`
	RecentMovements  []MovementListItemResponse `json:"recent_movements"`
}

// ExpiryCalendarDTO mapa fecha (YYYY-MM-DD) → unidades que vencen ese día.
type ExpiryCalendarDTO struct {
	Days map[string]int64 `json:"days"`
}
