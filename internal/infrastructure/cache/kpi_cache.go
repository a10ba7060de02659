// Package cache implementa el caché de KPIs del panel sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/vitastock/vitastock-api/internal/application/analytics"
	"github.com/vitastock/vitastock-api/internal/application/dto"
	"github.com/vitastock/vitastock-api/pkg/logger"
)

const kpiKey = "vitastock:dashboard:kpis"

var _ analytics.KPICache = (*KPICache)(nil)

// KPICache caché cache-aside de los KPIs del panel con TTL corto. Cualquier
// error de Redis se trata como miss: el panel nunca se cae por el caché.
type KPICache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewKPICache construye el caché. Devuelve nil (caché deshabilitado) si no se
// puede conectar a Redis.
func NewKPICache(ctx context.Context, redisURL string, ttl time.Duration, log *logger.Logger) *KPICache {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("URL de Redis inválida, caché de KPIs deshabilitado")
		return nil
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis no disponible, caché de KPIs deshabilitado")
		_ = client.Close()
		return nil
	}
	return &KPICache{client: client, ttl: ttl, log: log}
}

// Get devuelve el snapshot cacheado de KPIs si existe y sigue vigente.
func (c *KPICache) Get(ctx context.Context) (*dto.KPIsDTO, bool) {
	raw, err := c.client.Get(ctx, kpiKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("error leyendo caché de KPIs")
		}
		return nil, false
	}
	var kpis dto.KPIsDTO
	if err := json.Unmarshal(raw, &kpis); err != nil {
		c.log.Warn().Err(err).Msg("entrada de caché de KPIs corrupta")
		return nil, false
	}
	return &kpis, true
}

// Set guarda el snapshot de KPIs con el TTL configurado.
func (c *KPICache) Set(ctx context.Context, kpis *dto.KPIsDTO) {
	raw, err := json.Marshal(kpis)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, kpiKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("error guardando caché de KPIs")
	}
}

// Close cierra la conexión a Redis.
func (c *KPICache) Close() error {
	return c.client.Close()
}
